package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(game *entity.Game) (engine.Move, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn - plays the minimax move for the engine's side of game.
func (that *botService) MakeTurn(game *entity.Game) (engine.Move, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return engine.Move{}, err
	}

	if engine.WhoseTurn(game.Board) != game.EngineMark() {
		return engine.Move{}, ErrNotBotTurn
	}

	move, err := engine.Minimax(game.Board)
	if err != nil {
		return engine.Move{}, fmt.Errorf("failed to search move: %w", err)
	}

	if err = game.Play(move); err != nil {
		return engine.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}
