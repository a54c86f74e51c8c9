package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a match between a human and the engine.
type Game struct {
	ID        string        `json:"id"`
	Board     engine.Board  `json:"board"`
	HumanMark engine.Player `json:"human_mark"`
	Turn      engine.Player `json:"player_turn,omitempty"`
	Winner    string        `json:"winner"`
	Status    string        `json:"status"`
	History   []engine.Move `json:"history"`
}

func NewGame(id string, humanMark engine.Player) *Game {
	board := engine.InitialBoard()

	return &Game{
		ID:        id,
		Board:     board,
		HumanMark: humanMark,
		Turn:      engine.WhoseTurn(board),
		Status:    StatusOngoing,
		History:   []engine.Move{},
	}
}

func (that *Game) EngineMark() engine.Player {
	return that.HumanMark.Opponent()
}

// Play - applies move for whoever is to move and refreshes the game state.
func (that *Game) Play(move engine.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	board, err := engine.ApplyMove(that.Board, move)
	if err != nil {
		return fmt.Errorf("could not play %s: %w", move, err)
	}

	that.Board = board
	that.History = append(that.History, move)
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	if winner, ok := engine.Winner(that.Board); ok {
		that.Winner = string(winner)
		that.Status = StatusFinished
		that.Turn = ""
		return
	}

	// the game will continue until all the squares are full
	if engine.Terminal(that.Board) {
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
		return
	}

	that.Winner = ""
	that.Status = StatusOngoing
	that.Turn = engine.WhoseTurn(that.Board)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsHumanTurn() bool {
	return that.IsOngoing() && that.Turn == that.HumanMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
