package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Recent(ctx context.Context, limit int) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

type botService interface {
	MakeTurn(game *entity.Game) (engine.Move, error)
}

// Analysis describes a position and the engine's choice for it.
type Analysis struct {
	Board      engine.Board  `json:"board"`
	Turn       engine.Player `json:"turn"`
	LegalMoves []engine.Move `json:"legal_moves"`
	Terminal   bool          `json:"terminal"`
	Winner     engine.Player `json:"winner,omitempty"`
	Utility    int           `json:"utility"`
	Value      int           `json:"value"`
	BestMove   *engine.Move  `json:"best_move,omitempty"`
}

type GameManager struct {
	logger *slog.Logger

	gameRepo   gameRepo
	resultRepo resultRepo
	bot        botService

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, resultRepo resultRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		bot:        bot,

		now: time.Now,
	}
}

// CreateGame - starts a game for a human playing humanMark. When the human
// plays O the engine opens.
func (that *GameManager) CreateGame(ctx context.Context, humanMark engine.Player) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), humanMark)

	if !game.IsHumanTurn() {
		if _, err := that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID, "human", humanMark, "board", game.Board.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed delete game: %w", err)
	}

	return nil
}

// MakeTurn - plays the human move and, unless that ended the game, the
// engine's reply.
func (that *GameManager) MakeTurn(ctx context.Context, id string, move engine.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if !game.IsHumanTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.Play(move); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsOngoing() {
		reply, err := that.bot.MakeTurn(game)
		if err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}

		log.Debug("engine replied", "move", reply.String(), "board", game.Board.String())
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if game.IsFinished() {
		that.archive(ctx, game)
	}

	return game, nil
}

// archive records a finished game; a failure only costs the statistics.
func (that *GameManager) archive(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "archive", "gameID", game.ID)

	if err := that.resultRepo.Save(ctx, entity.NewResult(game, that.now())); err != nil {
		log.Error("failed to archive result", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner, "human", game.HumanMark, "moves", len(game.History))
}

func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]*entity.Result, error) {
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}

	results, err := that.resultRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed get recent results: %w", err)
	}

	return results, nil
}

func (that *GameManager) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := that.resultRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed get stats: %w", err)
	}

	return stats, nil
}

// Analyze - evaluates an arbitrary reachable position.
func (that *GameManager) Analyze(board engine.Board) (*Analysis, error) {
	if err := engine.Validate(board); err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Board:      board,
		Turn:       engine.WhoseTurn(board),
		LegalMoves: engine.LegalMoves(board),
		Terminal:   engine.Terminal(board),
		Utility:    engine.Utility(board),
		Value:      engine.Value(board),
	}

	if winner, ok := engine.Winner(board); ok {
		analysis.Winner = winner
	}

	if analysis.Terminal {
		return analysis, nil
	}

	move, err := engine.Minimax(board)
	if err != nil {
		return nil, fmt.Errorf("failed to search move: %w", err)
	}
	analysis.BestMove = &move

	return analysis, nil
}
