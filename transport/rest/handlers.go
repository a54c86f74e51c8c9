package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, humanMark engine.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	MakeTurn(ctx context.Context, id string, move engine.Move) (*entity.Game, error)

	RecentResults(ctx context.Context, limit int) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.Stats, error)

	Analyze(board engine.Board) (*usecase.Analysis, error)
}

type createGameRequest struct {
	Mark string `json:"mark"`
}

type analysisRequest struct {
	Board engine.Board `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase) *handlers {
	return &handlers{
		logger: logger,
		games:  games,
	}
}

func (that *handlers) CreateGame(ctx echo.Context) error {
	var req createGameRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if req.Mark == "" {
		req.Mark = string(engine.X)
	}

	mark, err := engine.ParsePlayer(req.Mark)
	if err != nil {
		return that.fail(ctx, err)
	}

	game, err := that.games.CreateGame(ctx.Request().Context(), mark)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, game)
}

func (that *handlers) GetGame(ctx echo.Context) error {
	game, err := that.games.GetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, game)
}

func (that *handlers) DeleteGame(ctx echo.Context) error {
	if err := that.games.DeleteGame(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *handlers) MakeTurn(ctx echo.Context) error {
	var move engine.Move
	if err := ctx.Bind(&move); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	game, err := that.games.MakeTurn(ctx.Request().Context(), ctx.Param("id"), move)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, game)
}

func (that *handlers) RecentResults(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
		}
		limit = parsed
	}

	results, err := that.games.RecentResults(ctx.Request().Context(), limit)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, results)
}

func (that *handlers) Stats(ctx echo.Context) error {
	stats, err := that.games.Stats(ctx.Request().Context())
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

func (that *handlers) Analyze(ctx echo.Context) error {
	var req analysisRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	analysis, err := that.games.Analyze(req.Board)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, analysis)
}

// fail maps domain errors onto HTTP statuses.
func (that *handlers) fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidMove),
		errors.Is(err, engine.ErrInvalidBoard),
		errors.Is(err, engine.ErrInvalidPlayer):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.JSON(status, errorResponse{Error: "internal server error"})
	}

	return ctx.JSON(status, errorResponse{Error: err.Error()})
}
