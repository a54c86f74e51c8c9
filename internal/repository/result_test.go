package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
)

func newResultRepo(t *testing.T) (context.Context, ResultRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	require.NoError(t, st.Init(ctx))

	return ctx, NewResultRepository(st.Connection)
}

func finishedGame(t *testing.T, id string, human engine.Player, board string) *entity.Game {
	t.Helper()

	b, err := engine.ParseBoard(board)
	require.NoError(t, err)

	game := &entity.Game{ID: id, HumanMark: human, Board: b, History: []engine.Move{{Row: 1, Col: 1}}}
	game.UpdateGameState()
	require.True(t, game.IsFinished())

	return game
}

func TestResultRepository_SaveAndRecent(t *testing.T) {
	ctx, repo := newResultRepo(t)

	// Given: two finished games archived a minute apart
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := entity.NewResult(finishedGame(t, "a", engine.X, "XXX/OO./..."), now)
	newer := entity.NewResult(finishedGame(t, "b", engine.O, "XOX/XOO/OXX"), now.Add(time.Minute))

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	// When: listing recent results
	results, err := repo.Recent(ctx, 10)

	// Then: the newest comes first and fields survive the round trip
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, newer, results[0])
	assert.Equal(t, older, results[1])
}

func TestResultRepository_SaveIsIdempotent(t *testing.T) {
	ctx, repo := newResultRepo(t)

	// Given: the same result saved twice
	result := entity.NewResult(finishedGame(t, "a", engine.X, "XXX/OO./..."), time.Now())
	require.NoError(t, repo.Save(ctx, result))
	require.NoError(t, repo.Save(ctx, result))

	// Then: only one row exists
	results, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestResultRepository_RecentWithHugeLimit(t *testing.T) {
	ctx, repo := newResultRepo(t)

	require.NoError(t, repo.Save(ctx, entity.NewResult(finishedGame(t, "a", engine.X, "XXX/OO./..."), time.Now())))

	results, err := repo.Recent(ctx, 1<<62)

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestResultRepository_Stats(t *testing.T) {
	t.Run("Empty archive", func(t *testing.T) {
		ctx, repo := newResultRepo(t)

		stats, err := repo.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{}, stats)
	})

	t.Run("Counts outcomes from the human's side", func(t *testing.T) {
		ctx, repo := newResultRepo(t)
		now := time.Now()

		// Given: a tie, an engine win and a human win
		require.NoError(t, repo.Save(ctx, entity.NewResult(finishedGame(t, "tie", engine.X, "XOX/XOO/OXX"), now)))
		require.NoError(t, repo.Save(ctx, entity.NewResult(finishedGame(t, "lost", engine.O, "XXX/OO./..."), now)))
		require.NoError(t, repo.Save(ctx, entity.NewResult(finishedGame(t, "won", engine.X, "XXX/OO./..."), now)))

		// When: counting
		stats, err := repo.Stats(ctx)

		// Then: each outcome is attributed once
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{Played: 3, EngineWins: 1, HumanWins: 1, Ties: 1}, stats)
	})
}
