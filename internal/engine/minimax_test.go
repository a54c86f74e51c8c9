package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playOut lets the engine choose every move until the game ends.
func playOut(t *testing.T, board Board) Board {
	t.Helper()

	for !Terminal(board) {
		move, err := Minimax(board)
		require.NoError(t, err)

		board, err = ApplyMove(board, move)
		require.NoError(t, err)
	}

	return board
}

func TestMinimax_EmptyBoard(t *testing.T) {
	// Given: the initial position
	board := InitialBoard()

	// When: the engine picks X's opening
	move, err := Minimax(board)
	require.NoError(t, err)

	// Then: the move is legal and optimal play from there never loses for X
	assert.Contains(t, LegalMoves(board), move)

	next, err := ApplyMove(board, move)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, Value(next), 0)

	// Then: all openings draw, so the first cell is kept
	assert.Equal(t, Move{Row: 0, Col: 0}, move)

	// Then: perfect play on both sides draws
	final := playOut(t, next)
	assert.Equal(t, 0, Utility(final))
}

func TestMinimax_TakesWinningMove(t *testing.T) {
	t.Run("X completes the first column", func(t *testing.T) {
		// Given: X to move with column 0 one mark short
		board := mustParse(t, "XOX/XOO/...")
		require.Equal(t, X, WhoseTurn(board))

		// When: the engine chooses
		move, err := Minimax(board)
		require.NoError(t, err)

		// Then: it completes the column and wins
		assert.Equal(t, Move{Row: 2, Col: 0}, move)

		next, err := ApplyMove(board, move)
		require.NoError(t, err)
		assert.Equal(t, 1, Utility(next))
	})

	t.Run("O prefers the immediate win over a block", func(t *testing.T) {
		// Given: O to move; (0,2) blocks X but (1,2) wins at once
		board := mustParse(t, "XX./OO./X..")
		require.Equal(t, O, WhoseTurn(board))

		// When: the engine chooses
		move, err := Minimax(board)
		require.NoError(t, err)

		// Then: it completes the middle row
		assert.Equal(t, Move{Row: 1, Col: 2}, move)
	})
}

func TestMinimax_Blocks(t *testing.T) {
	// Given: O to move while X threatens the top row
	board := mustParse(t, "X.X/.O./...")

	// When: the engine chooses for O
	move, err := Minimax(board)
	require.NoError(t, err)

	// Then: it blocks the gap
	assert.Equal(t, Move{Row: 0, Col: 1}, move)
}

func TestMinimax_TerminalBoard(t *testing.T) {
	for _, text := range []string{"XXX/OO./...", "XOX/XOO/OXX"} {
		_, err := Minimax(mustParse(t, text))

		require.ErrorIs(t, err, ErrTerminalBoard)
	}
}

func TestMinimax_TieBreakIsFirstBest(t *testing.T) {
	// Given: a position where several moves share the best value
	board := mustParse(t, "X../.O./...")

	// When: the engine chooses
	move, err := Minimax(board)
	require.NoError(t, err)

	// Then: no earlier move in row-major order scores as well
	best := Value(board)
	for _, candidate := range LegalMoves(board) {
		next, err := ApplyMove(board, candidate)
		require.NoError(t, err)

		if candidate == move {
			assert.Equal(t, best, Value(next))
			break
		}
		assert.NotEqual(t, best, Value(next), "earlier move %s scores as well", candidate)
	}
}

func TestMinimax_NeverLoses(t *testing.T) {
	// try every reply of the opponent against the engine's choices
	var explore func(t *testing.T, board Board, engine Player)
	explore = func(t *testing.T, board Board, engine Player) {
		if Terminal(board) {
			winner, ok := Winner(board)
			if ok {
				require.Equal(t, engine, winner, "engine lost on %s", board)
			}
			return
		}

		if WhoseTurn(board) == engine {
			move, err := Minimax(board)
			require.NoError(t, err)

			next, err := ApplyMove(board, move)
			require.NoError(t, err)
			explore(t, next, engine)
			return
		}

		for _, move := range LegalMoves(board) {
			next, err := ApplyMove(board, move)
			require.NoError(t, err)
			explore(t, next, engine)
		}
	}

	t.Run("Engine as O", func(t *testing.T) {
		explore(t, InitialBoard(), O)
	})

	t.Run("Engine as X", func(t *testing.T) {
		explore(t, InitialBoard(), X)
	})
}

func TestPlace(t *testing.T) {
	// Given: a board where O is to move
	board := mustParse(t, "X../.../...")

	// When: placing at a legal cell
	next := place(board, Move{Row: 2, Col: 1})

	// Then: it matches ApplyMove and leaves the input untouched
	want, err := ApplyMove(board, Move{Row: 2, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, want, next)
	assert.Equal(t, "X../.../...", board.String())
}

func TestValue(t *testing.T) {
	assert.Equal(t, 0, Value(InitialBoard()))
	assert.Equal(t, 1, Value(mustParse(t, "XOX/XOO/...")))
	assert.Equal(t, -1, Value(mustParse(t, "XX./OO./X..")))
	assert.Equal(t, 1, Value(mustParse(t, "XXX/OO./...")))
}

func TestMinimax_Concurrent(t *testing.T) {
	boards := []string{"X../.../...", "XO./.../...", "X../.O./...", "..././..X"}

	want := make([]Move, len(boards))
	for i, text := range boards {
		move, err := Minimax(mustParse(t, text))
		require.NoError(t, err)
		want[i] = move
	}

	var wg sync.WaitGroup
	got := make([]Move, len(boards))
	for i, text := range boards {
		board := mustParse(t, text)

		wg.Add(1)
		go func() {
			defer wg.Done()

			got[i], _ = Minimax(board)
		}()
	}
	wg.Wait()

	assert.Equal(t, want, got)
}
