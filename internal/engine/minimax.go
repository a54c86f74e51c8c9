package engine

import (
	"errors"
	"fmt"
)

var ErrTerminalBoard = errors.New("game is already over")

// Minimax - returns the optimal move for the player to move. X maximises the
// utility and O minimises it; on equal scores the earliest move in LegalMoves
// order is kept. The whole remaining tree is searched.
func Minimax(board Board) (Move, error) {
	if Terminal(board) {
		return Move{}, fmt.Errorf("%w: %s", ErrTerminalBoard, board)
	}

	var (
		best  Move
		found bool
		score int
	)

	maximizing := WhoseTurn(board) == X

	for _, move := range LegalMoves(board) {
		next, err := ApplyMove(board, move)
		if err != nil {
			return Move{}, err
		}

		var value int
		if maximizing {
			value = minValue(next)
		} else {
			value = maxValue(next)
		}

		if !found || (maximizing && value > score) || (!maximizing && value < score) {
			best, score, found = move, value, true
		}
	}

	return best, nil
}

// Value - returns the game-theoretic value of board under optimal play.
func Value(board Board) int {
	if WhoseTurn(board) == X {
		return maxValue(board)
	}
	return minValue(board)
}

func maxValue(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	value := -2
	for _, move := range LegalMoves(board) {
		value = max(value, minValue(place(board, move)))
	}
	return value
}

func minValue(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	value := 2
	for _, move := range LegalMoves(board) {
		value = min(value, maxValue(place(board, move)))
	}
	return value
}

// place puts the mover's mark at move. move must be one of LegalMoves(board).
func place(board Board, move Move) Board {
	board[move.Row][move.Col] = WhoseTurn(board).Mark()
	return board
}
