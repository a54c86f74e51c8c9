package engine

import "fmt"

// lines lists rows, then columns, then the main and anti diagonals.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// WhoseTurn - X moves on an even number of marks, O on an odd one. It does not
// look at whether the game is over.
func WhoseTurn(board Board) Player {
	if board.Count()%2 == 0 {
		return X
	}
	return O
}

// LegalMoves - returns the empty cells in row-major order, or none once the
// game is won. The order is the tie-break order used by Minimax.
func LegalMoves(board Board) []Move {
	moves := make([]Move, 0, size*size)
	if _, won := Winner(board); won {
		return moves
	}

	for row := range size {
		for col := range size {
			if board[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// ApplyMove - returns a copy of board with the mover's mark placed at move.
func ApplyMove(board Board, move Move) (Board, error) {
	if !move.inBounds() {
		return board, fmt.Errorf("%w: %s is out of bounds", ErrInvalidMove, move)
	}

	if board[move.Row][move.Col] != Empty {
		return board, fmt.Errorf("%w: cell %s is already occupied", ErrInvalidMove, move)
	}

	next := board
	next[move.Row][move.Col] = WhoseTurn(board).Mark()

	return next, nil
}

// Winner - returns the owner of the first complete line, scanning rows,
// columns and then diagonals.
func Winner(board Board) (Player, bool) {
	for _, line := range lines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]
		if a != Empty && a == b && b == c {
			return Player(a), true
		}
	}
	return "", false
}

func hasLine(board Board, player Player) bool {
	mark := player.Mark()
	for _, line := range lines {
		if board[line[0].Row][line[0].Col] == mark &&
			board[line[1].Row][line[1].Col] == mark &&
			board[line[2].Row][line[2].Col] == mark {
			return true
		}
	}
	return false
}

// Terminal - reports whether the game is won or drawn.
func Terminal(board Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}
	return board.Full()
}

// Utility - scores a finished position from X's point of view.
func Utility(board Board) int {
	winner, ok := Winner(board)
	switch {
	case !ok:
		return 0
	case winner == X:
		return 1
	default:
		return -1
	}
}
