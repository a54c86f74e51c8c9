package engine

import (
	"errors"
	"fmt"
	"strings"
)

const size = 3

type Cell string

const (
	Empty Cell = ""
	MarkX Cell = "X"
	MarkO Cell = "O"
)

type Player string

const (
	X Player = "X"
	O Player = "O"
)

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidPlayer = errors.New("invalid player")
)

// Board is a 3x3 grid indexed [row][col]. It is a value: every function that
// derives a new position returns a fresh copy.
type Board [size][size]Cell

// Move addresses a single cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

func (that Move) inBounds() bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}

func ParsePlayer(s string) (Player, error) {
	switch p := Player(strings.ToUpper(s)); p {
	case X, O:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

// Mark - returns the cell value this player writes.
func (that Player) Mark() Cell {
	return Cell(that)
}

func (that Player) Opponent() Player {
	if that == X {
		return O
	}
	return X
}

// InitialBoard - returns the all-empty starting position.
func InitialBoard() Board {
	return Board{}
}

// Count - returns the number of marked cells.
func (that Board) Count() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

func (that Board) Full() bool {
	return that.Count() == size*size
}

// String renders the board as three rows joined by '/', '.' marking an empty cell.
func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('/')
		}
		for _, cell := range row {
			if cell == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}
	return sb.String()
}

// ParseBoard - reads the form produced by Board.String. Separators are optional.
func ParseBoard(s string) (Board, error) {
	var board Board

	cells := strings.ReplaceAll(s, "/", "")
	if len(cells) != size*size {
		return board, fmt.Errorf("%w: want %d cells, got %d", ErrInvalidBoard, size*size, len(cells))
	}

	for i, ch := range cells {
		switch ch {
		case '.', '_', ' ':
			board[i/size][i%size] = Empty
		case 'X', 'x':
			board[i/size][i%size] = MarkX
		case 'O', 'o':
			board[i/size][i%size] = MarkO
		default:
			return Board{}, fmt.Errorf("%w: unexpected symbol %q", ErrInvalidBoard, ch)
		}
	}

	return board, nil
}

// Validate - checks that every cell holds a known value, that the marks could
// have been placed by alternating turns starting with X, and that play stopped
// once a line was completed.
func Validate(board Board) error {
	xCount, oCount := 0, 0
	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case MarkX:
				xCount++
			case MarkO:
				oCount++
			case Empty:
			default:
				return fmt.Errorf("%w: unknown cell value %q", ErrInvalidBoard, cell)
			}
		}
	}

	diff := xCount - oCount
	if diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidBoard, xCount, oCount)
	}

	xWon, oWon := hasLine(board, X), hasLine(board, O)
	switch {
	case xWon && oWon:
		return fmt.Errorf("%w: both players completed a line", ErrInvalidBoard)
	case xWon && diff != 1:
		return fmt.Errorf("%w: O moved after X won", ErrInvalidBoard)
	case oWon && diff != 0:
		return fmt.Errorf("%w: X moved after O won", ErrInvalidBoard)
	}

	return nil
}
