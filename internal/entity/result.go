package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
)

// Result is the archived outcome of a finished game.
type Result struct {
	GameID     string        `json:"game_id"`
	HumanMark  engine.Player `json:"human_mark"`
	Winner     string        `json:"winner"`
	Board      engine.Board  `json:"board"`
	Moves      []engine.Move `json:"moves"`
	FinishedAt time.Time     `json:"finished_at"`
}

type Stats struct {
	Played     int `json:"played"`
	EngineWins int `json:"engine_wins"`
	HumanWins  int `json:"human_wins"`
	Ties       int `json:"ties"`
}

func NewResult(game *Game, finishedAt time.Time) *Result {
	return &Result{
		GameID:     game.ID,
		HumanMark:  game.HumanMark,
		Winner:     game.Winner,
		Board:      game.Board,
		Moves:      append([]engine.Move(nil), game.History...),
		FinishedAt: finishedAt.UTC(),
	}
}

func (that *Result) IsTie() bool {
	return that.Winner == PlayerTie
}

func (that *Result) HumanWon() bool {
	return that.Winner == string(that.HumanMark)
}
