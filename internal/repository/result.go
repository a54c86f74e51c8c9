package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/engine"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Recent(ctx context.Context, limit int) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT OR REPLACE INTO results (game_id, human_mark, winner, board, moves, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	moves, err := json.Marshal(result.Moves)
	if err != nil {
		return fmt.Errorf("can't marshal moves: %w", err)
	}

	_, err = that.conn.ExecContext(ctx, query,
		result.GameID,
		string(result.HumanMark),
		result.Winner,
		result.Board.String(),
		string(moves),
		result.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) Recent(ctx context.Context, limit int) ([]*entity.Result, error) {
	query := `SELECT game_id, human_mark, winner, board, moves, finished_at
		FROM results ORDER BY finished_at DESC, game_id LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query results: %w", err)
	}
	defer rows.Close()

	results := make([]*entity.Result, 0)
	for rows.Next() {
		var (
			result     entity.Result
			humanMark  string
			board      string
			moves      string
			finishedAt int64
		)

		if err = rows.Scan(&result.GameID, &humanMark, &result.Winner, &board, &moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan result: %w", err)
		}

		if result.Board, err = engine.ParseBoard(board); err != nil {
			return nil, fmt.Errorf("can't parse board of %s: %w", result.GameID, err)
		}

		if err = json.Unmarshal([]byte(moves), &result.Moves); err != nil {
			return nil, fmt.Errorf("can't unmarshal moves of %s: %w", result.GameID, err)
		}

		result.HumanMark = engine.Player(humanMark)
		result.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read results: %w", err)
	}

	return results, nil
}

func (that *resultRepository) Stats(ctx context.Context) (*entity.Stats, error) {
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = human_mark THEN 1 ELSE 0 END), 0)
		FROM results`

	var stats entity.Stats
	if err := that.conn.QueryRowContext(ctx, query, entity.PlayerTie).Scan(&stats.Played, &stats.Ties, &stats.HumanWins); err != nil {
		return nil, fmt.Errorf("can't count results: %w", err)
	}

	stats.EngineWins = stats.Played - stats.Ties - stats.HumanWins

	return &stats, nil
}
