package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xoarena/tictactoe-backend/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]entity.GameResult, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO results (session_id, status, winner, moves, finished_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.SessionID, result.Status, result.Winner, result.Moves, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) ListRecent(ctx context.Context, limit int) ([]entity.GameResult, error) {
	query := `SELECT session_id, status, winner, moves, finished_at
		FROM results ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}
	defer rows.Close()

	var results []entity.GameResult
	for rows.Next() {
		var result entity.GameResult
		if err = rows.Scan(&result.SessionID, &result.Status, &result.Winner, &result.Moves, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("can't scan result: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read results: %w", err)
	}

	return results, nil
}
