package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xoarena/tictactoe-backend/internal/apperror"
	"github.com/xoarena/tictactoe-backend/internal/entity"
)

type StatusRepository interface {
	Save(ctx context.Context, check *entity.StatusCheck) error
	GetByID(ctx context.Context, id string) (*entity.StatusCheck, error)
	List(ctx context.Context) ([]entity.StatusCheck, error)
}

type statusRepository struct {
	conn *sql.DB
}

func NewStatusRepository(conn *sql.DB) StatusRepository {
	return &statusRepository{
		conn: conn,
	}
}

func (that *statusRepository) Save(ctx context.Context, check *entity.StatusCheck) error {
	query := `INSERT INTO status_checks (id, client_name, timestamp) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, check.ID, check.ClientName, check.Timestamp)
	if err != nil {
		return fmt.Errorf("can't save status check: %w", err)
	}

	return nil
}

func (that *statusRepository) GetByID(ctx context.Context, id string) (*entity.StatusCheck, error) {
	query := `SELECT id, client_name, timestamp FROM status_checks WHERE id = ?`

	var check entity.StatusCheck

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&check.ID, &check.ClientName, &check.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find status check: %w", err)
	}

	return &check, nil
}

func (that *statusRepository) List(ctx context.Context) ([]entity.StatusCheck, error) {
	query := `SELECT id, client_name, timestamp FROM status_checks ORDER BY timestamp DESC`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list status checks: %w", err)
	}
	defer rows.Close()

	var checks []entity.StatusCheck
	for rows.Next() {
		var check entity.StatusCheck
		if err = rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, fmt.Errorf("can't scan status check: %w", err)
		}
		checks = append(checks, check)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read status checks: %w", err)
	}

	return checks, nil
}
