// internal/points/repository.go

package points

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rikacare/rika-backend/internal/common/database"
)

var ErrAccountNotFound = errors.New("points account not found")

type Repository interface {
	GetAccount(ctx context.Context, userID int64) (*Account, error)
	// GetForUpdate reads the account and locks its row for the surrounding transaction
	GetForUpdate(ctx context.Context, userID int64) (*Account, error)
	SaveAccount(ctx context.Context, a *Account) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type accountRow struct {
	UserID      int64   `db:"user_id"`
	TotalPoints int     `db:"total_points"`
	History     History `db:"history"`
}

func (r *postgresRepository) GetAccount(ctx context.Context, userID int64) (*Account, error) {
	return r.get(ctx, `SELECT user_id, total_points, history FROM user_points WHERE user_id = $1`, userID)
}

// GetForUpdate creates an empty row first so that concurrent first credits
// from different processes serialize on the same row lock.
func (r *postgresRepository) GetForUpdate(ctx context.Context, userID int64) (*Account, error) {
	if _, err := database.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO user_points (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("failed to create points account: %w", err)
	}
	return r.get(ctx, `SELECT user_id, total_points, history FROM user_points WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *postgresRepository) get(ctx context.Context, query string, userID int64) (*Account, error) {
	var row accountRow
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get points: %w", err)
	}
	return &Account{UserID: row.UserID, TotalPoints: row.TotalPoints, History: row.History}, nil
}

func (r *postgresRepository) SaveAccount(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO user_points (user_id, total_points, history, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			total_points = EXCLUDED.total_points,
			history = EXCLUDED.history,
			updated_at = NOW()`

	if _, err := database.Executor(ctx, r.db).ExecContext(ctx, query, a.UserID, a.TotalPoints, a.History); err != nil {
		return fmt.Errorf("failed to save points: %w", err)
	}
	return nil
}
