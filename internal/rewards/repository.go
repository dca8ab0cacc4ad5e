// internal/rewards/repository.go

package rewards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rikacare/rika-backend/internal/common/database"
)

var ErrRewardNotFound = errors.New("reward not found")

type Repository interface {
	ListActive(ctx context.Context) ([]*Reward, error)
	GetByID(ctx context.Context, id int64) (*Reward, error)
	Create(ctx context.Context, req *CreateRewardRequest) (*Reward, error)
	Count(ctx context.Context) (int, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const rewardColumns = `id, name, description, required_points, type, is_active, created_at`

// ListActive returns active rewards, cheapest first
func (r *postgresRepository) ListActive(ctx context.Context) ([]*Reward, error) {
	var out []*Reward
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE is_active ORDER BY required_points, id`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Reward, error) {
	var rw Reward
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &rw, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return &rw, nil
}

func (r *postgresRepository) Create(ctx context.Context, req *CreateRewardRequest) (*Reward, error) {
	var rw Reward
	query := `
		INSERT INTO rewards (name, description, required_points, type)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + rewardColumns

	err := r.db.QueryRowxContext(ctx, query, req.Name, req.Description, req.RequiredPoints, req.Type).StructScan(&rw)
	if err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}
	return &rw, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM rewards`); err != nil {
		return 0, fmt.Errorf("failed to count rewards: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rewards SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRewardNotFound
	}
	return nil
}
