// internal/routines/repository.go

package routines

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rikacare/rika-backend/internal/common/database"
)

type Repository interface {
	// HasCompleted reports whether any completed routine exists for the user on day
	HasCompleted(ctx context.Context, userID int64, day civil.Date) (bool, error)
	// InsertDailyCompletion writes the daily marker. It returns false when
	// the marker for that day already exists.
	InsertDailyCompletion(ctx context.Context, userID int64, day civil.Date) (bool, error)
	Create(ctx context.Context, r *Routine) (*Routine, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]*Routine, error)
	// CompletedUserIDs returns every user with a completed routine on day
	CompletedUserIDs(ctx context.Context, day civil.Date) (map[int64]bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type routineRow struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	Type        string         `db:"type"`
	Products    pq.StringArray `db:"products"`
	Completed   bool           `db:"completed"`
	Notes       string         `db:"notes"`
	CompletedOn time.Time      `db:"completed_on"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r routineRow) toRoutine() *Routine {
	products := []string(r.Products)
	if products == nil {
		products = []string{}
	}
	return &Routine{
		ID:          r.ID,
		UserID:      r.UserID,
		Type:        r.Type,
		Products:    products,
		Completed:   r.Completed,
		Notes:       r.Notes,
		CompletedOn: civil.DateOf(r.CompletedOn),
		CreatedAt:   r.CreatedAt,
	}
}

func (r *postgresRepository) HasCompleted(ctx context.Context, userID int64, day civil.Date) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM routines WHERE user_id = $1 AND completed_on = $2 AND completed)`
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &exists, query, userID, day.String()); err != nil {
		return false, fmt.Errorf("failed to check completion: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) InsertDailyCompletion(ctx context.Context, userID int64, day civil.Date) (bool, error) {
	query := `
		INSERT INTO routines (user_id, type, completed, completed_on)
		VALUES ($1, 'daily', TRUE, $2)
		ON CONFLICT (user_id, completed_on) WHERE type = 'daily' AND completed DO NOTHING`

	res, err := database.Executor(ctx, r.db).ExecContext(ctx, query, userID, day.String())
	if err != nil {
		return false, fmt.Errorf("failed to record completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *postgresRepository) Create(ctx context.Context, rt *Routine) (*Routine, error) {
	var row routineRow
	query := `
		INSERT INTO routines (user_id, type, products, completed, notes, completed_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, type, products, completed, notes, completed_on, created_at`

	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &row, query,
		rt.UserID, rt.Type, pq.Array(rt.Products), rt.Completed, rt.Notes, rt.CompletedOn.String())
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyMarked
		}
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}
	return row.toRoutine(), nil
}

func (r *postgresRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*Routine, error) {
	var rows []routineRow
	query := `
		SELECT id, user_id, type, products, completed, notes, completed_on, created_at
		FROM routines WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	out := make([]*Routine, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRoutine())
	}
	return out, nil
}

func (r *postgresRepository) CompletedUserIDs(ctx context.Context, day civil.Date) (map[int64]bool, error) {
	var ids []int64
	query := `SELECT DISTINCT user_id FROM routines WHERE completed_on = $1 AND completed`
	if err := r.db.SelectContext(ctx, &ids, query, day.String()); err != nil {
		return nil, fmt.Errorf("failed to list completed users: %w", err)
	}
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
