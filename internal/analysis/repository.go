// internal/analysis/repository.go

package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type Repository interface {
	CreateAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id, userID int64) (*Analysis, error)
	// ListAnalyses returns newest first; an empty kind lists both
	ListAnalyses(ctx context.Context, userID int64, kind Kind, limit int) ([]*Analysis, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateAnalysis(ctx context.Context, a *Analysis) error {
	query := `
		INSERT INTO analyses (user_id, type, method, result)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, a.UserID, a.Kind, a.Method, a.Result).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetAnalysis(ctx context.Context, id, userID int64) (*Analysis, error) {
	var a Analysis
	err := r.db.GetContext(ctx, &a, `
		SELECT id, user_id, type, method, result, created_at
		FROM analyses
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) ListAnalyses(ctx context.Context, userID int64, kind Kind, limit int) ([]*Analysis, error) {
	query := `
		SELECT id, user_id, type, method, result, created_at
		FROM analyses
		WHERE user_id = $1 AND ($2::text = '' OR type = $2::text)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	out := []*Analysis{}
	if err := r.db.SelectContext(ctx, &out, query, userID, string(kind), limit); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}
