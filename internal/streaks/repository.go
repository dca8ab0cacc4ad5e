// internal/streaks/repository.go

package streaks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/jmoiron/sqlx"

	"github.com/rikacare/rika-backend/internal/common/database"
)

var ErrStreakNotFound = errors.New("streak not found")

type Repository interface {
	GetStreak(ctx context.Context, userID int64) (*State, error)
	// GetForUpdate reads the row and locks it until the surrounding transaction ends
	GetForUpdate(ctx context.Context, userID int64) (*State, error)
	SaveStreak(ctx context.Context, s *State) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type streakRow struct {
	UserID           int64        `db:"user_id"`
	CurrentStreak    int          `db:"current_streak"`
	LongestStreak    int          `db:"longest_streak"`
	LastActivityDate sql.NullTime `db:"last_activity_date"`
}

func (r streakRow) toState() *State {
	s := &State{UserID: r.UserID, CurrentStreak: r.CurrentStreak, LongestStreak: r.LongestStreak}
	if r.LastActivityDate.Valid {
		d := civil.DateOf(r.LastActivityDate.Time)
		s.LastActivityDate = &d
	}
	return s
}

func (r *postgresRepository) GetStreak(ctx context.Context, userID int64) (*State, error) {
	return r.get(ctx, `SELECT user_id, current_streak, longest_streak, last_activity_date
		FROM user_streaks WHERE user_id = $1`, userID)
}

func (r *postgresRepository) GetForUpdate(ctx context.Context, userID int64) (*State, error) {
	if _, err := database.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO user_streaks (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("failed to create streak: %w", err)
	}
	return r.get(ctx, `SELECT user_id, current_streak, longest_streak, last_activity_date
		FROM user_streaks WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *postgresRepository) get(ctx context.Context, query string, userID int64) (*State, error) {
	var row streakRow
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStreakNotFound
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return row.toState(), nil
}

func (r *postgresRepository) SaveStreak(ctx context.Context, s *State) error {
	var last interface{}
	if s.LastActivityDate != nil {
		last = s.LastActivityDate.String()
	}

	query := `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_activity_date, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_activity_date = EXCLUDED.last_activity_date,
			updated_at = NOW()`

	if _, err := database.Executor(ctx, r.db).ExecContext(ctx, query, s.UserID, s.CurrentStreak, s.LongestStreak, last); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}
