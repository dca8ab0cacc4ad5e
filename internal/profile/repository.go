// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rikacare/rika-backend/internal/common/database"
)

// Repository defines the profile store
type Repository interface {
	GetProfile(ctx context.Context, userID int64) (*UserProfile, error)
	CreateProfile(ctx context.Context, profile *UserProfile) error
	SaveProfile(ctx context.Context, profile *UserProfile) error
	IncrementRecommendationViews(ctx context.Context, userID int64) error
	CountSimilar(ctx context.Context, excludeUserID int64, skin SkinType, hair HairType) (*SimilarUsers, error)
}

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type profileRow struct {
	UserID                  int64          `db:"user_id"`
	Name                    string         `db:"name"`
	SkinType                string         `db:"skin_type"`
	SkinConcerns            pq.StringArray `db:"skin_concerns"`
	HairType                string         `db:"hair_type"`
	HairConcerns            pq.StringArray `db:"hair_concerns"`
	IngredientSensitivities pq.StringArray `db:"ingredient_sensitivities"`
	CleanBeautyPreference   bool           `db:"clean_beauty_preference"`
	Language                string         `db:"language"`
	RecommendationViews     int64          `db:"recommendation_views"`
	UpdatedAt               time.Time      `db:"updated_at"`
}

func (r profileRow) toProfile() *UserProfile {
	return &UserProfile{
		UserID:                  r.UserID,
		DisplayName:             r.Name,
		SkinType:                SkinType(r.SkinType),
		SkinConcerns:            nonNil(r.SkinConcerns),
		HairType:                HairType(r.HairType),
		HairConcerns:            nonNil(r.HairConcerns),
		IngredientSensitivities: nonNil(r.IngredientSensitivities),
		CleanBeautyPreference:   r.CleanBeautyPreference,
		Language:                r.Language,
		RecommendationViews:     r.RecommendationViews,
		UpdatedAt:               r.UpdatedAt,
	}
}

// GetProfile returns the stored profile, or defaults when the user exists but
// has not filled one in yet
func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	query := `
		SELECT
			u.id AS user_id, u.name,
			COALESCE(p.skin_type, '') AS skin_type,
			COALESCE(p.skin_concerns, '{}') AS skin_concerns,
			COALESCE(p.hair_type, '') AS hair_type,
			COALESCE(p.hair_concerns, '{}') AS hair_concerns,
			COALESCE(p.ingredient_sensitivities, '{}') AS ingredient_sensitivities,
			COALESCE(p.clean_beauty_preference, TRUE) AS clean_beauty_preference,
			COALESCE(p.language, 'en') AS language,
			COALESCE(p.recommendation_views, 0) AS recommendation_views,
			COALESCE(p.updated_at, u.updated_at) AS updated_at
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1`

	var row profileRow
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return row.toProfile(), nil
}

func (r *postgresRepository) CreateProfile(ctx context.Context, p *UserProfile) error {
	_, err := database.Executor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, clean_beauty_preference, language)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING`,
		p.UserID, p.CleanBeautyPreference, p.Language)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// SaveProfile updates the user's name and upserts the profile row in one statement
func (r *postgresRepository) SaveProfile(ctx context.Context, p *UserProfile) error {
	query := `
		WITH u AS (
			UPDATE users SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING id
		)
		INSERT INTO user_profiles (
			user_id, skin_type, skin_concerns, hair_type, hair_concerns,
			ingredient_sensitivities, clean_beauty_preference, language, updated_at
		)
		SELECT id, $3, $4, $5, $6, $7, $8, $9, NOW() FROM u
		ON CONFLICT (user_id) DO UPDATE SET
			skin_type = EXCLUDED.skin_type,
			skin_concerns = EXCLUDED.skin_concerns,
			hair_type = EXCLUDED.hair_type,
			hair_concerns = EXCLUDED.hair_concerns,
			ingredient_sensitivities = EXCLUDED.ingredient_sensitivities,
			clean_beauty_preference = EXCLUDED.clean_beauty_preference,
			language = EXCLUDED.language,
			updated_at = NOW()`

	res, err := database.Executor(ctx, r.db).ExecContext(ctx, query,
		p.UserID, p.DisplayName,
		string(p.SkinType), pq.Array(p.SkinConcerns),
		string(p.HairType), pq.Array(p.HairConcerns),
		pq.Array(p.IngredientSensitivities), p.CleanBeautyPreference, p.Language,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementRecommendationViews(ctx context.Context, userID int64) error {
	_, err := database.Executor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, recommendation_views)
		VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE
		SET recommendation_views = user_profiles.recommendation_views + 1`, userID)
	if err != nil {
		return fmt.Errorf("failed to increment recommendation views: %w", err)
	}
	return nil
}

// CountSimilar ignores an empty type, which would otherwise match every unset profile
func (r *postgresRepository) CountSimilar(ctx context.Context, excludeUserID int64, skin SkinType, hair HairType) (*SimilarUsers, error) {
	var out SimilarUsers
	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &out, `
		SELECT
			COUNT(*) FILTER (WHERE $2::text <> '' AND skin_type = $2::text) AS same_skin,
			COUNT(*) FILTER (WHERE $3::text <> '' AND hair_type = $3::text) AS same_hair
		FROM user_profiles
		WHERE user_id <> $1`, excludeUserID, string(skin), string(hair))
	if err != nil {
		return nil, fmt.Errorf("failed to count similar users: %w", err)
	}
	return &out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
