// internal/auth/repository.go
// Repository pattern isolates database queries from business logic.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rikacare/rika-backend/internal/common/database"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNotVerified        = errors.New("user has no verification")
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateContact(ctx context.Context, userID int64, phone, pushToken *string) (*User, error)
	// ListUserIDs returns every account id, used by the reminder job
	ListUserIDs(ctx context.Context) ([]int64, error)
	// SaveVerification replaces any earlier verification of the user
	SaveVerification(ctx context.Context, userID int64, v *Verification) error
	GetVerification(ctx context.Context, userID int64) (*Verification, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, email, password_hash, name, phone, push_token, created_at, updated_at`

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := database.Executor(ctx, r.db).QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresRepository) getUser(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) UpdateContact(ctx context.Context, userID int64, phone, pushToken *string) (*User, error) {
	// Only columns the caller sent are written, and "" clears one
	query := `
		UPDATE users SET
			phone = CASE WHEN $2::boolean THEN NULLIF($3, '') ELSE phone END,
			push_token = CASE WHEN $4::boolean THEN NULLIF($5, '') ELSE push_token END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var u User
	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &u, query,
		userID, phone != nil, deref(phone), pushToken != nil, deref(pushToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) SaveVerification(ctx context.Context, userID int64, v *Verification) error {
	query := `
		INSERT INTO user_verifications (user_id, status, method, detail, verified_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			method = EXCLUDED.method,
			detail = EXCLUDED.detail,
			verified_at = EXCLUDED.verified_at`

	_, err := database.Executor(ctx, r.db).ExecContext(ctx, query, userID, v.Status, v.Method, v.Detail, v.VerifiedAt)
	if err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetVerification(ctx context.Context, userID int64) (*Verification, error) {
	var v Verification
	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &v, `
		SELECT status, method, detail, verified_at
		FROM user_verifications
		WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotVerified
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}
	return &v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
