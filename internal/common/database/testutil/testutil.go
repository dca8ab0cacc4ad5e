// Package testutil opens a Postgres database for repository integration tests.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
)

// DB connects to TEST_POSTGRES_DSN, runs migrations and truncates all tables.
// The test is skipped when the variable is not set.
func DB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping Postgres integration test")
	}

	db, err := database.NewPostgresDBFromURL(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db, logger.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE users, products, rewards RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

// CreateUser inserts a bare user row and returns its id
func CreateUser(t *testing.T, db *sqlx.DB, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowxContext(context.Background(),
		`INSERT INTO users (email, password_hash, name) VALUES ($1, 'x', $1) RETURNING id`, email).Scan(&id)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}
