// internal/common/database/migrations.go
// Schema creation, run once at startup

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rikacare/rika-backend/internal/common/logger"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(120) NOT NULL DEFAULT '',
		phone VARCHAR(20),
		push_token TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		skin_type VARCHAR(20) NOT NULL DEFAULT '',
		skin_concerns TEXT[] NOT NULL DEFAULT '{}',
		hair_type VARCHAR(20) NOT NULL DEFAULT '',
		hair_concerns TEXT[] NOT NULL DEFAULT '{}',
		ingredient_sensitivities TEXT[] NOT NULL DEFAULT '{}',
		clean_beauty_preference BOOLEAN NOT NULL DEFAULT TRUE,
		language VARCHAR(8) NOT NULL DEFAULT 'en',
		recommendation_views BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		brand VARCHAR(120) NOT NULL,
		category VARCHAR(10) NOT NULL CHECK (category IN ('skin', 'hair')),
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		ingredients TEXT[] NOT NULL DEFAULT '{}',
		is_natural BOOLEAN NOT NULL DEFAULT FALSE,
		is_fragrance_free BOOLEAN NOT NULL DEFAULT FALSE,
		is_cruelty_free BOOLEAN NOT NULL DEFAULT FALSE,
		is_sulfate_free BOOLEAN NOT NULL DEFAULT FALSE,
		is_paraben_free BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS routines (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(30) NOT NULL,
		products TEXT[] NOT NULL DEFAULT '{}',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT NOT NULL DEFAULT '',
		completed_on DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_routines_user_day ON routines(user_id, completed_on)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_routines_daily_once
		ON routines(user_id, completed_on) WHERE type = 'daily' AND completed`,

	`CREATE TABLE IF NOT EXISTS user_streaks (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_streak INTEGER NOT NULL DEFAULT 0 CHECK (current_streak >= 0),
		longest_streak INTEGER NOT NULL DEFAULT 0 CHECK (longest_streak >= current_streak),
		last_activity_date DATE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_points (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		total_points INTEGER NOT NULL DEFAULT 0 CHECK (total_points >= 0),
		history JSONB NOT NULL DEFAULT '[]',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS rewards (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		required_points INTEGER NOT NULL CHECK (required_points > 0),
		type VARCHAR(30) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS community_posts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content VARCHAR(280) NOT NULL,
		routine_snapshot JSONB,
		images TEXT[] NOT NULL DEFAULT '{}',
		visibility VARCHAR(20) NOT NULL DEFAULT 'PUBLIC',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_community_posts_created ON community_posts(created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS community_likes (
		post_id BIGINT NOT NULL REFERENCES community_posts(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (post_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_follows (
		follower_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		following_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (follower_id, following_id),
		CHECK (follower_id <> following_id)
	)`,

	`CREATE TABLE IF NOT EXISTS influencer_status (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL,
		tier VARCHAR(20) NOT NULL,
		commission NUMERIC(4,2) NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(30) NOT NULL,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		data JSONB NOT NULL DEFAULT '{}',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		read_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS analyses (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(10) NOT NULL,
		method VARCHAR(20) NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_user ON analyses(user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS user_verifications (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL,
		method VARCHAR(20) NOT NULL,
		detail JSONB NOT NULL DEFAULT '{}',
		verified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// RunMigrations creates all tables and indexes that do not exist yet
func RunMigrations(ctx context.Context, db *sqlx.DB, log *logger.Logger) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	log.Info("database migrations applied", "statements", len(migrations))
	return nil
}
