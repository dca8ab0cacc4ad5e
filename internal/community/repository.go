// internal/community/repository.go

package community

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

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrNoInfluencerStatus = errors.New("no influencer status")
)

type Repository interface {
	CreatePost(ctx context.Context, p *Post) (*Post, error)
	// GetFeed returns public posts newest first, with like data for viewerID
	GetFeed(ctx context.Context, viewerID int64, limit int) ([]*Post, error)
	// ToggleLike flips the like and returns the new state and count
	ToggleLike(ctx context.Context, postID, userID int64) (bool, int, error)
	// ToggleFollow flips the follow and returns the new state and the target's follower count
	ToggleFollow(ctx context.Context, followerID, targetID int64) (bool, int, error)
	ListFollowers(ctx context.Context, userID int64, limit int) ([]int64, int, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	GetInfluencerStatus(ctx context.Context, userID int64) (*InfluencerStatus, error)
	SaveInfluencerStatus(ctx context.Context, userID int64, st *InfluencerStatus) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type postRow struct {
	ID              int64          `db:"id"`
	UserID          int64          `db:"user_id"`
	Content         string         `db:"content"`
	RoutineSnapshot []byte         `db:"routine_snapshot"`
	Images          pq.StringArray `db:"images"`
	Visibility      string         `db:"visibility"`
	CreatedAt       time.Time      `db:"created_at"`
	LikeCount       int            `db:"like_count"`
	UserLiked       bool           `db:"user_liked"`
}

func (r postRow) toPost() *Post {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return &Post{
		ID:              r.ID,
		UserID:          r.UserID,
		Content:         r.Content,
		RoutineSnapshot: r.RoutineSnapshot,
		Images:          images,
		Visibility:      r.Visibility,
		CreatedAt:       r.CreatedAt,
		LikeCount:       r.LikeCount,
		UserLiked:       r.UserLiked,
	}
}

func (r *postgresRepository) CreatePost(ctx context.Context, p *Post) (*Post, error) {
	var snapshot interface{}
	if len(p.RoutineSnapshot) > 0 {
		snapshot = []byte(p.RoutineSnapshot)
	}

	var row postRow
	query := `
		INSERT INTO community_posts (user_id, content, routine_snapshot, images, visibility)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, content, routine_snapshot, images, visibility, created_at,
			0 AS like_count, FALSE AS user_liked`

	err := r.db.GetContext(ctx, &row, query, p.UserID, p.Content, snapshot, pq.Array(p.Images), p.Visibility)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return row.toPost(), nil
}

func (r *postgresRepository) GetFeed(ctx context.Context, viewerID int64, limit int) ([]*Post, error) {
	var rows []postRow
	query := `
		SELECT p.id, p.user_id, p.content, p.routine_snapshot, p.images, p.visibility, p.created_at,
			(SELECT COUNT(*) FROM community_likes l WHERE l.post_id = p.id) AS like_count,
			EXISTS (SELECT 1 FROM community_likes l WHERE l.post_id = p.id AND l.user_id = $1) AS user_liked
		FROM community_posts p
		WHERE p.visibility = 'PUBLIC'
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &rows, query, viewerID, limit); err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	out := make([]*Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toPost())
	}
	return out, nil
}

func (r *postgresRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, int, error) {
	q := database.Executor(ctx, r.db)

	var exists bool
	if err := sqlx.GetContext(ctx, q, &exists, `SELECT EXISTS (SELECT 1 FROM community_posts WHERE id = $1)`, postID); err != nil {
		return false, 0, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return false, 0, ErrPostNotFound
	}

	res, err := q.ExecContext(ctx, `DELETE FROM community_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to unlike post: %w", err)
	}
	liked := false
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO community_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, userID); err != nil {
			return false, 0, fmt.Errorf("failed to like post: %w", err)
		}
		liked = true
	}

	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(*) FROM community_likes WHERE post_id = $1`, postID); err != nil {
		return false, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return liked, count, nil
}

func (r *postgresRepository) ToggleFollow(ctx context.Context, followerID, targetID int64) (bool, int, error) {
	q := database.Executor(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`, followerID, targetID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to unfollow: %w", err)
	}
	following := false
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO user_follows (follower_id, following_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, followerID, targetID); err != nil {
			return false, 0, fmt.Errorf("failed to follow: %w", err)
		}
		following = true
	}

	count, err := r.countFollowers(ctx, q, targetID)
	return following, count, err
}

func (r *postgresRepository) ListFollowers(ctx context.Context, userID int64, limit int) ([]int64, int, error) {
	ids := []int64{}
	query := `SELECT follower_id FROM user_follows WHERE following_id = $1 ORDER BY created_at, follower_id LIMIT $2`
	if err := r.db.SelectContext(ctx, &ids, query, userID, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list followers: %w", err)
	}
	count, err := r.countFollowers(ctx, r.db, userID)
	return ids, count, err
}

func (r *postgresRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	return r.countFollowers(ctx, database.Executor(ctx, r.db), userID)
}

func (r *postgresRepository) countFollowers(ctx context.Context, q sqlx.QueryerContext, userID int64) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, `SELECT COUNT(*) FROM user_follows WHERE following_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) GetInfluencerStatus(ctx context.Context, userID int64) (*InfluencerStatus, error) {
	var st InfluencerStatus
	query := `SELECT status, tier, commission::float8, updated_at FROM influencer_status WHERE user_id = $1`
	err := database.Executor(ctx, r.db).QueryRowxContext(ctx, query, userID).
		Scan(&st.Status, &st.Tier, &st.Commission, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoInfluencerStatus
		}
		return nil, fmt.Errorf("failed to get influencer status: %w", err)
	}
	return &st, nil
}

func (r *postgresRepository) SaveInfluencerStatus(ctx context.Context, userID int64, st *InfluencerStatus) error {
	query := `
		INSERT INTO influencer_status (user_id, status, tier, commission, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			tier = EXCLUDED.tier,
			commission = EXCLUDED.commission,
			updated_at = EXCLUDED.updated_at`

	_, err := database.Executor(ctx, r.db).ExecContext(ctx, query, userID, st.Status, st.Tier, st.Commission, st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save influencer status: %w", err)
	}
	return nil
}
