// internal/community/service.go

package community

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/profile"
)

const anonymousName = "Anonymous User"

var ErrCannotFollowSelf = errors.New("cannot follow yourself")

type Service interface {
	GetFeed(ctx context.Context, viewerID int64, limit int) ([]*Post, error)
	CreatePost(ctx context.Context, userID int64, req *CreatePostRequest) (*Post, error)
	UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
	ToggleLike(ctx context.Context, userID, postID int64) (*LikeResult, error)
	ToggleFollow(ctx context.Context, followerID, targetID int64) (*FollowResult, error)
	ListFollowers(ctx context.Context, userID int64) (*Followers, error)
	InfluencerStatus(ctx context.Context, userID int64) (*InfluencerOverview, error)
	ApplyInfluencer(ctx context.Context, userID int64) (*InfluencerStatus, error)
}

type RateConfig struct {
	PostsPerMinute float64
	Burst          int
}

type service struct {
	repo     Repository
	profiles profile.Service
	images   ImageStore
	tx       database.Transactor
	locks    *userlock.Locker
	log      *logger.Logger

	rateCfg  RateConfig
	limMu    sync.Mutex
	limiters map[int64]*rate.Limiter

	now func() time.Time
}

func NewService(repo Repository, profiles profile.Service, images ImageStore, tx database.Transactor, locks *userlock.Locker, rc RateConfig, log *logger.Logger) Service {
	if rc.Burst <= 0 {
		rc.Burst = 1
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		images:   images,
		tx:       tx,
		locks:    locks,
		log:      log.With("component", "community"),
		rateCfg:  rc,
		limiters: make(map[int64]*rate.Limiter),
		now:      time.Now,
	}
}

func (s *service) limiter(userID int64) *rate.Limiter {
	s.limMu.Lock()
	defer s.limMu.Unlock()

	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.rateCfg.PostsPerMinute/60), s.rateCfg.Burst)
		s.limiters[userID] = l
	}
	return l
}

// author resolves the display identity of a user. Missing profiles fall back
// to the anonymous author rather than failing the feed.
func (s *service) author(ctx context.Context, userID int64) Author {
	p, err := s.profiles.GetUserProfile(ctx, userID)
	if err != nil || strings.TrimSpace(p.DisplayName) == "" {
		if err != nil && !apperr.Is(err, apperr.KindNotFound) {
			s.log.Warn("author lookup failed", "user_id", userID, "error", err)
		}
		return Author{Name: anonymousName, Initials: profile.Initials("")}
	}
	return Author{Name: p.DisplayName, Initials: profile.Initials(p.DisplayName)}
}

func (s *service) GetFeed(ctx context.Context, viewerID int64, limit int) ([]*Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	limit = min(limit, MaxFeedLimit)

	posts, err := s.repo.GetFeed(ctx, viewerID, limit)
	if err != nil {
		return nil, err
	}

	authors := make(map[int64]Author)
	for _, p := range posts {
		a, ok := authors[p.UserID]
		if !ok {
			a = s.author(ctx, p.UserID)
			authors[p.UserID] = a
		}
		p.User = a
	}
	return posts, nil
}

func (s *service) CreatePost(ctx context.Context, userID int64, req *CreatePostRequest) (*Post, error) {
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return nil, apperr.Validation("Content is required")
	}
	if utf8.RuneCountInString(req.Content) > MaxContentLength {
		return nil, apperr.Validation("Content must be 280 characters or less")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if !s.limiter(userID).AllowN(s.now(), 1) {
		postsRejected.Inc()
		return nil, apperr.New(apperr.KindRateLimited, "You are posting too quickly. Please wait a moment.", nil)
	}

	post, err := s.repo.CreatePost(ctx, &Post{
		UserID:          userID,
		Content:         req.Content,
		RoutineSnapshot: req.RoutineSnapshot,
		Images:          req.Images,
		Visibility:      VisibilityPublic,
	})
	if err != nil {
		return nil, err
	}

	postsCreated.Inc()
	post.User = s.author(ctx, userID)
	s.log.Info("community post created", "user_id", userID, "post_id", post.ID, "images", len(post.Images))
	return post, nil
}

func (s *service) UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if s.images == nil {
		return "", apperr.Validation("Image uploads are not enabled")
	}
	url, err := s.images.Save(ctx, filename, contentType, size, r)
	if err != nil {
		return "", apperr.New(apperr.KindValidation, err.Error(), err)
	}
	return url, nil
}

func (s *service) ToggleLike(ctx context.Context, userID, postID int64) (*LikeResult, error) {
	if postID <= 0 {
		return nil, apperr.Validation("Post ID is required")
	}

	lctx, unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		liked bool
		count int
	)
	err = s.tx.WithinTx(lctx, func(ctx context.Context) error {
		liked, count, err = s.repo.ToggleLike(ctx, postID, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperr.NotFound("Post not found", err)
		}
		return nil, err
	}

	action := "unliked"
	if liked {
		action = "liked"
	}
	likesToggled.WithLabelValues(action).Inc()
	return &LikeResult{Liked: liked, LikeCount: count, Action: action}, nil
}

// ToggleFollow flips the follow relation. Crossing the influencer minimum on
// a follow records the target as eligible unless it already has a status.
func (s *service) ToggleFollow(ctx context.Context, followerID, targetID int64) (*FollowResult, error) {
	if followerID == targetID {
		return nil, apperr.New(apperr.KindValidation, "Cannot follow yourself", ErrCannotFollowSelf)
	}
	if _, err := s.profiles.GetUserProfile(ctx, targetID); err != nil {
		return nil, err
	}

	lctx, unlock, err := s.locks.Lock(ctx, followerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		following bool
		count     int
	)
	err = s.tx.WithinTx(lctx, func(ctx context.Context) error {
		following, count, err = s.repo.ToggleFollow(ctx, followerID, targetID)
		if err != nil || !following || count < influencerMinFollowers {
			return err
		}

		if _, serr := s.repo.GetInfluencerStatus(ctx, targetID); !errors.Is(serr, ErrNoInfluencerStatus) {
			return serr
		}
		tier, _ := tierFor(count)
		return s.repo.SaveInfluencerStatus(ctx, targetID, &InfluencerStatus{
			Status:    StatusEligible,
			Tier:      tier,
			UpdatedAt: s.now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("follow toggled", "follower_id", followerID, "target_id", targetID, "following", following, "followers", count)
	return &FollowResult{Following: following, FollowersCount: count}, nil
}

func (s *service) ListFollowers(ctx context.Context, userID int64) (*Followers, error) {
	if _, err := s.profiles.GetUserProfile(ctx, userID); err != nil {
		return nil, err
	}
	ids, count, err := s.repo.ListFollowers(ctx, userID, FollowersPreview)
	if err != nil {
		return nil, err
	}
	return &Followers{Count: count, Followers: ids}, nil
}

func (s *service) InfluencerStatus(ctx context.Context, userID int64) (*InfluencerOverview, error) {
	count, err := s.repo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	st, err := s.repo.GetInfluencerStatus(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoInfluencerStatus) {
		return nil, err
	}
	return &InfluencerOverview{
		FollowersCount: count,
		Status:         st,
		Eligibility:    eligibilityFor(count),
	}, nil
}

func (s *service) ApplyInfluencer(ctx context.Context, userID int64) (*InfluencerStatus, error) {
	count, err := s.repo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count < influencerMinFollowers {
		return nil, apperr.Validation("Minimum 100 followers required")
	}

	tier, commission := tierFor(count)
	st := &InfluencerStatus{
		Status:     StatusPending,
		Tier:       tier,
		Commission: commission,
		UpdatedAt:  s.now().UTC(),
	}
	if err := s.repo.SaveInfluencerStatus(ctx, userID, st); err != nil {
		return nil, err
	}

	s.log.Info("influencer application submitted", "user_id", userID, "tier", tier, "followers", count)
	return st, nil
}
