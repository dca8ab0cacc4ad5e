// internal/routines/service.go

package routines

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/points"
	"github.com/rikacare/rika-backend/internal/streaks"
)

const (
	DailyCompletionAction = "Daily routine completion"
	recentRoutinesLimit   = 30

	msgCompleted        = "Routine completed for today"
	msgAlreadyCompleted = "Already completed today"
)

var ErrAlreadyMarked = errors.New("daily routine already completed")

// Notifier is told about milestones after the completion commits
type Notifier interface {
	MilestoneReached(ctx context.Context, userID int64, days int, message string)
}

type Service interface {
	CreateRoutine(ctx context.Context, userID int64, req *CreateRoutineRequest) (*Routine, error)
	ListRoutines(ctx context.Context, userID int64) ([]*Routine, error)
	// CompleteDay marks today done, advances the streak and credits points,
	// at most once per user per UTC calendar day.
	CompleteDay(ctx context.Context, userID int64) (*Completion, error)
	CompletedToday(ctx context.Context, userID int64) (bool, error)
}

type Config struct {
	DailyPoints int
	// Milestones maps an exact streak length to its bonus
	Milestones map[int]int
}

type service struct {
	repo     Repository
	streaks  streaks.Service
	points   points.Service
	tx       database.Transactor
	locks    *userlock.Locker
	notifier Notifier
	cfg      Config
	now      func() time.Time
	log      *logger.Logger
}

func NewService(repo Repository, st streaks.Service, pts points.Service, tx database.Transactor, locks *userlock.Locker, notifier Notifier, cfg Config, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		streaks:  st,
		points:   pts,
		tx:       tx,
		locks:    locks,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		log:      log.With("component", "routines"),
	}
}

func (s *service) today() civil.Date {
	return civil.DateOf(s.now().UTC())
}

func (s *service) CreateRoutine(ctx context.Context, userID int64, req *CreateRoutineRequest) (*Routine, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	r, err := s.repo.Create(ctx, &Routine{
		UserID:      userID,
		Type:        req.Type,
		Products:    req.Products,
		Completed:   req.Completed,
		Notes:       req.Notes,
		CompletedOn: s.today(),
	})
	if errors.Is(err, ErrAlreadyMarked) {
		return nil, apperr.Conflict(msgAlreadyCompleted, err)
	}
	if err != nil {
		return nil, err
	}

	routinesCreated.WithLabelValues(r.Type).Inc()
	return r, nil
}

func (s *service) ListRoutines(ctx context.Context, userID int64) ([]*Routine, error) {
	return s.repo.ListRecent(ctx, userID, recentRoutinesLimit)
}

func (s *service) CompletedToday(ctx context.Context, userID int64) (bool, error) {
	return s.repo.HasCompleted(ctx, userID, s.today())
}

func (s *service) CompleteDay(ctx context.Context, userID int64) (*Completion, error) {
	today := s.today()

	lctx, unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := &Completion{}
	milestoneDays := 0
	err = s.tx.WithinTx(lctx, func(ctx context.Context) error {
		// Reset in case the transaction is retried
		*out = Completion{}
		milestoneDays = 0

		done, err := s.repo.HasCompleted(ctx, userID, today)
		if err != nil {
			return err
		}
		if done {
			out.AlreadyCompleted = true
			return nil
		}

		inserted, err := s.repo.InsertDailyCompletion(ctx, userID, today)
		if err != nil {
			return err
		}
		if !inserted {
			out.AlreadyCompleted = true
			return nil
		}

		st, err := s.streaks.AdvanceStreak(ctx, userID, today)
		if err != nil {
			return err
		}
		out.Streak = st

		if _, err := s.points.AddPoints(ctx, userID, DailyCompletionAction, s.cfg.DailyPoints); err != nil {
			return fmt.Errorf("credit daily points: %w", err)
		}
		out.PointsAwarded = s.cfg.DailyPoints

		if bonus, ok := s.cfg.Milestones[st.CurrentStreak]; ok {
			action := fmt.Sprintf("%d-day streak milestone", st.CurrentStreak)
			if _, err := s.points.AddPoints(ctx, userID, action, bonus); err != nil {
				return fmt.Errorf("credit milestone points: %w", err)
			}
			out.PointsAwarded += bonus
			msg := MilestoneMessage(st.CurrentStreak)
			out.Milestone = &msg
			milestoneDays = st.CurrentStreak
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.AlreadyCompleted {
		st, err := s.streaks.GetStreak(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Streak = st
		out.Message = msgAlreadyCompleted
		return out, nil
	}

	out.Message = msgCompleted
	daysCompleted.Inc()
	s.log.Info("routine day completed", "user_id", userID, "streak", out.Streak.CurrentStreak, "points", out.PointsAwarded)

	if milestoneDays > 0 {
		milestonesReached.WithLabelValues(fmt.Sprint(milestoneDays)).Inc()
		if s.notifier != nil {
			s.notifier.MilestoneReached(ctx, userID, milestoneDays, *out.Milestone)
		}
	}
	return out, nil
}

// MilestoneMessage returns the celebration text for a streak milestone
func MilestoneMessage(days int) string {
	switch days {
	case 7:
		return "7-day streak! You're glowing, keep it up!"
	case 14:
		return "14-day streak! Your consistency is amazing!"
	case 30:
		return "30-day streak! You're a beauty routine champion!"
	}
	return fmt.Sprintf("%d-day streak! Keep shining!", days)
}
