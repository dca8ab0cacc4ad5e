// internal/streaks/service.go

package streaks

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
)

type Service interface {
	// GetStreak never fails for a user without a record; it returns {0, 0, nil}
	GetStreak(ctx context.Context, userID int64) (*State, error)
	// AdvanceStreak records activity on today. Only the daily completion flow calls it.
	AdvanceStreak(ctx context.Context, userID int64, today civil.Date) (*State, error)
}

type service struct {
	repo Repository
	tx   database.Transactor
	log  *logger.Logger
}

func NewService(repo Repository, tx database.Transactor, log *logger.Logger) Service {
	return &service{repo: repo, tx: tx, log: log.With("component", "streaks")}
}

func (s *service) GetStreak(ctx context.Context, userID int64) (*State, error) {
	st, err := s.repo.GetStreak(ctx, userID)
	if errors.Is(err, ErrStreakNotFound) {
		return &State{UserID: userID}, nil
	}
	return st, err
}

func (s *service) AdvanceStreak(ctx context.Context, userID int64, today civil.Date) (*State, error) {
	var out State
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, userID)
		if err != nil && !errors.Is(err, ErrStreakNotFound) {
			return err
		}
		if current == nil {
			current = &State{UserID: userID}
		}

		out = Advance(current, today)
		out.UserID = userID
		if err := s.repo.SaveStreak(ctx, &out); err != nil {
			return fmt.Errorf("advance streak: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("streak advanced", "user_id", userID, "current", out.CurrentStreak, "longest", out.LongestStreak)
	return &out, nil
}
