// internal/points/service.go

package points

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
)

type Service interface {
	AddPoints(ctx context.Context, userID int64, action string, points int) (*AddResult, error)
	// Spend debits cost and appends entry, failing with InsufficientBalance when
	// the balance is too low. entry.Points is overwritten with -cost.
	Spend(ctx context.Context, userID int64, cost int, entry Entry) (*Account, error)
	// GetPoints returns {0, []} for a user who never earned points
	GetPoints(ctx context.Context, userID int64) (*Account, error)
}

type service struct {
	repo  Repository
	tx    database.Transactor
	locks *userlock.Locker
	now   func() time.Time
	log   *logger.Logger
}

func NewService(repo Repository, tx database.Transactor, locks *userlock.Locker, log *logger.Logger) Service {
	return &service{
		repo:  repo,
		tx:    tx,
		locks: locks,
		now:   time.Now,
		log:   log.With("component", "points"),
	}
}

func (s *service) AddPoints(ctx context.Context, userID int64, action string, points int) (*AddResult, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, apperr.Validation("Action is required")
	}
	if points <= 0 {
		return nil, apperr.Validation("Points must be a positive integer")
	}

	var total int
	err := s.mutate(ctx, userID, func(a *Account) error {
		a.History = append(a.History, s.newEntry(action, points))
		a.TotalPoints += points
		total = a.TotalPoints
		return nil
	})
	if err != nil {
		return nil, err
	}

	pointsCredited.Add(float64(points))
	s.log.Info("points added", "user_id", userID, "action", action, "points", points, "total", total)
	return &AddResult{TotalPoints: total, Added: points}, nil
}

func (s *service) Spend(ctx context.Context, userID int64, cost int, entry Entry) (*Account, error) {
	if cost <= 0 {
		return nil, apperr.Validation("Cost must be a positive integer")
	}

	var out *Account
	err := s.mutate(ctx, userID, func(a *Account) error {
		if a.TotalPoints < cost {
			return apperr.InsufficientBalance(cost-a.TotalPoints, nil)
		}
		e := s.newEntry(entry.Action, -cost)
		e.RewardID = entry.RewardID
		e.RewardName = entry.RewardName
		e.PointsUsed = entry.PointsUsed
		a.History = append(a.History, e)
		a.TotalPoints -= cost
		out = copyAccount(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	pointsDebited.Add(float64(cost))
	s.log.Info("points spent", "user_id", userID, "action", entry.Action, "cost", cost, "total", out.TotalPoints)
	return out, nil
}

func (s *service) GetPoints(ctx context.Context, userID int64) (*Account, error) {
	a, err := s.repo.GetAccount(ctx, userID)
	if errors.Is(err, ErrAccountNotFound) {
		return &Account{UserID: userID, History: History{}}, nil
	}
	return a, err
}

// mutate runs fn on the locked account and saves the result in one transaction.
// A missing account starts empty.
func (s *service) mutate(ctx context.Context, userID int64, fn func(a *Account) error) error {
	ctx, unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetForUpdate(ctx, userID)
		if errors.Is(err, ErrAccountNotFound) {
			a = &Account{UserID: userID, History: History{}}
		} else if err != nil {
			return err
		}

		if err := fn(a); err != nil {
			return err
		}
		if err := s.repo.SaveAccount(ctx, a); err != nil {
			return fmt.Errorf("save points: %w", err)
		}
		return nil
	})
}

func (s *service) newEntry(action string, points int) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Action:    action,
		Points:    points,
		Timestamp: s.now().UTC(),
	}
}
