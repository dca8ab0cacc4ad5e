// internal/rewards/service.go

package rewards

import (
	"context"
	"errors"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/points"
)

const msgRewardUnavailable = "Reward not found or inactive"

// Notifier is told about redemptions after they commit
type Notifier interface {
	RewardRedeemed(ctx context.Context, userID int64, rewardName string, pointsUsed int)
}

type Service interface {
	ListRewards(ctx context.Context) ([]*Reward, error)
	CreateReward(ctx context.Context, req *CreateRewardRequest) (*Reward, error)
	Redeem(ctx context.Context, userID, rewardID int64) (*RedeemResult, error)
}

type service struct {
	repo     Repository
	points   points.Service
	tx       database.Transactor
	locks    *userlock.Locker
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository, pts points.Service, tx database.Transactor, locks *userlock.Locker, notifier Notifier, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		points:   pts,
		tx:       tx,
		locks:    locks,
		notifier: notifier,
		log:      log.With("component", "rewards"),
	}
}

func (s *service) ListRewards(ctx context.Context) ([]*Reward, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) CreateReward(ctx context.Context, req *CreateRewardRequest) (*Reward, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

// Redeem exchanges points for a reward. The balance check and the debit happen
// under the user's lock in one transaction, so concurrent redemptions cannot
// overdraw the account.
func (s *service) Redeem(ctx context.Context, userID, rewardID int64) (*RedeemResult, error) {
	if rewardID <= 0 {
		return nil, apperr.Validation("Invalid reward id")
	}

	lctx, unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		reward  *Reward
		account *points.Account
	)
	err = s.tx.WithinTx(lctx, func(ctx context.Context) error {
		reward, err = s.repo.GetByID(ctx, rewardID)
		if errors.Is(err, ErrRewardNotFound) || (err == nil && !reward.IsActive) {
			return apperr.NotFound(msgRewardUnavailable, err)
		}
		if err != nil {
			return err
		}

		account, err = s.points.Spend(ctx, userID, reward.RequiredPoints, points.Entry{
			Action:     points.ActionRedeem,
			RewardID:   reward.ID,
			RewardName: reward.Name,
			PointsUsed: reward.RequiredPoints,
		})
		return err
	})
	if err != nil {
		outcome := string(apperr.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
		redemptions.WithLabelValues(outcome).Inc()
		return nil, err
	}

	redemptions.WithLabelValues("ok").Inc()
	s.log.Info("reward redeemed", "user_id", userID, "reward_id", reward.ID, "points_used", reward.RequiredPoints, "total", account.TotalPoints)
	if s.notifier != nil {
		s.notifier.RewardRedeemed(ctx, userID, reward.Name, reward.RequiredPoints)
	}

	return &RedeemResult{TotalPoints: account.TotalPoints, Redeemed: true, RewardName: reward.Name}, nil
}
