// internal/notification/service.go

package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rikacare/rika-backend/internal/auth"
	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/logger"
)

const deliveryTimeout = 15 * time.Second

// UserLookup resolves delivery addresses. auth.Repository satisfies it.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*auth.User, error)
}

type Senders struct {
	Email EmailSender
	SMS   SMSSender
	Push  PushSender
}

// Service is the in-app inbox
type Service interface {
	List(ctx context.Context, userID int64, limit int, unreadOnly bool) (*Inbox, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID int64, limit int, unreadOnly bool) (*Inbox, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	items, err := s.repo.GetUserNotifications(ctx, userID, limit, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Inbox{Notifications: items, UnreadCount: unread}, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	err := s.repo.MarkAsRead(ctx, notificationID, userID)
	if errors.Is(err, ErrNotificationNotFound) {
		return apperr.NotFound("Notification not found", err)
	}
	return err
}

func (s *service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Notifier turns domain events into an inbox entry plus an out-of-app
// message. Event hooks run after the triggering transaction has committed
// and never fail the caller; delivery happens in the background.
type Notifier struct {
	repo    Repository
	users   UserLookup
	senders Senders
	log     *logger.Logger
	wg      sync.WaitGroup
}

func NewNotifier(repo Repository, users UserLookup, senders Senders, log *logger.Logger) *Notifier {
	return &Notifier{
		repo:    repo,
		users:   users,
		senders: senders,
		log:     log.With("component", "notification"),
	}
}

// Wait blocks until background deliveries started so far have finished
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(ctx context.Context, event string, userID int64, fn func(ctx context.Context) error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			n.log.Warn("notification failed", "event", event, "user_id", userID, "error", err)
		}
	}()
}

// MilestoneReached stores the milestone in the inbox and pushes it
func (n *Notifier) MilestoneReached(ctx context.Context, userID int64, days int, message string) {
	n.dispatch(ctx, "milestone", userID, func(ctx context.Context) error {
		n.record(ctx, &Notification{
			UserID:  userID,
			Type:    TypeStreakMilestone,
			Title:   milestoneTitle,
			Message: message,
			Data:    Data{"days": days},
		})

		user, err := n.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.PushToken == nil {
			sent.WithLabelValues(string(ChannelPush), "skipped").Inc()
			return nil
		}
		return n.deliver(ChannelPush, func() error {
			return n.senders.Push.SendPush(ctx, &PushMessage{
				Token: *user.PushToken,
				Title: milestoneTitle,
				Body:  message,
				Data:  map[string]string{"type": string(TypeStreakMilestone), "days": strconv.Itoa(days)},
			})
		})
	})
}

// RewardRedeemed stores the redemption in the inbox and emails a confirmation
func (n *Notifier) RewardRedeemed(ctx context.Context, userID int64, rewardName string, pointsUsed int) {
	n.dispatch(ctx, "reward_redeemed", userID, func(ctx context.Context) error {
		n.record(ctx, &Notification{
			UserID:  userID,
			Type:    TypeRewardRedeemed,
			Title:   "Reward redeemed",
			Message: fmt.Sprintf("You redeemed %s for %d points.", rewardName, pointsUsed),
			Data:    Data{"reward": rewardName, "pointsUsed": pointsUsed},
		})

		user, err := n.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		msg, err := renderRedemptionEmail(user.Name, rewardName, pointsUsed)
		if err != nil {
			return err
		}
		msg.To = user.Email
		return n.deliver(ChannelEmail, func() error {
			return n.senders.Email.SendEmail(ctx, msg)
		})
	})
}

// RoutineReminder texts the user, falling back to push when no phone number
// is on file. Users with neither are skipped.
func (n *Notifier) RoutineReminder(ctx context.Context, userID int64) error {
	user, err := n.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	switch {
	case user.Phone != nil:
		return n.deliver(ChannelSMS, func() error {
			return n.senders.SMS.SendSMS(ctx, &SMSMessage{To: *user.Phone, Message: reminderMessage})
		})
	case user.PushToken != nil:
		return n.deliver(ChannelPush, func() error {
			return n.senders.Push.SendPush(ctx, &PushMessage{
				Token: *user.PushToken,
				Title: reminderTitle,
				Body:  reminderMessage,
				Data:  map[string]string{"type": "routine_reminder"},
			})
		})
	default:
		sent.WithLabelValues("none", "skipped").Inc()
		return nil
	}
}

func (n *Notifier) record(ctx context.Context, item *Notification) {
	if err := n.repo.CreateNotification(ctx, item); err != nil {
		n.log.Warn("failed to store notification", "user_id", item.UserID, "type", item.Type, "error", err)
	}
}

func (n *Notifier) deliver(ch Channel, send func() error) error {
	if err := send(); err != nil {
		sent.WithLabelValues(string(ch), "failed").Inc()
		return err
	}
	sent.WithLabelValues(string(ch), "sent").Inc()
	return nil
}
