// internal/routines/reminders.go

package routines

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rikacare/rika-backend/internal/common/logger"
)

// UserLister lists the users that may receive reminders
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// Reminder delivers a routine reminder to one user
type Reminder interface {
	RoutineReminder(ctx context.Context, userID int64) error
}

// ReminderScheduler reminds users who have not completed today's routine.
// It checks on every tick and sends at most one batch per day, once the
// configured UTC hour has been reached.
type ReminderScheduler struct {
	repo     Repository
	users    UserLister
	reminder Reminder
	interval time.Duration
	hourUTC  int
	now      func() time.Time
	lastRun  civil.Date
	stopCh   chan struct{}
	stopOnce sync.Once
	log      *logger.Logger
}

func NewReminderScheduler(repo Repository, users UserLister, reminder Reminder, interval time.Duration, hourUTC int, log *logger.Logger) *ReminderScheduler {
	if interval == 0 {
		interval = time.Hour
	}
	return &ReminderScheduler{
		repo:     repo,
		users:    users,
		reminder: reminder,
		interval: interval,
		hourUTC:  hourUTC,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		log:      log.With("component", "reminders"),
	}
}

// Start blocks until Stop is called or ctx is cancelled; run it in its own goroutine
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.log.Info("starting reminder scheduler", "interval", s.interval, "hour_utc", s.hourUTC)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-s.stopCh:
			s.log.Info("stopping reminder scheduler")
			return
		case <-ctx.Done():
			s.log.Info("context cancelled, stopping reminder scheduler")
			return
		}
	}
}

// Stop is safe to call more than once
func (s *ReminderScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *ReminderScheduler) tick(ctx context.Context) {
	now := s.now().UTC()
	today := civil.DateOf(now)
	if now.Hour() < s.hourUTC || s.lastRun == today {
		return
	}

	sent, err := s.SendReminders(ctx, today)
	if err != nil {
		s.log.Error("reminder run failed", "error", err)
		return
	}
	s.lastRun = today
	s.log.Info("reminders sent", "date", today.String(), "count", sent)
}

// SendReminders notifies every user without a completed routine on day.
// Delivery failures are logged and skipped.
func (s *ReminderScheduler) SendReminders(ctx context.Context, day civil.Date) (int, error) {
	ids, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	done, err := s.repo.CompletedUserIDs(ctx, day)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range ids {
		if done[id] {
			continue
		}
		if err := s.reminder.RoutineReminder(ctx, id); err != nil {
			s.log.Warn("reminder delivery failed", "user_id", id, "error", err)
			continue
		}
		sent++
		remindersSent.Inc()
	}
	return sent, nil
}
