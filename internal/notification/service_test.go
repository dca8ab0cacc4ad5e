package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rikacare/rika-backend/internal/auth"
	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/logger"
)

type fixture struct {
	notifier *Notifier
	inbox    Service
	users    *auth.MemoryRepository
	email    *MockEmailSender
	sms      *MockSMSSender
	push     *MockPushSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := NewMemoryRepository()
	f := &fixture{
		inbox: NewService(repo),
		users: auth.NewMemoryRepository(),
		email: &MockEmailSender{},
		sms:   &MockSMSSender{},
		push:  &MockPushSender{},
	}
	f.notifier = NewNotifier(repo, f.users, Senders{Email: f.email, SMS: f.sms, Push: f.push}, logger.Nop())
	return f
}

func (f *fixture) user(t *testing.T, email string, phone, token string) int64 {
	t.Helper()
	ctx := context.Background()
	u := &auth.User{Email: email, Name: "Amara Okafor", PasswordHash: "x"}
	if err := f.users.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	if _, err := f.users.UpdateContact(ctx, u.ID, &phone, &token); err != nil {
		t.Fatal(err)
	}
	return u.ID
}

func TestMilestoneReachedPushesAndRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.user(t, "amara@rika.app", "", "device-1")

	f.notifier.MilestoneReached(ctx, id, 7, "7-day streak! You're building great habits!")
	f.notifier.Wait()

	pushes := f.push.Messages()
	if len(pushes) != 1 {
		t.Fatalf("pushes = %d", len(pushes))
	}
	if pushes[0].Token != "device-1" || pushes[0].Data["days"] != "7" {
		t.Fatalf("push = %+v", pushes[0])
	}

	inbox, err := f.inbox.List(ctx, id, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(inbox.Notifications) != 1 || inbox.UnreadCount != 1 {
		t.Fatalf("inbox = %+v", inbox)
	}
	if inbox.Notifications[0].Type != TypeStreakMilestone {
		t.Fatalf("type = %s", inbox.Notifications[0].Type)
	}
}

func TestMilestoneWithoutTokenStillRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.user(t, "amara@rika.app", "", "")

	f.notifier.MilestoneReached(ctx, id, 14, "two weeks")
	f.notifier.Wait()

	if n := len(f.push.Messages()); n != 0 {
		t.Fatalf("pushed %d without a token", n)
	}
	inbox, _ := f.inbox.List(ctx, id, 0, false)
	if len(inbox.Notifications) != 1 {
		t.Fatalf("inbox = %d", len(inbox.Notifications))
	}
}

func TestRewardRedeemedEmails(t *testing.T) {
	f := newFixture(t)
	id := f.user(t, "amara@rika.app", "", "")

	// Cancelled request context must not abort delivery
	ctx, cancel := context.WithCancel(context.Background())
	f.notifier.RewardRedeemed(ctx, id, "Free Sample Box", 300)
	cancel()
	f.notifier.Wait()

	emails := f.email.Messages()
	if len(emails) != 1 {
		t.Fatalf("emails = %d", len(emails))
	}
	e := emails[0]
	if e.To != "amara@rika.app" {
		t.Fatalf("to = %q", e.To)
	}
	if !strings.Contains(e.Body, "Free Sample Box") || !strings.Contains(e.HTML, "300 points") {
		t.Fatalf("email body missing details: %q", e.Body)
	}
}

func TestRoutineReminderChannels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	withPhone := f.user(t, "a@rika.app", "+2348000000000", "token-a")
	pushOnly := f.user(t, "b@rika.app", "", "token-b")
	neither := f.user(t, "c@rika.app", "", "")

	for _, id := range []int64{withPhone, pushOnly, neither} {
		if err := f.notifier.RoutineReminder(ctx, id); err != nil {
			t.Fatalf("user %d: %v", id, err)
		}
	}

	sms := f.sms.Messages()
	if len(sms) != 1 || sms[0].To != "+2348000000000" {
		t.Fatalf("sms = %+v", sms)
	}
	push := f.push.Messages()
	if len(push) != 1 || push[0].Token != "token-b" {
		t.Fatalf("push = %+v", push)
	}

	if err := f.notifier.RoutineReminder(ctx, 999); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("unknown user: %v", err)
	}
}

type failingSMS struct{}

func (failingSMS) SendSMS(context.Context, *SMSMessage) error { return errors.New("twilio down") }

func TestRoutineReminderReportsProviderError(t *testing.T) {
	f := newFixture(t)
	f.notifier.senders.SMS = failingSMS{}
	id := f.user(t, "a@rika.app", "+2348000000000", "")

	if err := f.notifier.RoutineReminder(context.Background(), id); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestInboxMarkRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.user(t, "amara@rika.app", "", "")
	other := f.user(t, "bola@rika.app", "", "")

	f.notifier.MilestoneReached(ctx, id, 7, "one")
	f.notifier.Wait()
	f.notifier.RewardRedeemed(ctx, id, "Digital Skin Guide", 150)
	f.notifier.Wait()

	inbox, _ := f.inbox.List(ctx, id, 0, false)
	if len(inbox.Notifications) != 2 || inbox.Notifications[0].Type != TypeRewardRedeemed {
		t.Fatalf("inbox not newest first: %+v", inbox.Notifications)
	}

	first := inbox.Notifications[1].ID
	if err := f.inbox.MarkAsRead(ctx, other, first); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("foreign mark: %v", err)
	}
	if err := f.inbox.MarkAsRead(ctx, id, first); err != nil {
		t.Fatal(err)
	}

	unread, _ := f.inbox.List(ctx, id, 0, true)
	if len(unread.Notifications) != 1 || unread.UnreadCount != 1 {
		t.Fatalf("unread = %+v", unread)
	}

	if err := f.inbox.MarkAllAsRead(ctx, id); err != nil {
		t.Fatal(err)
	}
	all, _ := f.inbox.List(ctx, id, 0, false)
	if all.UnreadCount != 0 || all.Notifications[0].ReadAt == nil {
		t.Fatalf("after read-all = %+v", all)
	}
}

func TestDataScan(t *testing.T) {
	var d Data
	if err := d.Scan([]byte(`{"days":7}`)); err != nil {
		t.Fatal(err)
	}
	if d["days"] != float64(7) {
		t.Fatalf("days = %v", d["days"])
	}
	if err := d.Scan(nil); err != nil || len(d) != 0 {
		t.Fatalf("nil scan = %v %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("int scan accepted")
	}
}
