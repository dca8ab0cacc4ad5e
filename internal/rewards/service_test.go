package rewards

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/database/testutil"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/points"
)

type recordingNotifier struct {
	mu    sync.Mutex
	names []string
}

func (n *recordingNotifier) RewardRedeemed(_ context.Context, _ int64, rewardName string, _ int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.names = append(n.names, rewardName)
}

type fixture struct {
	svc      Service
	repo     *MemoryRepository
	points   points.Service
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	locks := userlock.New()
	tx := database.NopTransactor{}
	pts := points.NewService(points.NewMemoryRepository(), tx, locks, logger.Nop())
	repo := NewMemoryRepository()
	if err := SeedIfEmpty(context.Background(), repo, logger.Nop()); err != nil {
		t.Fatal(err)
	}
	n := &recordingNotifier{}
	return &fixture{
		svc:      NewService(repo, pts, tx, locks, n, logger.Nop()),
		repo:     repo,
		points:   pts,
		notifier: n,
	}
}

// rewardByName finds a seeded reward id
func (f *fixture) rewardByName(t *testing.T, name string) *Reward {
	t.Helper()
	list, _ := f.repo.ListActive(context.Background())
	for _, rw := range list {
		if rw.Name == name {
			return rw
		}
	}
	t.Fatalf("reward %q not seeded", name)
	return nil
}

func TestSeedIfEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := SeedIfEmpty(ctx, f.repo, logger.Nop()); err != nil {
		t.Fatal(err)
	}
	if n, _ := f.repo.Count(ctx); n != len(DefaultRewards) {
		t.Fatalf("count = %d after second seed", n)
	}
	list, _ := f.svc.ListRewards(ctx)
	if list[0].Name != "10% Discount Code" || list[1].Name != "Digital Skin Guide" {
		t.Fatalf("rewards not ordered by cost: %s, %s", list[0].Name, list[1].Name)
	}
}

func TestRedeemInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.points.AddPoints(ctx, 1, "seed", 150)
	twenty := f.rewardByName(t, "20% Discount Code")

	_, err := f.svc.Redeem(ctx, 1, twenty.ID)
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindInsufficientBalance || ae.Needed != 50 {
		t.Fatalf("got %v", err)
	}
	if ae.Message != "You need 50 more points to redeem this reward." {
		t.Fatalf("message = %q", ae.Message)
	}

	a, _ := f.points.GetPoints(ctx, 1)
	if a.TotalPoints != 150 || len(a.History) != 1 {
		t.Fatalf("failed redemption changed the account: %+v", a)
	}
	if len(f.notifier.names) != 0 {
		t.Fatal("notified on failure")
	}
}

func TestRedeemSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.points.AddPoints(ctx, 1, "seed", 150)
	ten := f.rewardByName(t, "10% Discount Code")

	res, err := f.svc.Redeem(ctx, 1, ten.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalPoints != 50 || !res.Redeemed || res.RewardName != "10% Discount Code" {
		t.Fatalf("got %+v", res)
	}

	a, _ := f.points.GetPoints(ctx, 1)
	last := a.History[len(a.History)-1]
	if last.Action != points.ActionRedeem || last.Points != -100 || last.PointsUsed != 100 || last.RewardID != ten.ID {
		t.Fatalf("history entry %+v", last)
	}
	if f.notifier.names[0] != "10% Discount Code" {
		t.Fatalf("notifier got %v", f.notifier.names)
	}
}

func TestRedeemUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.points.AddPoints(ctx, 1, "seed", 1000)

	if _, err := f.svc.Redeem(ctx, 1, 0); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("id 0: %v", err)
	}
	if _, err := f.svc.Redeem(ctx, 1, 999); !apperr.Is(err, apperr.KindNotFound) || err.Error() != msgRewardUnavailable {
		t.Fatalf("missing reward: %v", err)
	}

	consult := f.rewardByName(t, "Beauty Consultation")
	f.repo.SetActive(ctx, consult.ID, false)
	if _, err := f.svc.Redeem(ctx, 1, consult.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("inactive reward: %v", err)
	}

	a, _ := f.points.GetPoints(ctx, 1)
	if a.TotalPoints != 1000 {
		t.Fatalf("balance changed to %d", a.TotalPoints)
	}
}

func TestConcurrentRedeemSameReward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.points.AddPoints(ctx, 1, "seed", 150)
	ten := f.rewardByName(t, "10% Discount Code")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Redeem(ctx, 1, ten.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if apperr.Is(err, apperr.KindInsufficientBalance) {
				fail++
			}
		}()
	}
	wg.Wait()

	a, _ := f.points.GetPoints(ctx, 1)
	if ok != 1 || fail != 1 || a.TotalPoints != 50 {
		t.Fatalf("ok=%d fail=%d total=%d", ok, fail, a.TotalPoints)
	}
}

func TestPostgresRedeem(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	userID := testutil.CreateUser(t, db, "rewards@example.com")

	locks := userlock.New()
	tx := database.NewTransactor(db)
	pts := points.NewService(points.NewPostgresRepository(db), tx, locks, logger.Nop())
	repo := NewPostgresRepository(db)
	if err := SeedIfEmpty(ctx, repo, logger.Nop()); err != nil {
		t.Fatal(err)
	}
	svc := NewService(repo, pts, tx, locks, nil, logger.Nop())

	pts.AddPoints(ctx, userID, "seed", 150)
	list, _ := repo.ListActive(ctx)

	res, err := svc.Redeem(ctx, userID, list[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalPoints != 50 {
		t.Fatalf("total = %d", res.TotalPoints)
	}
}
