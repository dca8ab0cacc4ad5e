package routines

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/database/testutil"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/points"
	"github.com/rikacare/rika-backend/internal/streaks"
)

type milestoneRecorder struct {
	mu   sync.Mutex
	days []int
}

func (m *milestoneRecorder) MilestoneReached(_ context.Context, _ int64, days int, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days = append(m.days, days)
}

type fixture struct {
	svc      *service
	repo     Repository
	points   points.Service
	streaks  streaks.Service
	notifier *milestoneRecorder
	clock    time.Time
}

var defaultConfig = Config{DailyPoints: 5, Milestones: map[int]int{7: 30, 14: 50, 30: 100}}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	locks := userlock.New()
	tx := database.NopTransactor{}
	log := logger.Nop()

	f := &fixture{
		repo:     NewMemoryRepository(),
		points:   points.NewService(points.NewMemoryRepository(), tx, locks, log),
		streaks:  streaks.NewService(streaks.NewMemoryRepository(), tx, log),
		notifier: &milestoneRecorder{},
		clock:    time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	f.svc = NewService(f.repo, f.streaks, f.points, tx, locks, f.notifier, defaultConfig, log).(*service)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) nextDay() { f.clock = f.clock.Add(24 * time.Hour) }

func (f *fixture) total(t *testing.T, userID int64) int {
	t.Helper()
	a, err := f.points.GetPoints(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	return a.TotalPoints
}

func TestCompleteDayTwiceSameDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CompleteDay(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.AlreadyCompleted || first.Streak.CurrentStreak != 1 || first.Milestone != nil {
		t.Fatalf("first = %+v", first)
	}

	f.clock = f.clock.Add(10 * time.Hour)
	second, err := f.svc.CompleteDay(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !second.AlreadyCompleted || second.Message != "Already completed today" || second.Streak.CurrentStreak != 1 {
		t.Fatalf("second = %+v", second)
	}
	if got := f.total(t, 1); got != 5 {
		t.Fatalf("points = %d, want 5", got)
	}
}

func TestCompletedTodayFollowsClock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if done, _ := f.svc.CompletedToday(ctx, 1); done {
		t.Fatal("nothing completed yet")
	}
	if _, err := f.svc.CompleteDay(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if done, err := f.svc.CompletedToday(ctx, 1); err != nil || !done {
		t.Fatalf("done = %v, err = %v", done, err)
	}

	f.nextDay()
	if done, _ := f.svc.CompletedToday(ctx, 1); done {
		t.Fatal("yesterday's completion must not count today")
	}
}

func TestCompleteDaySevenDayMilestone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var last *Completion
	for i := 0; i < 7; i++ {
		c, err := f.svc.CompleteDay(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if i < 6 && c.Milestone != nil {
			t.Fatalf("day %d reported milestone %q", i+1, *c.Milestone)
		}
		last = c
		f.nextDay()
	}

	if last.Streak.CurrentStreak != 7 || last.Milestone == nil {
		t.Fatalf("day 7 = %+v", last)
	}
	if *last.Milestone != "7-day streak! You're glowing, keep it up!" {
		t.Fatalf("message = %q", *last.Milestone)
	}
	if last.PointsAwarded != 35 {
		t.Fatalf("awarded = %d, want 35", last.PointsAwarded)
	}
	if got := f.total(t, 1); got != 65 {
		t.Fatalf("points = %d, want 65", got)
	}
	if len(f.notifier.days) != 1 || f.notifier.days[0] != 7 {
		t.Fatalf("notified %v", f.notifier.days)
	}

	a, _ := f.points.GetPoints(ctx, 1)
	if a.History[len(a.History)-1].Action != "7-day streak milestone" {
		t.Fatalf("last action %q", a.History[len(a.History)-1].Action)
	}
}

func TestCompleteDayTwentyOneIsNotMilestone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var last *Completion
	for i := 0; i < 21; i++ {
		c, err := f.svc.CompleteDay(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		last = c
		f.nextDay()
	}
	if last.Milestone != nil {
		t.Fatalf("21 days reported milestone %q", *last.Milestone)
	}
	if got := f.total(t, 1); got != 21*5+30+50 {
		t.Fatalf("points = %d, want %d", got, 21*5+30+50)
	}
}

func TestCompleteDayGapResetsStreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, skip := range []int{0, 1, 1, 3} {
		f.clock = f.clock.Add(time.Duration(skip) * 24 * time.Hour)
		if _, err := f.svc.CompleteDay(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}
	st, _ := f.streaks.GetStreak(ctx, 1)
	if st.CurrentStreak != 1 || st.LongestStreak != 3 {
		t.Fatalf("streak = %+v", st)
	}
}

func TestCreatedCompletedRoutineCountsAsMarker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateRoutine(ctx, 1, &CreateRoutineRequest{Type: TypeMorning, Products: []string{"cleanser"}, Completed: true}); err != nil {
		t.Fatal(err)
	}
	c, err := f.svc.CompleteDay(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !c.AlreadyCompleted || c.Streak.CurrentStreak != 0 {
		t.Fatalf("completion = %+v", c)
	}
	if got := f.total(t, 1); got != 0 {
		t.Fatalf("points = %d, want 0", got)
	}
}

func TestCreateRoutineIncompleteDoesNotMark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.CreateRoutine(ctx, 1, &CreateRoutineRequest{Type: TypeEvening})
	c, err := f.svc.CompleteDay(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c.AlreadyCompleted {
		t.Fatal("incomplete routine blocked completion")
	}
}

func TestCreateRoutineValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateRoutine(context.Background(), 1, &CreateRoutineRequest{Type: "brunch"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateDailyRoutineAfterCompleteDayConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.CompleteDay(ctx, 1)

	_, err := f.svc.CreateRoutine(ctx, 1, &CreateRoutineRequest{Type: TypeDaily, Completed: true})
	if !apperr.Is(err, apperr.KindConflict) || !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListRoutinesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 35; i++ {
		f.svc.CreateRoutine(ctx, 1, &CreateRoutineRequest{Type: TypeMorning})
	}
	f.svc.CreateRoutine(ctx, 2, &CreateRoutineRequest{Type: TypeEvening})

	list, err := f.svc.ListRoutines(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 30 {
		t.Fatalf("len = %d, want 30", len(list))
	}
	if list[0].ID < list[1].ID {
		t.Fatal("expected newest first")
	}
}

func TestConcurrentCompleteDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fresh int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := f.svc.CompleteDay(ctx, 1)
			if err != nil {
				t.Error(err)
				return
			}
			if !c.AlreadyCompleted {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if fresh != 1 {
		t.Fatalf("%d completions succeeded, want 1", fresh)
	}
	if got := f.total(t, 1); got != 5 {
		t.Fatalf("points = %d, want 5", got)
	}
}

func TestMilestoneMessage(t *testing.T) {
	if MilestoneMessage(14) != "14-day streak! Your consistency is amazing!" {
		t.Fatal(MilestoneMessage(14))
	}
	if MilestoneMessage(30) != "30-day streak! You're a beauty routine champion!" {
		t.Fatal(MilestoneMessage(30))
	}
}

func TestPostgresCompleteDay(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	userID := testutil.CreateUser(t, db, "routines@example.com")

	locks := userlock.New()
	tx := database.NewTransactor(db)
	log := logger.Nop()
	pts := points.NewService(points.NewPostgresRepository(db), tx, locks, log)
	st := streaks.NewService(streaks.NewPostgresRepository(db), tx, log)
	svc := NewService(NewPostgresRepository(db), st, pts, tx, locks, nil, defaultConfig, log).(*service)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	first, err := svc.CompleteDay(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CompleteDay(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if first.AlreadyCompleted || !second.AlreadyCompleted {
		t.Fatalf("first=%+v second=%+v", first, second)
	}
	if d := *second.Streak.LastActivityDate; d != (civil.Date{Year: 2024, Month: 5, Day: 10}) {
		t.Fatalf("last activity = %s", d)
	}
}
