package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rikacare/rika-backend/internal/catalog"
	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/matching"
	"github.com/rikacare/rika-backend/internal/points"
	"github.com/rikacare/rika-backend/internal/profile"
	"github.com/rikacare/rika-backend/internal/routines"
	"github.com/rikacare/rika-backend/internal/streaks"
)

type fixture struct {
	svc      *service
	src      Sources
	profiles *profile.MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()
	tx := database.NopTransactor{}
	locks := userlock.New()

	profiles := profile.NewMemoryRepository()
	products := catalog.NewMemoryRepository()
	if err := catalog.SeedIfEmpty(ctx, products, log); err != nil {
		t.Fatal(err)
	}

	profileSvc := profile.NewService(profiles, log)
	pts := points.NewService(points.NewMemoryRepository(), tx, locks, log)
	st := streaks.NewService(streaks.NewMemoryRepository(), tx, log)
	src := Sources{
		Profiles:        profileSvc,
		Points:          pts,
		Streaks:         st,
		Routines:        routines.NewService(routines.NewMemoryRepository(), st, pts, tx, locks, nil, routines.Config{DailyPoints: 5}, log),
		Recommendations: matching.NewService(profileSvc, products, catalog.NewService(products), 50, 10, log),
	}
	return &fixture{svc: NewService(src, log).(*service), src: src, profiles: profiles}
}

func (f *fixture) member(t *testing.T, id int64, name string, skin profile.SkinType, hair profile.HairType) {
	t.Helper()
	p := profile.NewDefaultProfile(id, name)
	p.SkinType = skin
	p.HairType = hair
	if err := f.profiles.CreateProfile(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

func TestBuildContextAggregatesSources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.member(t, 1, "Ada Lovelace", profile.SkinDry, profile.HairCurly)
	f.member(t, 2, "Grace", profile.SkinDry, profile.HairStraight)
	f.member(t, 3, "Mary", profile.SkinOily, profile.HairCurly)

	if _, err := f.src.Routines.CompleteDay(ctx, 1); err != nil {
		t.Fatal(err)
	}

	uc, err := f.svc.BuildContext(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if uc.Name != "Ada" || uc.SkinType != "dry" || uc.HairType != "curly" {
		t.Fatalf("profile fields = %+v", uc)
	}
	if !uc.CompletedToday || uc.Streak != 1 || uc.TotalPoints != 5 {
		t.Fatalf("progress = done %v streak %d points %d", uc.CompletedToday, uc.Streak, uc.TotalPoints)
	}
	if len(uc.Top) != topSuggestions {
		t.Fatalf("top = %d", len(uc.Top))
	}
	if uc.SimilarSkin != 1 || uc.SimilarHair != 1 {
		t.Fatalf("similar = %d/%d", uc.SimilarSkin, uc.SimilarHair)
	}
}

type failingPoints struct {
	points.Service
}

func (failingPoints) GetPoints(context.Context, int64) (*points.Account, error) {
	return nil, errors.New("points store down")
}

func TestBuildContextDegradesOptionalSources(t *testing.T) {
	f := newFixture(t)
	f.member(t, 1, "", profile.SkinNormal, "")
	f.svc.src.Points = failingPoints{f.src.Points}

	uc, err := f.svc.BuildContext(context.Background(), 1)
	if err != nil {
		t.Fatalf("a failing optional source must not fail the chat: %v", err)
	}
	if uc.TotalPoints != 0 || uc.Name != "there" {
		t.Fatalf("context = %+v", uc)
	}
	if len(uc.Top) == 0 {
		t.Fatal("other sources should still load")
	}
}

func TestChatUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Chat(context.Background(), 99, &ChatRequest{Message: "hi"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChatValidatesMessage(t *testing.T) {
	f := newFixture(t)
	f.member(t, 1, "Ada", "", "")

	for _, msg := range []string{"", "   ", strings.Repeat("x", 1001)} {
		_, err := f.svc.Chat(context.Background(), 1, &ChatRequest{Message: msg})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("message of len %d: expected validation error, got %v", len(msg), err)
		}
	}

	_, err := f.svc.Chat(context.Background(), 1, &ChatRequest{Message: "hi", History: []Turn{{Role: "system", Content: "x"}}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad history role: expected validation error, got %v", err)
	}
}

func TestChatPointsReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.member(t, 1, "Ada", profile.SkinDry, "")
	if _, err := f.src.Points.AddPoints(ctx, 1, "Welcome bonus", 20); err != nil {
		t.Fatal(err)
	}

	reply, err := f.svc.Chat(ctx, 1, &ChatRequest{
		Message: "How do I earn rewards?",
		History: []Turn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "Hi Ada!"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Intent != IntentPoints || !strings.Contains(reply.Reply, "You currently have 20 points!") {
		t.Fatalf("reply = %+v", reply)
	}
}
