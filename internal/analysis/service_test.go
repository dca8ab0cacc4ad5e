package analysis

import (
	"context"
	"testing"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database/testutil"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/profile"
)

func newTestService(t *testing.T, repo Repository) (Service, *profile.MemoryRepository) {
	t.Helper()
	profiles := profile.NewMemoryRepository()
	log := logger.Nop()
	return NewService(repo, profile.NewService(profiles, log), log), profiles
}

func TestAnalyzeSkinFallsBackToProfile(t *testing.T) {
	svc, profiles := newTestService(t, NewMemoryRepository())
	ctx := context.Background()

	p := profile.NewDefaultProfile(1, "Ada")
	p.SkinType = profile.SkinSensitive
	p.SkinConcerns = []string{"sensitivity"}
	profiles.CreateProfile(ctx, p)

	a, err := svc.AnalyzeSkin(ctx, 1, &SkinQuizRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == 0 || a.Kind != KindSkin || a.Method != MethodQuiz {
		t.Fatalf("analysis = %+v", a)
	}
	if a.Result.SkinType != "sensitive" || len(a.Result.Concerns) != 1 {
		t.Fatalf("result = %+v", a.Result)
	}

	// explicit answers win over the profile
	a, err = svc.AnalyzeSkin(ctx, 1, &SkinQuizRequest{SkinType: "dry", Concerns: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if a.Result.SkinType != "dry" || len(a.Result.Concerns) != 0 {
		t.Fatalf("result = %+v", a.Result)
	}
}

func TestAnalyzeSkinRequiresSkinType(t *testing.T) {
	svc, profiles := newTestService(t, NewMemoryRepository())
	ctx := context.Background()
	profiles.CreateProfile(ctx, profile.NewDefaultProfile(1, "Ada"))

	_, err := svc.AnalyzeSkin(ctx, 1, &SkinQuizRequest{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.AnalyzeSkin(ctx, 1, &SkinQuizRequest{Method: "selfie", SkinType: "dry"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("selfie should be rejected, got %v", err)
	}
}

func TestAnalyzeSkinReferralIsStored(t *testing.T) {
	repo := NewMemoryRepository()
	svc, profiles := newTestService(t, repo)
	ctx := context.Background()
	profiles.CreateProfile(ctx, profile.NewDefaultProfile(1, "Ada"))

	a, err := svc.AnalyzeSkin(ctx, 1, &SkinQuizRequest{SkinType: "normal", Symptoms: []string{"rash that won't go away"}})
	if err != nil {
		t.Fatal(err)
	}
	stored, err := svc.Get(ctx, 1, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Result.Outcome != OutcomeReferral || stored.Result.Referral.Specialist != "dermatologist" {
		t.Fatalf("stored = %+v", stored.Result)
	}
}

func TestAnalyzeHairAndHistory(t *testing.T) {
	svc, profiles := newTestService(t, NewMemoryRepository())
	ctx := context.Background()
	p := profile.NewDefaultProfile(1, "Ada")
	p.SkinType = profile.SkinDry
	p.HairType = profile.HairCoily
	profiles.CreateProfile(ctx, p)

	hair, err := svc.AnalyzeHair(ctx, 1, &HairQuizRequest{HairTexture: "fine"})
	if err != nil {
		t.Fatal(err)
	}
	if hair.Result.HairType != "coily" || hair.Result.TextureSpecific[0] != "lightweight products" {
		t.Fatalf("result = %+v", hair.Result)
	}
	if _, err := svc.AnalyzeSkin(ctx, 1, &SkinQuizRequest{}); err != nil {
		t.Fatal(err)
	}

	all, err := svc.History(ctx, 1, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Kind != KindSkin {
		t.Fatalf("history should be newest first, got %d items", len(all))
	}
	onlyHair, _ := svc.History(ctx, 1, KindHair, 10)
	if len(onlyHair) != 1 || onlyHair[0].ID != hair.ID {
		t.Fatalf("hair history = %+v", onlyHair)
	}
	if _, err := svc.History(ctx, 1, "nails", 10); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetOtherUsersAnalysis(t *testing.T) {
	svc, profiles := newTestService(t, NewMemoryRepository())
	ctx := context.Background()
	p := profile.NewDefaultProfile(1, "Ada")
	p.HairType = profile.HairWavy
	profiles.CreateProfile(ctx, p)

	a, err := svc.AnalyzeHair(ctx, 1, &HairQuizRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, 2, a.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCheckIngredientsUsesProfileSensitivities(t *testing.T) {
	svc, profiles := newTestService(t, NewMemoryRepository())
	ctx := context.Background()
	p := profile.NewDefaultProfile(1, "Ada")
	p.IngredientSensitivities = []string{"sulfate"}
	profiles.CreateProfile(ctx, p)

	report, err := svc.CheckIngredients(ctx, 1, &IngredientCheckRequest{Ingredients: []string{"Sodium Lauryl Sulfate", "Glycerin"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Avoid) != 1 || len(report.Safe) != 1 {
		t.Fatalf("report = %+v", report)
	}

	if _, err := svc.CheckIngredients(ctx, 1, &IngredientCheckRequest{}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPostgresAnalyses(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	userID := testutil.CreateUser(t, db, "analysis@example.com")

	repo := NewPostgresRepository(db)
	a := &Analysis{UserID: userID, Kind: KindHair, Method: MethodQuiz, Result: hairResult("straight", "medium")}
	if err := repo.CreateAnalysis(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetAnalysis(ctx, a.ID, userID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Result.HairType != "straight" || got.Result.CareRoutine[0] != "lightweight products" {
		t.Fatalf("round trip lost data: %+v", got.Result)
	}

	list, err := repo.ListAnalyses(ctx, userID, KindSkin, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("skin list = %d", len(list))
	}
	if _, err := repo.GetAnalysis(ctx, a.ID, userID+1); err != ErrAnalysisNotFound {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}
