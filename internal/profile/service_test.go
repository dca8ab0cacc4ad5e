package profile

import (
	"context"
	"testing"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/logger"
)

func newTestService(t *testing.T) (Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	return NewService(repo, logger.Nop()), repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestGetUserProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUserProfile(context.Background(), 99)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProfileDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.CreateProfile(ctx, 1, "Ada Lovelace"); err != nil {
		t.Fatal(err)
	}
	p, err := svc.GetUserProfile(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !p.CleanBeautyPreference {
		t.Fatal("clean beauty preference should default to true")
	}
	if p.Language != "en" || p.SkinType != "" {
		t.Fatalf("unexpected defaults %+v", p)
	}
}

func TestUpdateProfileNormalizesAndValidates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.CreateProfile(ctx, 1, "Ada")

	p, err := svc.UpdateProfile(ctx, 1, &UpdateProfileRequest{
		SkinType:                strPtr(" Dry "),
		SkinConcerns:            []string{"Acne", "acne", "dryness"},
		HairType:                strPtr("curly"),
		IngredientSensitivities: []string{"Fragrance", " parabens "},
		CleanBeautyPreference:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.SkinType != SkinDry || p.HairType != HairCurly {
		t.Fatalf("types = %q/%q", p.SkinType, p.HairType)
	}
	if len(p.SkinConcerns) != 2 || p.SkinConcerns[0] != "acne" {
		t.Fatalf("concerns = %v", p.SkinConcerns)
	}
	if p.IngredientSensitivities[1] != "parabens" {
		t.Fatalf("sensitivities = %v", p.IngredientSensitivities)
	}
	if p.CleanBeautyPreference {
		t.Fatal("preference should be false")
	}
}

func TestUpdateProfileRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		req  UpdateProfileRequest
	}{
		{"skin type", UpdateProfileRequest{SkinType: strPtr("shiny")}},
		{"hair type", UpdateProfileRequest{HairType: strPtr("frizzy")}},
		{"skin concern", UpdateProfileRequest{SkinConcerns: []string{"wrinkles"}}},
		{"hair concern", UpdateProfileRequest{HairConcerns: []string{"acne"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()
			svc.CreateProfile(ctx, 1, "Ada")

			_, err := svc.UpdateProfile(ctx, 1, &tt.req)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordRecommendationView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.CreateProfile(ctx, 1, "Ada")

	for i := 0; i < 3; i++ {
		if err := svc.RecordRecommendationView(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}
	p, _ := svc.GetUserProfile(ctx, 1)
	if p.RecommendationViews != 3 {
		t.Fatalf("views = %d", p.RecommendationViews)
	}

	// saving the profile must not reset the counter
	svc.UpdateProfile(ctx, 1, &UpdateProfileRequest{DisplayName: strPtr("Ada L")})
	p, _ = svc.GetUserProfile(ctx, 1)
	if p.RecommendationViews != 3 {
		t.Fatalf("views after save = %d", p.RecommendationViews)
	}
}

func TestSimilarUsersExcludesSelfAndUnsetTypes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	set := func(id int64, skin, hair string) {
		svc.CreateProfile(ctx, id, "member")
		if _, err := svc.UpdateProfile(ctx, id, &UpdateProfileRequest{SkinType: strPtr(skin), HairType: strPtr(hair)}); err != nil {
			t.Fatal(err)
		}
	}
	set(1, "dry", "curly")
	set(2, "dry", "straight")
	set(3, "dry", "curly")
	set(4, "oily", "curly")
	svc.CreateProfile(ctx, 5, "no quiz yet")

	me, _ := svc.GetUserProfile(ctx, 1)
	got, err := svc.SimilarUsers(ctx, me)
	if err != nil {
		t.Fatal(err)
	}
	if got.SameSkinType != 2 || got.SameHairType != 2 {
		t.Fatalf("similar = %+v", got)
	}

	// an unset type must not match the other unset profiles
	blank, _ := svc.GetUserProfile(ctx, 5)
	got, _ = svc.SimilarUsers(ctx, blank)
	if got.SameSkinType != 0 || got.SameHairType != 0 {
		t.Fatalf("unset profile similar = %+v", got)
	}
}

func TestSetLanguage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.CreateProfile(ctx, 1, "Ada")

	if _, err := svc.SetLanguage(ctx, 1, "ES"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetLanguage(ctx, 1, "klingon"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	p, _ := svc.GetUserProfile(ctx, 1)
	if p.Language != "es" {
		t.Fatalf("language = %q", p.Language)
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"":                "AU",
		"ada":             "A",
		"Ada Lovelace":    "AL",
		"ada byron king":  "AB",
		"  élise  durand": "ÉD",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}
