// internal/profile/models.go

package profile

import (
	"fmt"
	"strings"
	"time"
)

// SkinType is the user's self-reported skin type
type SkinType string

const (
	SkinDry         SkinType = "dry"
	SkinOily        SkinType = "oily"
	SkinCombination SkinType = "combination"
	SkinSensitive   SkinType = "sensitive"
	SkinNormal      SkinType = "normal"
)

// HairType is the user's self-reported hair type
type HairType string

const (
	HairStraight HairType = "straight"
	HairWavy     HairType = "wavy"
	HairCurly    HairType = "curly"
	HairCoily    HairType = "coily"
)

var (
	skinTypes = []SkinType{SkinDry, SkinOily, SkinCombination, SkinSensitive, SkinNormal}
	hairTypes = []HairType{HairStraight, HairWavy, HairCurly, HairCoily}

	SkinConcerns = []string{"acne", "aging", "dark_spots", "dryness", "oiliness", "sensitivity", "large_pores"}
	HairConcerns = []string{"frizz", "damage", "dryness", "breakage", "thinning", "dandruff"}

	Languages = []string{"en", "es", "fr", "de", "pt", "it"}
)

// ParseSkinType normalizes s and rejects unknown values. Empty means "not set".
func ParseSkinType(s string) (SkinType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, t := range skinTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown skin type %q", s)
}

// ParseHairType normalizes s and rejects unknown values. Empty means "not set".
func ParseHairType(s string) (HairType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, t := range hairTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown hair type %q", s)
}

// UserProfile is the beauty profile read by the matching engine
type UserProfile struct {
	UserID                  int64     `json:"userId"`
	DisplayName             string    `json:"displayName"`
	SkinType                SkinType  `json:"skinType,omitempty"`
	SkinConcerns            []string  `json:"skinConcerns"`
	HairType                HairType  `json:"hairType,omitempty"`
	HairConcerns            []string  `json:"hairConcerns"`
	IngredientSensitivities []string  `json:"ingredientSensitivities"`
	CleanBeautyPreference   bool      `json:"cleanBeautyPreference"`
	Language                string    `json:"language"`
	RecommendationViews     int64     `json:"recommendationViews"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// NewDefaultProfile returns the profile a user has before answering the quiz
func NewDefaultProfile(userID int64, displayName string) *UserProfile {
	return &UserProfile{
		UserID:                  userID,
		DisplayName:             displayName,
		SkinConcerns:            []string{},
		HairConcerns:            []string{},
		IngredientSensitivities: []string{},
		CleanBeautyPreference:   true,
		Language:                "en",
	}
}

// Initials returns up to two upper-case initials of the display name
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "AU"
	}
	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
	}
	return b.String()
}

// SimilarUsers counts other users sharing a skin or hair type
type SimilarUsers struct {
	SameSkinType int `json:"sameSkinType" db:"same_skin"`
	SameHairType int `json:"sameHairType" db:"same_hair"`
}
