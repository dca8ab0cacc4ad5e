// internal/matching/keywords.go

package matching

import "github.com/rikacare/rika-backend/internal/profile"

// Score component weights and caps
const (
	BaseScore = 50

	pointsPerTypeKeyword    = 5
	maxTypeMatch            = 20
	pointsPerConcernKeyword = 5
	maxConcernsMatch        = 25

	maxCleanScore      = 20
	cleanDisabledScore = 5
	naturalPoints      = 8
	fragranceFreePts   = 6
	crueltyFreePts     = 4
	sulfateFreePts     = 4
	parabenFreePts     = 3

	noSensitivityBonus  = 5
	sensitivityPenalty  = -10
	minSafetyScore      = -15
	baseQuality         = 5
	trustedBrandBonus   = 3
	maxFlagQualityBonus = 2

	reasonTypeThreshold     = 10
	reasonConcernsThreshold = 15
	reasonCleanThreshold    = 15
	reasonSafetyThreshold   = -5
	maxReasons              = 3
)

// SkinTypeKeywords are matched against skincare product text
var SkinTypeKeywords = map[profile.SkinType][]string{
	profile.SkinDry:         {"ceramide", "hyaluronic", "glycerin", "shea butter"},
	profile.SkinOily:        {"niacinamide", "salicylic", "clay", "zinc"},
	profile.SkinSensitive:   {"gentle", "fragrance-free", "hypoallergenic"},
	profile.SkinCombination: {"balanced", "gentle", "non-comedogenic"},
	profile.SkinNormal:      {"balanced", "gentle"},
}

// HairTypeKeywords are matched against haircare product text
var HairTypeKeywords = map[profile.HairType][]string{
	profile.HairCurly:    {"curl", "coconut", "shea", "sulfate-free"},
	profile.HairStraight: {"smooth", "sleek", "lightweight"},
	profile.HairWavy:     {"define", "enhance", "frizz-free"},
	profile.HairCoily:    {"moisture", "deep condition", "natural oils"},
}

// ConcernKeywords maps a skin or hair concern to ingredients that address it.
// Concerns without an entry never contribute.
var ConcernKeywords = map[string][]string{
	"acne":        {"salicylic", "benzoyl", "niacinamide", "tea tree"},
	"dryness":     {"hyaluronic", "ceramide", "glycerin", "squalane"},
	"aging":       {"retinol", "vitamin c", "peptides", "antioxidant"},
	"sensitivity": {"gentle", "fragrance-free", "hypoallergenic"},
	"frizz":       {"smoothing", "anti-frizz", "keratin", "argan"},
	"damage":      {"repair", "protein", "bond", "strengthen"},
}

// TrustedBrands earn a quality bonus. Compared lower-cased.
var TrustedBrands = []string{"cerave", "neutrogena", "la roche-posay", "the ordinary"}
