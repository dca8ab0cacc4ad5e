// internal/matching/scoring.go

package matching

import (
	"fmt"
	"strings"

	"github.com/rikacare/rika-backend/internal/catalog"
	"github.com/rikacare/rika-backend/internal/profile"
)

const (
	ReasonClean     = "clean, natural formula"
	ReasonConcerns  = "addresses your main concerns"
	ReasonAvoided   = "contains ingredients you avoid"
	defaultSummary  = "Recommended based on your profile"
	summaryPrefix   = "Great choice - "
	summaryReasons  = 2
	summaryJoinWith = " and "
)

// UserContext is the part of a profile the scoring engine reads
type UserContext struct {
	SkinType                profile.SkinType
	HairType                profile.HairType
	SkinConcerns            []string
	HairConcerns            []string
	IngredientSensitivities []string
	CleanBeautyPreference   bool
}

// ContextFromProfile builds a scoring context. A nil profile scores as an empty
// profile with the clean beauty preference enabled.
func ContextFromProfile(p *profile.UserProfile) UserContext {
	if p == nil {
		return UserContext{CleanBeautyPreference: true}
	}
	return UserContext{
		SkinType:                p.SkinType,
		HairType:                p.HairType,
		SkinConcerns:            p.SkinConcerns,
		HairConcerns:            p.HairConcerns,
		IngredientSensitivities: p.IngredientSensitivities,
		CleanBeautyPreference:   p.CleanBeautyPreference,
	}
}

// Breakdown holds the individual score components. The type match fields are
// nil when the table for that category did not apply.
type Breakdown struct {
	SkinTypeMatch *int `json:"skinTypeMatch,omitempty"`
	HairTypeMatch *int `json:"hairTypeMatch,omitempty"`
	ConcernsMatch int  `json:"concernsMatch"`
	CleanScore    int  `json:"cleanScore"`
	SafetyScore   int  `json:"safetyScore"`
	QualityScore  int  `json:"qualityScore"`
}

// Sum adds up every component
func (b Breakdown) Sum() int {
	sum := b.ConcernsMatch + b.CleanScore + b.SafetyScore + b.QualityScore
	if b.SkinTypeMatch != nil {
		sum += *b.SkinTypeMatch
	}
	if b.HairTypeMatch != nil {
		sum += *b.HairTypeMatch
	}
	return sum
}

// MatchResult is the outcome of scoring one product for one user
type MatchResult struct {
	Total     int       `json:"total"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// Score rates how well product fits the user. It is deterministic and does not
// mutate its inputs.
func Score(product *catalog.Product, uc UserContext) MatchResult {
	text := productText(product)
	var b Breakdown
	reasons := make([]string, 0, 5)

	if product.Category == catalog.CategorySkin && uc.SkinType != "" {
		m := typeMatch(text, SkinTypeKeywords[uc.SkinType])
		b.SkinTypeMatch = &m
		if m > reasonTypeThreshold {
			reasons = append(reasons, fmt.Sprintf("perfect for %s skin", uc.SkinType))
		}
	}
	if product.Category == catalog.CategoryHair && uc.HairType != "" {
		m := typeMatch(text, HairTypeKeywords[uc.HairType])
		b.HairTypeMatch = &m
		if m > reasonTypeThreshold {
			reasons = append(reasons, fmt.Sprintf("ideal for %s hair", uc.HairType))
		}
	}

	b.ConcernsMatch = concernsMatch(text, uc)
	if b.ConcernsMatch > reasonConcernsThreshold {
		reasons = append(reasons, ReasonConcerns)
	}

	b.CleanScore = cleanScore(product.Flags, uc.CleanBeautyPreference)
	if b.CleanScore > reasonCleanThreshold {
		reasons = append(reasons, ReasonClean)
	}

	b.SafetyScore = safetyScore(product.Ingredients, uc.IngredientSensitivities)
	if b.SafetyScore < reasonSafetyThreshold {
		reasons = append(reasons, ReasonAvoided)
	}

	b.QualityScore = qualityScore(product)

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return MatchResult{
		Total:     clamp(BaseScore+b.Sum(), 0, 100),
		Reasons:   reasons,
		Breakdown: b,
	}
}

// Summary renders the short recommendation text for a set of reasons
func Summary(reasons []string) string {
	if len(reasons) == 0 {
		return defaultSummary
	}
	n := len(reasons)
	if n > summaryReasons {
		n = summaryReasons
	}
	return summaryPrefix + strings.Join(reasons[:n], summaryJoinWith)
}

func productText(p *catalog.Product) string {
	return strings.ToLower(p.Name + " " + strings.Join(p.Ingredients, " "))
}

// typeMatch counts distinct keywords present in text
func typeMatch(text string, keywords []string) int {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return min(maxTypeMatch, matches*pointsPerTypeKeyword)
}

func concernsMatch(text string, uc UserContext) int {
	score := 0
	for _, concern := range allConcerns(uc) {
		for _, kw := range ConcernKeywords[concern] {
			if strings.Contains(text, kw) {
				score += pointsPerConcernKeyword
			}
		}
	}
	return min(maxConcernsMatch, score)
}

// matchedConcerns lists the concerns with at least one keyword hit, in profile order
func matchedConcerns(text string, uc UserContext) []string {
	var out []string
	seen := make(map[string]bool)
	for _, concern := range allConcerns(uc) {
		if seen[concern] {
			continue
		}
		for _, kw := range ConcernKeywords[concern] {
			if strings.Contains(text, kw) {
				out = append(out, concern)
				seen[concern] = true
				break
			}
		}
	}
	return out
}

func allConcerns(uc UserContext) []string {
	out := make([]string, 0, len(uc.SkinConcerns)+len(uc.HairConcerns))
	for _, c := range uc.SkinConcerns {
		out = append(out, strings.ToLower(c))
	}
	for _, c := range uc.HairConcerns {
		out = append(out, strings.ToLower(c))
	}
	return out
}

func cleanScore(f catalog.Flags, preferClean bool) int {
	if !preferClean {
		return cleanDisabledScore
	}
	score := 0
	if f.IsNatural {
		score += naturalPoints
	}
	if f.IsFragranceFree {
		score += fragranceFreePts
	}
	if f.IsCrueltyFree {
		score += crueltyFreePts
	}
	if f.IsSulfateFree {
		score += sulfateFreePts
	}
	if f.IsParabenFree {
		score += parabenFreePts
	}
	return min(maxCleanScore, score)
}

func safetyScore(ingredients, sensitivities []string) int {
	if len(sensitivities) == 0 {
		return noSensitivityBonus
	}
	text := strings.ToLower(strings.Join(ingredients, " "))
	score := 0
	for _, s := range sensitivities {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if strings.Contains(text, s) {
			score += sensitivityPenalty
		}
	}
	return max(minSafetyScore, score)
}

func qualityScore(p *catalog.Product) int {
	score := baseQuality
	if isTrustedBrand(p.Brand) {
		score += trustedBrandBonus
	}
	return score + min(maxFlagQualityBonus, p.Flags.Count())
}

func isTrustedBrand(brand string) bool {
	brand = strings.ToLower(strings.TrimSpace(brand))
	for _, b := range TrustedBrands {
		if brand == b {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
