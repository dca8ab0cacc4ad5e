package matching

import (
	"fmt"
	"strings"

	"github.com/rikacare/rika-backend/internal/catalog"
)

// WhyRecommended builds the long-form explanation shown on a product page
func WhyRecommended(p *catalog.Product, res MatchResult, uc UserContext) string {
	var clauses []string

	b := res.Breakdown
	if b.SkinTypeMatch != nil && *b.SkinTypeMatch > reasonTypeThreshold {
		clauses = append(clauses, fmt.Sprintf("is formulated for %s skin", uc.SkinType))
	}
	if b.HairTypeMatch != nil && *b.HairTypeMatch > reasonTypeThreshold {
		clauses = append(clauses, fmt.Sprintf("suits %s hair", uc.HairType))
	}
	if concerns := matchedConcerns(productText(p), uc); len(concerns) > 0 {
		clauses = append(clauses, fmt.Sprintf("targets your %s concerns", humanList(concerns)))
	}
	if features := cleanFeatures(p.Flags); len(features) > 0 && uc.CleanBeautyPreference {
		clauses = append(clauses, fmt.Sprintf("has a %s formula", humanList(features)))
	}

	if len(clauses) == 0 {
		kind := "skincare"
		if p.Category == catalog.CategoryHair {
			kind = "haircare"
		}
		return fmt.Sprintf("This %s product matches your beauty profile and preferences.", kind)
	}
	if len(clauses) > maxReasons {
		clauses = clauses[:maxReasons]
	}

	out := "Rika recommends this because it " + humanList(clauses) + "."
	if b.SafetyScore < reasonSafetyThreshold {
		out += " Note: it contains ingredients you avoid."
	}
	return out
}

func cleanFeatures(f catalog.Flags) []string {
	var out []string
	if f.IsNatural {
		out = append(out, "natural")
	}
	if f.IsFragranceFree {
		out = append(out, "fragrance-free")
	}
	if f.IsSulfateFree {
		out = append(out, "sulfate-free")
	}
	return out
}

// humanList joins items as "a", "a and b" or "a, b and c"
func humanList(items []string) string {
	for i := range items {
		items[i] = strings.ReplaceAll(items[i], "_", " ")
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
