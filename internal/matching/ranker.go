// internal/matching/ranker.go

package matching

import (
	"sort"

	"github.com/rikacare/rika-backend/internal/catalog"
)

// DefaultLimit is used when Options.Limit is not positive
const DefaultLimit = 10

type Options struct {
	CleanOnly bool
	Limit     int
}

// Ranked pairs a product with its score
type Ranked struct {
	Product *catalog.Product
	Result  MatchResult
}

// Rank scores products, optionally keeps only clean ones, and returns the best
// first. Products with equal totals keep their input order.
func Rank(products []*catalog.Product, uc UserContext, opts Options) []Ranked {
	ranked, _ := rank(products, uc, opts)
	return ranked
}

// rank also reports how many products survived the clean filter
func rank(products []*catalog.Product, uc UserContext, opts Options) ([]Ranked, int) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]Ranked, 0, len(products))
	for _, p := range products {
		res := Score(p, uc)
		recordScore(res.Total)
		if opts.CleanOnly && !isClean(p.Flags) {
			continue
		}
		ranked = append(ranked, Ranked{Product: p, Result: res})
	}
	filtered := len(ranked)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Total > ranked[j].Result.Total
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, filtered
}

func isClean(f catalog.Flags) bool {
	return f.IsNatural || f.IsFragranceFree || f.IsSulfateFree
}
