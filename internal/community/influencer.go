package community

import "fmt"

const (
	influencerMinFollowers = 100
	silverFollowers        = 500
	goldFollowers          = 1000
)

var influencerBenefits = []string{
	"Earn commission on product recommendations",
	"Early access to new products",
	"Featured in community feed",
	"Monthly bonus payments",
}

// tierFor returns the tier and commission rate for a follower count.
// Callers check the minimum first.
func tierFor(followers int) (string, float64) {
	switch {
	case followers >= goldFollowers:
		return "gold", 0.15
	case followers >= silverFollowers:
		return "silver", 0.12
	default:
		return "bronze", 0.08
	}
}

func eligibilityFor(followers int) Eligibility {
	if followers < influencerMinFollowers {
		return Eligibility{
			Eligible:    false,
			Requirement: fmt.Sprintf("%d followers needed", influencerMinFollowers),
			Remaining:   influencerMinFollowers - followers,
		}
	}
	tier, rate := tierFor(followers)
	return Eligibility{
		Eligible:   true,
		Tier:       tier,
		Commission: fmt.Sprintf("%.0f%%", rate*100),
		Benefits:   influencerBenefits,
	}
}
