package rewards

import (
	"context"
	"fmt"

	"github.com/rikacare/rika-backend/internal/common/logger"
)

// DefaultRewards is the catalog installed on an empty database
var DefaultRewards = []CreateRewardRequest{
	{Name: "10% Discount Code", Description: "Get 10% off your next purchase", RequiredPoints: 100, Type: TypeDiscount},
	{Name: "20% Discount Code", Description: "Get 20% off your next purchase", RequiredPoints: 200, Type: TypeDiscount},
	{Name: "Free Sample Box", Description: "Receive a curated box of product samples", RequiredPoints: 300, Type: TypeFreeSample},
	{Name: "Beauty Consultation", Description: "A one-on-one session with a skincare expert", RequiredPoints: 500, Type: TypeConsultation},
	{Name: "Digital Skin Guide", Description: "A personalized digital guide for your skin type", RequiredPoints: 150, Type: TypeDigital},
}

func SeedIfEmpty(ctx context.Context, repo Repository, log *logger.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for i := range DefaultRewards {
		if _, err := repo.Create(ctx, &DefaultRewards[i]); err != nil {
			return fmt.Errorf("seed reward %q: %w", DefaultRewards[i].Name, err)
		}
	}
	log.Info("seeded default rewards", "count", len(DefaultRewards))
	return nil
}
