// internal/catalog/seed.go

package catalog

import (
	"context"
	"fmt"

	"github.com/rikacare/rika-backend/internal/common/logger"
)

// DefaultProducts is a small starter catalog used when the store is empty
var DefaultProducts = []CreateProductRequest{
	{
		Name: "Gentle Ceramide Cleanser", Brand: "CeraVe", Category: CategorySkin, Price: 24.99,
		Ingredients: []string{"Ceramides", "Hyaluronic Acid", "Niacinamide"},
		Flags:       Flags{IsNatural: true, IsFragranceFree: true, IsCrueltyFree: true, IsSulfateFree: true},
	},
	{
		Name: "Sulfate-Free Curl Shampoo", Brand: "DevaCurl", Category: CategoryHair, Price: 32.00,
		Ingredients: []string{"Coconut Oil", "Shea Butter", "Quinoa Protein"},
		Flags:       Flags{IsNatural: true, IsCrueltyFree: true, IsSulfateFree: true},
	},
	{
		Name: "Organic Rose Hip Oil", Brand: "The Ordinary", Category: CategorySkin, Price: 18.50,
		Ingredients: []string{"Rose Hip Seed Oil", "Vitamin E"},
		Flags:       Flags{IsNatural: true, IsFragranceFree: true, IsCrueltyFree: true, IsSulfateFree: true},
	},
	{
		Name: "Argan Oil Hair Mask", Brand: "Moroccanoil", Category: CategoryHair, Price: 45.00,
		Ingredients: []string{"Argan Oil", "Keratin", "Vitamin E"},
		Flags:       Flags{IsNatural: true, IsCrueltyFree: true, IsSulfateFree: true},
	},
	{
		Name: "Vitamin C Brightening Serum", Brand: "Mad Hippie", Category: CategorySkin, Price: 33.99,
		Ingredients: []string{"Vitamin C", "Hyaluronic Acid", "Ferulic Acid"},
		Flags:       Flags{IsNatural: true, IsFragranceFree: true, IsCrueltyFree: true, IsParabenFree: true},
	},
	{
		Name: "Clarifying Salicylic Gel", Brand: "Neutrogena", Category: CategorySkin, Price: 11.49,
		Ingredients: []string{"Salicylic Acid", "Tea Tree Oil", "Zinc"},
		Flags:       Flags{IsParabenFree: true},
	},
}

// SeedIfEmpty inserts DefaultProducts when the catalog has no products
func SeedIfEmpty(ctx context.Context, repo Repository, log *logger.Logger) error {
	n, err := repo.CountProducts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for i := range DefaultProducts {
		if _, err := repo.CreateProduct(ctx, &DefaultProducts[i]); err != nil {
			return fmt.Errorf("seed product %q: %w", DefaultProducts[i].Name, err)
		}
	}
	log.Info("seeded product catalog", "count", len(DefaultProducts))
	return nil
}
