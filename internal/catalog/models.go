// internal/catalog/models.go

package catalog

import (
	"time"
)

// Category decides which type table the matching engine applies
type Category string

const (
	CategorySkin Category = "skin"
	CategoryHair Category = "hair"
)

// Flags are the clean-beauty attributes of a product
type Flags struct {
	IsNatural       bool `json:"isNatural" db:"is_natural"`
	IsFragranceFree bool `json:"isFragranceFree" db:"is_fragrance_free"`
	IsCrueltyFree   bool `json:"isCrueltyFree" db:"is_cruelty_free"`
	IsSulfateFree   bool `json:"isSulfateFree" db:"is_sulfate_free"`
	IsParabenFree   bool `json:"isParabenFree" db:"is_paraben_free"`
}

// Count returns the number of flags that are set
func (f Flags) Count() int {
	n := 0
	for _, v := range []bool{f.IsNatural, f.IsFragranceFree, f.IsCrueltyFree, f.IsSulfateFree, f.IsParabenFree} {
		if v {
			n++
		}
	}
	return n
}

// Product is a catalog entry. It is never mutated while being scored.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	Ingredients []string  `json:"ingredients"`
	Flags       Flags     `json:"flags"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateProductRequest is used by seeding and catalog management
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Brand       string   `json:"brand" validate:"required,max=120"`
	Category    Category `json:"category" validate:"required,oneof=skin hair"`
	Price       float64  `json:"price" validate:"gte=0"`
	Ingredients []string `json:"ingredients" validate:"max=100,dive,required"`
	Flags       Flags    `json:"flags"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}
