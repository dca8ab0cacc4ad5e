// internal/catalog/repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrProductNotFound = errors.New("product not found")

// Repository is the product catalog store
type Repository interface {
	// GetAllProducts returns up to limit products, newest first
	GetAllProducts(ctx context.Context, limit int) ([]*Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error)
	CountProducts(ctx context.Context) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type productRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Brand       string         `db:"brand"`
	Category    string         `db:"category"`
	Price       float64        `db:"price"`
	Ingredients pq.StringArray `db:"ingredients"`
	Flags
	Description string    `db:"description"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r productRow) toProduct() *Product {
	ingredients := []string(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return &Product{
		ID:          r.ID,
		Name:        r.Name,
		Brand:       r.Brand,
		Category:    Category(r.Category),
		Price:       r.Price,
		Ingredients: ingredients,
		Flags:       r.Flags,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
	}
}

const productColumns = `
	id, name, brand, category, price::float8 AS price, ingredients,
	is_natural, is_fragrance_free, is_cruelty_free, is_sulfate_free, is_paraben_free,
	description, image_url, created_at`

func (r *postgresRepository) GetAllProducts(ctx context.Context, limit int) ([]*Product, error) {
	var rows []productRow
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}

func (r *postgresRepository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	var row productRow
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return row.toProduct(), nil
}

func (r *postgresRepository) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	var row productRow
	query := `
		INSERT INTO products (
			name, brand, category, price, ingredients,
			is_natural, is_fragrance_free, is_cruelty_free, is_sulfate_free, is_paraben_free,
			description, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns

	err := r.db.GetContext(ctx, &row, query,
		req.Name, req.Brand, string(req.Category), req.Price, pq.Array(req.Ingredients),
		req.Flags.IsNatural, req.Flags.IsFragranceFree, req.Flags.IsCrueltyFree,
		req.Flags.IsSulfateFree, req.Flags.IsParabenFree,
		req.Description, req.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return row.toProduct(), nil
}

func (r *postgresRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
