// internal/catalog/service.go

package catalog

import (
	"context"
	"errors"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service exposes catalog reads to handlers and the matching engine
type Service interface {
	ListProducts(ctx context.Context, limit int) ([]*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, limit int) ([]*Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.GetAllProducts(ctx, limit)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid product id")
	}
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, apperr.NotFound("Product not found", err)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.repo.CreateProduct(ctx, req)
}
