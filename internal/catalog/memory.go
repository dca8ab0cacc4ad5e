// internal/catalog/memory.go

package catalog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps products in insertion order
type MemoryRepository struct {
	mu       sync.RWMutex
	products []*Product
	nextID   int64
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, now: time.Now}
}

// GetAllProducts returns newest first, matching the Postgres ordering
func (m *MemoryRepository) GetAllProducts(_ context.Context, limit int) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Product, 0, limit)
	for i := len(m.products) - 1; i >= 0 && len(out) < limit; i-- {
		p := *m.products[i]
		out = append(out, &p)
	}
	return out, nil
}

func (m *MemoryRepository) GetProductByID(_ context.Context, id int64) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *MemoryRepository) CreateProduct(_ context.Context, req *CreateProductRequest) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &Product{
		ID:          m.nextID,
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		Ingredients: append([]string{}, req.Ingredients...),
		Flags:       req.Flags,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   m.now().UTC(),
	}
	m.nextID++
	m.products = append(m.products, p)

	c := *p
	return &c, nil
}

func (m *MemoryRepository) CountProducts(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products), nil
}
