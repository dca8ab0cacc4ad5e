package analysis

import (
	"context"
	"sync"
	"time"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	items  []*Analysis
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (m *MemoryRepository) CreateAnalysis(_ context.Context, a *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.nextID
	a.CreatedAt = time.Now().UTC()
	m.nextID++
	c := *a
	m.items = append(m.items, &c)
	return nil
}

func (m *MemoryRepository) GetAnalysis(_ context.Context, id, userID int64) (*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.items {
		if a.ID == id && a.UserID == userID {
			c := *a
			return &c, nil
		}
	}
	return nil, ErrAnalysisNotFound
}

func (m *MemoryRepository) ListAnalyses(_ context.Context, userID int64, kind Kind, limit int) ([]*Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Analysis{}
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		a := m.items[i]
		if a.UserID != userID || (kind != "" && a.Kind != kind) {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, nil
}
