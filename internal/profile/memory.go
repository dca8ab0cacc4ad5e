// internal/profile/memory.go

package profile

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-process Repository used for local runs and tests
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int64]*UserProfile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[int64]*UserProfile)}
}

func (m *MemoryRepository) GetProfile(_ context.Context, userID int64) (*UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return clone(p), nil
}

func (m *MemoryRepository) CreateProfile(_ context.Context, p *UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[p.UserID]; !ok {
		c := clone(p)
		c.UpdatedAt = time.Now().UTC()
		m.profiles[p.UserID] = c
	}
	return nil
}

func (m *MemoryRepository) SaveProfile(_ context.Context, p *UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.profiles[p.UserID]
	if !ok {
		return ErrProfileNotFound
	}
	c := clone(p)
	c.RecommendationViews = existing.RecommendationViews
	c.UpdatedAt = time.Now().UTC()
	m.profiles[p.UserID] = c
	return nil
}

func (m *MemoryRepository) IncrementRecommendationViews(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.RecommendationViews++
	return nil
}

func (m *MemoryRepository) CountSimilar(_ context.Context, excludeUserID int64, skin SkinType, hair HairType) (*SimilarUsers, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out SimilarUsers
	for id, p := range m.profiles {
		if id == excludeUserID {
			continue
		}
		if skin != "" && p.SkinType == skin {
			out.SameSkinType++
		}
		if hair != "" && p.HairType == hair {
			out.SameHairType++
		}
	}
	return &out, nil
}

func clone(p *UserProfile) *UserProfile {
	c := *p
	c.SkinConcerns = append([]string{}, p.SkinConcerns...)
	c.HairConcerns = append([]string{}, p.HairConcerns...)
	c.IngredientSensitivities = append([]string{}, p.IngredientSensitivities...)
	return &c
}
