package rewards

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	rewards map[int64]*Reward
	nextID  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rewards: make(map[int64]*Reward), nextID: 1}
}

func (m *MemoryRepository) ListActive(_ context.Context) ([]*Reward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Reward, 0, len(m.rewards))
	for _, rw := range m.rewards {
		if rw.IsActive {
			c := *rw
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequiredPoints != out[j].RequiredPoints {
			return out[i].RequiredPoints < out[j].RequiredPoints
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int64) (*Reward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rw, ok := m.rewards[id]
	if !ok {
		return nil, ErrRewardNotFound
	}
	c := *rw
	return &c, nil
}

func (m *MemoryRepository) Create(_ context.Context, req *CreateRewardRequest) (*Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rw := &Reward{
		ID:             m.nextID,
		Name:           req.Name,
		Description:    req.Description,
		RequiredPoints: req.RequiredPoints,
		Type:           req.Type,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	m.rewards[rw.ID] = rw
	m.nextID++
	c := *rw
	return &c, nil
}

func (m *MemoryRepository) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rewards), nil
}

func (m *MemoryRepository) SetActive(_ context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rw, ok := m.rewards[id]
	if !ok {
		return ErrRewardNotFound
	}
	rw.IsActive = active
	return nil
}
