package streaks

import (
	"context"
	"sync"
)

// MemoryRepository is used by the memory storage driver and in tests
type MemoryRepository struct {
	mu      sync.RWMutex
	streaks map[int64]State
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{streaks: make(map[int64]State)}
}

func (m *MemoryRepository) GetStreak(_ context.Context, userID int64) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.streaks[userID]
	if !ok {
		return nil, ErrStreakNotFound
	}
	return copyState(s), nil
}

// GetForUpdate is a plain read; callers hold the per-user lock
func (m *MemoryRepository) GetForUpdate(ctx context.Context, userID int64) (*State, error) {
	return m.GetStreak(ctx, userID)
}

func (m *MemoryRepository) SaveStreak(_ context.Context, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streaks[s.UserID] = *copyState(*s)
	return nil
}

func copyState(s State) *State {
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		s.LastActivityDate = &d
	}
	return &s
}
