package routines

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	routines []*Routine
	nextID   int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (m *MemoryRepository) HasCompleted(_ context.Context, userID int64, day civil.Date) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.routines {
		if r.UserID == userID && r.Completed && r.CompletedOn == day {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) InsertDailyCompletion(ctx context.Context, userID int64, day civil.Date) (bool, error) {
	_, err := m.Create(ctx, &Routine{UserID: userID, Type: TypeDaily, Completed: true, CompletedOn: day})
	if err == ErrAlreadyMarked {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryRepository) Create(_ context.Context, r *Routine) (*Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Type == TypeDaily && r.Completed {
		for _, existing := range m.routines {
			if existing.UserID == r.UserID && existing.Type == TypeDaily && existing.Completed && existing.CompletedOn == r.CompletedOn {
				return nil, ErrAlreadyMarked
			}
		}
	}

	c := *r
	c.ID = m.nextID
	m.nextID++
	if c.Products == nil {
		c.Products = []string{}
	}
	c.CreatedAt = time.Now().UTC()
	m.routines = append(m.routines, &c)

	out := c
	return &out, nil
}

func (m *MemoryRepository) ListRecent(_ context.Context, userID int64, limit int) ([]*Routine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Routine, 0, limit)
	for i := len(m.routines) - 1; i >= 0 && len(out) < limit; i-- {
		if m.routines[i].UserID == userID {
			c := *m.routines[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *MemoryRepository) CompletedUserIDs(_ context.Context, day civil.Date) (map[int64]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[int64]bool)
	for _, r := range m.routines {
		if r.Completed && r.CompletedOn == day {
			out[r.UserID] = true
		}
	}
	return out, nil
}
