package points

import (
	"context"
	"sync"
)

// MemoryRepository keeps accounts in a map. Callers serialize writers per user.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[int64]*Account)}
}

func (m *MemoryRepository) GetAccount(_ context.Context, userID int64) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return copyAccount(a), nil
}

func (m *MemoryRepository) GetForUpdate(ctx context.Context, userID int64) (*Account, error) {
	return m.GetAccount(ctx, userID)
}

func (m *MemoryRepository) SaveAccount(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.UserID] = copyAccount(a)
	return nil
}

func copyAccount(a *Account) *Account {
	out := *a
	out.History = append(History{}, a.History...)
	return &out
}
