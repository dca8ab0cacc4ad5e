package auth

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepository struct {
	mu            sync.RWMutex
	users         map[int64]*User
	verifications map[int64]*Verification
	nextID        int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:         make(map[int64]*User),
		verifications: make(map[int64]*Verification),
		nextID:        1,
	}
}

func (m *MemoryRepository) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	now := time.Now().UTC()
	user.ID = m.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	m.nextID++

	c := *user
	m.users[c.ID] = &c
	return nil
}

func (m *MemoryRepository) GetUserByID(_ context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (m *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryRepository) UpdateContact(_ context.Context, userID int64, phone, pushToken *string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if phone != nil {
		u.Phone = nonEmpty(*phone)
	}
	if pushToken != nil {
		u.PushToken = nonEmpty(*pushToken)
	}
	u.UpdatedAt = time.Now().UTC()

	c := *u
	return &c, nil
}

func (m *MemoryRepository) ListUserIDs(_ context.Context) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryRepository) SaveVerification(_ context.Context, userID int64, v *Verification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.verifications[userID] = copyVerification(v)
	return nil
}

func (m *MemoryRepository) GetVerification(_ context.Context, userID int64) (*Verification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.verifications[userID]
	if !ok {
		return nil, ErrNotVerified
	}
	return copyVerification(v), nil
}

func copyVerification(v *Verification) *Verification {
	c := *v
	c.Detail = make(VerificationDetail, len(v.Detail))
	for k, val := range v.Detail {
		c.Detail[k] = val
	}
	return &c
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
