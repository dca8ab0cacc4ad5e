package notification

import (
	"context"
	"sync"
	"time"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	items  []*Notification
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (m *MemoryRepository) CreateNotification(_ context.Context, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.ID = m.nextID
	n.CreatedAt = time.Now().UTC()
	m.nextID++
	c := *n
	m.items = append(m.items, &c)
	return nil
}

func (m *MemoryRepository) GetUserNotifications(_ context.Context, userID int64, limit int, unreadOnly bool) ([]*Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Notification{}
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		n := m.items[i]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		c := *n
		out = append(out, &c)
	}
	return out, nil
}

func (m *MemoryRepository) CountUnread(_ context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, n := range m.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MemoryRepository) MarkAsRead(_ context.Context, notificationID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.items {
		if n.ID == notificationID && n.UserID == userID {
			markRead(n)
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (m *MemoryRepository) MarkAllAsRead(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.items {
		if n.UserID == userID {
			markRead(n)
		}
	}
	return nil
}

func markRead(n *Notification) {
	if n.IsRead {
		return
	}
	now := time.Now().UTC()
	n.IsRead = true
	n.ReadAt = &now
}
