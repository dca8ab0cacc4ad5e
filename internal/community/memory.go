package community

import (
	"context"
	"sort"
	"sync"
	"time"
)

type likeKey struct{ post, user int64 }
type followKey struct{ follower, target int64 }

// MemoryRepository backs the memory storage driver and service tests
type MemoryRepository struct {
	mu         sync.RWMutex
	posts      []*Post
	likes      map[likeKey]bool
	follows    map[followKey]time.Time
	influencer map[int64]InfluencerStatus
	nextID     int64
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		likes:      make(map[likeKey]bool),
		follows:    make(map[followKey]time.Time),
		influencer: make(map[int64]InfluencerStatus),
		nextID:     1,
		now:        time.Now,
	}
}

func (m *MemoryRepository) CreatePost(_ context.Context, p *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *p
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = m.now().UTC()
	if c.Images == nil {
		c.Images = []string{}
	}
	m.posts = append(m.posts, &c)

	out := c
	return &out, nil
}

func (m *MemoryRepository) GetFeed(_ context.Context, viewerID int64, limit int) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Post, 0, limit)
	for i := len(m.posts) - 1; i >= 0 && len(out) < limit; i-- {
		p := *m.posts[i]
		if p.Visibility != VisibilityPublic {
			continue
		}
		p.LikeCount = m.likeCount(p.ID)
		p.UserLiked = m.likes[likeKey{p.ID, viewerID}]
		out = append(out, &p)
	}
	return out, nil
}

func (m *MemoryRepository) likeCount(postID int64) int {
	n := 0
	for k := range m.likes {
		if k.post == postID {
			n++
		}
	}
	return n
}

func (m *MemoryRepository) ToggleLike(_ context.Context, postID, userID int64) (bool, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for _, p := range m.posts {
		if p.ID == postID {
			found = true
			break
		}
	}
	if !found {
		return false, 0, ErrPostNotFound
	}

	key := likeKey{postID, userID}
	liked := !m.likes[key]
	if liked {
		m.likes[key] = true
	} else {
		delete(m.likes, key)
	}
	return liked, m.likeCount(postID), nil
}

func (m *MemoryRepository) ToggleFollow(_ context.Context, followerID, targetID int64) (bool, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := followKey{followerID, targetID}
	_, exists := m.follows[key]
	if exists {
		delete(m.follows, key)
	} else {
		m.follows[key] = m.now()
	}
	return !exists, m.followerCount(targetID), nil
}

func (m *MemoryRepository) followerCount(userID int64) int {
	n := 0
	for k := range m.follows {
		if k.target == userID {
			n++
		}
	}
	return n
}

func (m *MemoryRepository) ListFollowers(_ context.Context, userID int64, limit int) ([]int64, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type follower struct {
		id int64
		at time.Time
	}
	var all []follower
	for k, at := range m.follows {
		if k.target == userID {
			all = append(all, follower{k.follower, at})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].at.Equal(all[j].at) {
			return all[i].at.Before(all[j].at)
		}
		return all[i].id < all[j].id
	})

	ids := make([]int64, 0, min(limit, len(all)))
	for i := 0; i < len(all) && i < limit; i++ {
		ids = append(ids, all[i].id)
	}
	return ids, len(all), nil
}

func (m *MemoryRepository) CountFollowers(_ context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.followerCount(userID), nil
}

func (m *MemoryRepository) GetInfluencerStatus(_ context.Context, userID int64) (*InfluencerStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.influencer[userID]
	if !ok {
		return nil, ErrNoInfluencerStatus
	}
	return &st, nil
}

func (m *MemoryRepository) SaveInfluencerStatus(_ context.Context, userID int64, st *InfluencerStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.influencer[userID] = *st
	return nil
}
