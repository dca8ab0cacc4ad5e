// internal/common/userlock/userlock.go
// Per-user mutual exclusion for read-modify-write sequences

package userlock

import (
	"context"
	"sync"
)

// Locker hands out one lock per user id. Entries are dropped once no
// goroutine holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

type heldKey struct {
	l  *Locker
	id int64
}

func New() *Locker {
	return &Locker{locks: make(map[int64]*entry)}
}

// Lock blocks until the user's lock is acquired or ctx is done. The returned
// context marks the lock as held, so nested Lock calls for the same user made
// with it return immediately.
func (l *Locker) Lock(ctx context.Context, userID int64) (context.Context, func(), error) {
	key := heldKey{l: l, id: userID}
	if ctx.Value(key) != nil {
		return ctx, func() {}, nil
	}

	l.mu.Lock()
	e, ok := l.locks[userID]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(userID, e)
		return ctx, nil, ctx.Err()
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			<-e.ch
			l.release(userID, e)
		})
	}
	return context.WithValue(ctx, key, true), unlock, nil
}

func (l *Locker) release(userID int64, e *entry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, userID)
	}
	l.mu.Unlock()
}

// Held reports whether ctx already holds the lock for userID
func (l *Locker) Held(ctx context.Context, userID int64) bool {
	return ctx.Value(heldKey{l: l, id: userID}) != nil
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
