package userlock

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLockSerializesSameUser(t *testing.T) {
	l := New()
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, unlock, err := l.Lock(ctx, 1)
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
	if l.size() != 0 {
		t.Fatalf("expected entries to be released, have %d", l.size())
	}
}

func TestLockIsReentrantThroughContext(t *testing.T) {
	l := New()
	ctx, unlock, err := l.Lock(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	done := make(chan struct{})
	go func() {
		_, inner, err := l.Lock(ctx, 7)
		if err != nil {
			t.Errorf("nested lock: %v", err)
		}
		inner()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested lock with held context blocked")
	}
	if !l.Held(ctx, 7) {
		t.Fatal("expected lock to be marked held")
	}
}

func TestDifferentUsersDoNotBlock(t *testing.T) {
	l := New()
	_, unlockA, _ := l.Lock(context.Background(), 1)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, unlockB, err := l.Lock(ctx, 2)
	if err != nil {
		t.Fatalf("user 2 blocked by user 1: %v", err)
	}
	unlockB()
}

func TestLockHonoursContext(t *testing.T) {
	l := New()
	_, unlock, _ := l.Lock(context.Background(), 1)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, _, err := l.Lock(ctx, 1); err == nil {
		t.Fatal("expected context error while lock is held")
	}
}
