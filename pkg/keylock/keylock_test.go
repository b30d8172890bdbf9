package keylock

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestKeyLock_AcquireAndRelease(t *testing.T) {
	l := New()

	release, err := l.Acquire(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	release()

	// Released key must be acquirable again.
	release2, err := l.Acquire(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error after release: %v", err)
	}
	release2()

	// Double release is a no-op.
	release2()
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	l := New()

	r1, err := l.Acquire(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r2, err := l.Acquire(ctx, "order-2")
	if err != nil {
		t.Fatalf("independent key must not block: %v", err)
	}
	r2()
}

func TestKeyLock_SameKeyBlocksUntilContextDone(t *testing.T) {
	l := New()

	release, err := l.Acquire(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Acquire(ctx, "order-1"); err != context.DeadlineExceeded {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestKeyLock_SerializesHolders(t *testing.T) {
	l := New()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "order-1")
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder at a time, saw %d", maxSeen)
	}
}
