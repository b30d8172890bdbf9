// Package keylock provides a keyed advisory lock: acquire-by-key bounded
// by a context, release on completion. It serializes units of work that
// share a key (e.g. charge attempts for the same order id) without a
// single global lock.
package keylock

import (
	"context"
	"sync"
)

type KeyLock struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func New() *KeyLock {
	return &KeyLock{locks: make(map[string]chan struct{})}
}

// Acquire blocks until the key is free or ctx is done. On success it
// returns a release function; releasing twice is a no-op.
func (l *KeyLock) Acquire(ctx context.Context, key string) (func(), error) {
	for {
		l.mu.Lock()
		ch, held := l.locks[key]
		if !held {
			l.locks[key] = make(chan struct{})
			l.mu.Unlock()

			var once sync.Once
			release := func() {
				once.Do(func() {
					l.mu.Lock()
					done := l.locks[key]
					delete(l.locks, key)
					l.mu.Unlock()
					if done != nil {
						close(done)
					}
				})
			}
			return release, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ch:
			// Holder released; race for the key again.
		}
	}
}
