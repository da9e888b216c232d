// Package semaphore provides a context-aware counting semaphore used to
// serialize access to shared session streams.
package semaphore

import (
	"context"
)

// Semaphore controls concurrent access to a resource.
// It uses a buffered channel to limit the number of concurrent holders.
type Semaphore struct {
	sem chan struct{}
}

// New creates a semaphore with capacity n.
// The semaphore starts with all n slots available.
func New(n int) *Semaphore {
	sem := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		sem <- struct{}{}
	}
	return &Semaphore{sem: sem}
}

// Acquire blocks until a slot is available or the context is done.
// Returns the context error if the context is cancelled while waiting.
// If the semaphore is nil, this is a no-op and returns nil.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s == nil {
		return nil // no-op if semaphore not provided
	}

	select {
	case <-s.sem:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot to the semaphore.
// If the semaphore is nil, this is a no-op.
func (s *Semaphore) Release() {
	if s == nil {
		return // no-op if semaphore not provided
	}
	s.sem <- struct{}{}
}
