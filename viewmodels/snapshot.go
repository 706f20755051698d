package viewmodels

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// snapshot is a list replaced wholesale on each successful load. Loads are
// numbered when issued; a response is applied only if no later-issued load has
// been applied already.
type snapshot[T any] struct {
	issued   atomic.Uint64
	inflight atomic.Int32

	mu      sync.RWMutex
	items   []T
	applied uint64
	lastErr error
}

// begin tags a new load and marks the snapshot as loading
func (s *snapshot[T]) begin() uint64 {
	s.inflight.Add(1)
	return s.issued.Add(1)
}

// finish completes the load tagged seq. It reports whether items were applied.
// Failed loads keep the previous items; stale ones change nothing.
func (s *snapshot[T]) finish(seq uint64, items []T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.inflight.Add(-1)

	if seq < s.applied {
		return false
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.lastErr = err
		}
		return false
	}

	if items == nil {
		items = []T{}
	}
	s.items = items
	s.applied = seq
	s.lastErr = nil
	return true
}

// get returns a copy of the current items
func (s *snapshot[T]) get() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *snapshot[T]) loading() bool {
	return s.inflight.Load() > 0
}

func (s *snapshot[T]) err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// fail records a failure that did not come from a load, such as a rejected mutation
func (s *snapshot[T]) fail(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// find returns the first item matching fn
func (s *snapshot[T]) find(fn func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if fn(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
