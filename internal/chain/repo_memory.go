package chain

import (
	"context"
	"sync"
)

// MemoryStateStore is an in-memory StateStore useful for tests.
// It is not intended for production use.
type MemoryStateStore struct {
	mu      sync.Mutex
	state   State
	version int64
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{state: Genesis()}
}

func (s *MemoryStateStore) Load(ctx context.Context) (State, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.version, nil
}

func (s *MemoryStateStore) CompareAndSwap(ctx context.Context, next State, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != expectedVersion {
		return ErrConflict
	}
	next.ID = StateID
	s.state = next
	s.version++
	return nil
}
