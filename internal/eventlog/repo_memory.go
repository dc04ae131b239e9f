package eventlog

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory append-only repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Insert(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return reversed(r.events), nil
}

func (r *MemoryRepo) ListByResource(ctx context.Context, resourceID string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []Event
	for _, e := range r.events {
		if e.ResourceID == resourceID {
			matched = append(matched, e)
		}
	}
	return reversed(matched), nil
}

// reversed copies insertion order into newest-first order.
func reversed(in []Event) []Event {
	out := make([]Event, len(in))
	for i, e := range in {
		out[len(in)-1-i] = e
	}
	return out
}
