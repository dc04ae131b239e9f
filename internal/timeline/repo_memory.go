package timeline

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory timeline repository useful for tests.
type MemoryRepo struct {
	mu        sync.Mutex
	timelines map[string]CaseTimeline
	order     []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{timelines: map[string]CaseTimeline{}}
}

func (r *MemoryRepo) List(ctx context.Context) ([]CaseTimeline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CaseTimeline, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.timelines[id])
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (CaseTimeline, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.timelines[id]
	return t, ok, nil
}

func (r *MemoryRepo) Put(ctx context.Context, t CaseTimeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timelines[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	r.timelines[t.ID] = t
	return nil
}
