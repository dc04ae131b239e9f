package wiki

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory article repository useful for tests.
type MemoryRepo struct {
	mu       sync.Mutex
	articles map[string]Article
	order    []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{articles: map[string]Article{}}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Article, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.articles[id])
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Article, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	return a, ok, nil
}

func (r *MemoryRepo) Put(ctx context.Context, a Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.articles[a.ID] = a
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.articles), nil
}
