package bookmark

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory bookmark repository useful for tests.
type MemoryRepo struct {
	mu        sync.Mutex
	bookmarks []Bookmark
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) List(ctx context.Context) ([]Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Bookmark, len(r.bookmarks))
	copy(out, r.bookmarks)
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, b Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookmarks = append(r.bookmarks, b)
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookmarks {
		if b.ID == id {
			r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
