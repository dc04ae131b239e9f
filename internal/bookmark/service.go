package bookmark

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidBookmark = errors.New("bookmark: articleId is required")

// Repository is the persistence contract for bookmarks.
type Repository interface {
	List(ctx context.Context) ([]Bookmark, error)
	Insert(ctx context.Context, b Bookmark) error
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Bookmark, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, b Bookmark) (Bookmark, error) {
	if b.ArticleID == "" {
		return Bookmark{}, ErrInvalidBookmark
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.ArticleTitle == "" {
		b.ArticleTitle = "Untitled"
	}
	if b.Category == "" {
		b.Category = "General"
	}
	b.SavedAt = s.clock().UTC().Format(time.RFC3339Nano)
	if err := s.repo.Insert(ctx, b); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Delete removes a bookmark by its own id or by the bookmarked article's id,
// whichever matches first. Returns false when nothing matched.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range all {
		if b.ID == id || b.ArticleID == id {
			return s.repo.Delete(ctx, b.ID)
		}
	}
	return false, nil
}
