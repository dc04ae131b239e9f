package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeline = errors.New("timeline: title and events are required")
	ErrNotFound        = errors.New("timeline: not found")
)

// Repository is the persistence contract for case timelines.
type Repository interface {
	List(ctx context.Context) ([]CaseTimeline, error)
	Get(ctx context.Context, id string) (CaseTimeline, bool, error)
	Put(ctx context.Context, t CaseTimeline) error
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) List(ctx context.Context) ([]CaseTimeline, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (CaseTimeline, error) {
	t, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return CaseTimeline{}, err
	}
	if !ok {
		return CaseTimeline{}, ErrNotFound
	}
	return t, nil
}

// Create stores a timeline, assigning an id when the caller omits one.
func (s *Service) Create(ctx context.Context, t CaseTimeline) (CaseTimeline, error) {
	if t.Title == "" || len(t.Events) == 0 {
		return CaseTimeline{}, ErrInvalidTimeline
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.UpdatedAt = s.clock().UTC().Format(time.RFC3339Nano)
	if err := s.repo.Put(ctx, t); err != nil {
		return CaseTimeline{}, err
	}
	return t, nil
}
