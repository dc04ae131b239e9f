package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"advocacy-platform/internal/chain"
	"advocacy-platform/internal/eventlog"

	"github.com/google/uuid"
)

var (
	ErrInvalidArticle = errors.New("wiki: invalid article")
	ErrNotFound       = errors.New("wiki: article not found")

	// ErrAuditFailed wraps an audit-append failure after the content write
	// already committed. The article IS saved but the change is unaudited;
	// callers must surface this distinctly from a failed save.
	ErrAuditFailed = errors.New("wiki: audit append failed")
)

// Auditor appends one immutable record to the provenance chain.
type Auditor interface {
	Append(ctx context.Context, eventType string, payload json.RawMessage, resourceID string) (eventlog.Event, chain.State, error)
}

// Service owns the article library and appends every mutation to the audit
// chain with the article id as resourceId.
//
// The content write and the audit append are two separate operations against
// the store (no cross-record transaction exists in the storage contract), so
// a crash between them can leave a saved-but-unaudited record. The append
// always runs second and its failure fails the request with ErrAuditFailed.
type Service struct {
	repo    Repository
	auditor Auditor
	clock   func() time.Time
}

func NewService(repo Repository, auditor Auditor) *Service {
	return &Service{repo: repo, auditor: auditor, clock: time.Now}
}

// authorObf is the placeholder author handle recorded on mutations, matching
// the obfuscation posture of the seed content.
const authorObf = "expert-user"

func validateInput(in ArticleInput) error {
	if in.Title == "" || in.Summary == "" || in.Content == "" {
		return ErrInvalidArticle
	}
	if !validCategory(in.Category) {
		return ErrInvalidArticle
	}
	return nil
}

// List returns all non-deleted articles.
func (s *Service) List(ctx context.Context) ([]Article, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Article, 0, len(all))
	for _, a := range all {
		if !a.Deleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Article, error) {
	a, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Article{}, err
	}
	if !ok || a.Deleted {
		return Article{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, in ArticleInput) (Article, error) {
	if err := validateInput(in); err != nil {
		return Article{}, err
	}
	a := Article{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Category:         in.Category,
		Summary:          in.Summary,
		Content:          in.Content,
		StatuteReference: in.StatuteReference,
		LastUpdated:      s.clock().UTC().Format(time.RFC3339Nano),
		AuthorObf:        authorObf,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return Article{}, err
	}
	if err := s.audit(ctx, eventlog.TypeWikiCreate, a, a.ID); err != nil {
		return a, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, in ArticleInput) (Article, error) {
	if err := validateInput(in); err != nil {
		return Article{}, err
	}
	cur, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Article{}, err
	}
	if !ok || cur.Deleted {
		return Article{}, ErrNotFound
	}

	updated := Article{
		ID:               id,
		Title:            in.Title,
		Category:         in.Category,
		Summary:          in.Summary,
		Content:          in.Content,
		StatuteReference: in.StatuteReference,
		LastUpdated:      s.clock().UTC().Format(time.RFC3339Nano),
		AuthorObf:        authorObf,
	}
	if err := s.repo.Put(ctx, updated); err != nil {
		return Article{}, err
	}
	if err := s.audit(ctx, eventlog.TypeWikiEdit, updated, id); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete soft-deletes an article so the audit chain keeps a valid referent.
func (s *Service) Delete(ctx context.Context, id string) error {
	cur, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok || cur.Deleted {
		return ErrNotFound
	}
	cur.Deleted = true
	if err := s.repo.Put(ctx, cur); err != nil {
		return err
	}
	return s.audit(ctx, eventlog.TypeWikiDelete, map[string]string{"id": id}, id)
}

func (s *Service) audit(ctx context.Context, eventType string, payload any, resourceID string) error {
	if s.auditor == nil {
		return fmt.Errorf("%w: auditor not configured", ErrAuditFailed)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuditFailed, err)
	}
	if _, _, err := s.auditor.Append(ctx, eventType, raw, resourceID); err != nil {
		return fmt.Errorf("%w: %v", ErrAuditFailed, err)
	}
	return nil
}
