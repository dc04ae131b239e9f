package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"advocacy-platform/internal/chain"
	"advocacy-platform/internal/eventlog"
)

func newTestService() (*Service, *eventlog.MemoryRepo) {
	events := eventlog.NewMemoryRepo()
	auditor := eventlog.NewService(chain.NewMemoryStateStore(), events, eventlog.RetryPolicy{})
	return NewService(NewMemoryRepo(), auditor), events
}

func validInput() ArticleInput {
	return ArticleInput{
		Title:    "Balance Billing Basics",
		Category: CategoryBilling,
		Summary:  "What balance billing is and when it is prohibited.",
		Content:  "### Overview\nBalance billing is...",
	}
}

func TestCreateAppendsAuditEvent(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService()

	a, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" || a.LastUpdated == "" {
		t.Fatalf("create must assign id and timestamp: %+v", a)
	}

	logged, _ := events.ListByResource(ctx, a.ID)
	if len(logged) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(logged))
	}
	if logged[0].Type != eventlog.TypeWikiCreate {
		t.Fatalf("expected wiki_create, got %q", logged[0].Type)
	}

	var payload Article
	if err := json.Unmarshal(logged[0].Payload, &payload); err != nil {
		t.Fatalf("payload must be the article: %v", err)
	}
	if payload.Title != a.Title {
		t.Fatalf("payload title mismatch: %q", payload.Title)
	}
}

func TestUpdateAndDeleteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService()

	a, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Title = "Balance Billing, Revised"
	updated, err := svc.Update(ctx, a.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != in.Title {
		t.Fatalf("update must apply input, got %q", updated.Title)
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted article must be hidden, got %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted articles must not be listed, got %d", len(list))
	}

	logged, _ := events.ListByResource(ctx, a.ID)
	if len(logged) != 3 {
		t.Fatalf("expected create+edit+delete audit trail, got %d", len(logged))
	}
	if logged[0].Type != eventlog.TypeWikiDelete {
		t.Fatalf("newest event must be the delete, got %q", logged[0].Type)
	}

	if err := svc.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete must be not found, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	in := validInput()
	in.Title = ""
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidArticle) {
		t.Fatalf("missing title must be rejected, got %v", err)
	}

	in = validInput()
	in.Category = "Gossip"
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidArticle) {
		t.Fatalf("unknown category must be rejected, got %v", err)
	}
}

type failingAuditor struct{}

func (failingAuditor) Append(ctx context.Context, eventType string, payload json.RawMessage, resourceID string) (eventlog.Event, chain.State, error) {
	return eventlog.Event{}, chain.State{}, eventlog.ErrConcurrentModification
}

func TestAuditFailureIsSurfaced(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	svc := NewService(repo, failingAuditor{})

	a, err := svc.Create(ctx, validInput())
	if !errors.Is(err, ErrAuditFailed) {
		t.Fatalf("audit failure must surface as ErrAuditFailed, got %v", err)
	}
	// The content write committed first; the caller must learn the record
	// exists but is unaudited.
	if a.ID == "" {
		t.Fatalf("the saved article must be returned alongside the error")
	}
	if _, ok, _ := repo.Get(ctx, a.ID); !ok {
		t.Fatalf("article must remain saved despite the audit failure")
	}
}

func TestEnsureSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService()

	if err := svc.EnsureSeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.EnsureSeed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	list, _ := svc.List(ctx)
	if len(list) != len(seedArticles) {
		t.Fatalf("expected %d seeded articles, got %d", len(seedArticles), len(list))
	}

	// Seeding bypasses the audit chain.
	logged, _ := events.ListAll(ctx)
	if len(logged) != 0 {
		t.Fatalf("seeding must not append audit events, got %d", len(logged))
	}
}
