package bookmark

import (
	"context"
	"errors"
	"testing"
)

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())

	b, err := svc.Create(ctx, Bookmark{ArticleID: "pa-act-169"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" || b.SavedAt == "" {
		t.Fatalf("create must assign id and savedAt: %+v", b)
	}
	if b.ArticleTitle != "Untitled" || b.Category != "General" {
		t.Fatalf("defaults not applied: %+v", b)
	}

	if _, err := svc.Create(ctx, Bookmark{}); !errors.Is(err, ErrInvalidBookmark) {
		t.Fatalf("missing articleId must be rejected, got %v", err)
	}
}

func TestDeleteByBookmarkOrArticleID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())

	b1, _ := svc.Create(ctx, Bookmark{ArticleID: "a1", ArticleTitle: "One"})
	svc.Create(ctx, Bookmark{ArticleID: "a2", ArticleTitle: "Two"})

	deleted, err := svc.Delete(ctx, b1.ID)
	if err != nil || !deleted {
		t.Fatalf("delete by bookmark id: deleted=%v err=%v", deleted, err)
	}

	deleted, err = svc.Delete(ctx, "a2")
	if err != nil || !deleted {
		t.Fatalf("delete by article id: deleted=%v err=%v", deleted, err)
	}

	deleted, err = svc.Delete(ctx, "missing")
	if err != nil {
		t.Fatalf("delete miss must not error: %v", err)
	}
	if deleted {
		t.Fatalf("delete miss must report false")
	}

	left, _ := svc.List(ctx)
	if len(left) != 0 {
		t.Fatalf("expected empty list, got %d", len(left))
	}
}
