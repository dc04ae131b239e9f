package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestGenesisHashShape(t *testing.T) {
	if len(GenesisHash) != 64 {
		t.Fatalf("genesis hash must be 64 chars, got %d", len(GenesisHash))
	}
	for _, c := range GenesisHash {
		if c != '0' {
			t.Fatalf("genesis hash must be all zeros, got %q", GenesisHash)
		}
	}
}

func TestNextLinkMatchesManualDigest(t *testing.T) {
	cur := Genesis()
	payload := []byte(`{"title":"X"}`)
	ts := "2024-01-01T00:00:00Z"

	link := NextLink(cur, "wiki_create", payload, ts, "ev-1")

	sum := sha256.Sum256([]byte(cur.LatestHash + "|wiki_create|" + string(payload) + "|" + ts))
	want := hex.EncodeToString(sum[:])
	if link.Hash != want {
		t.Fatalf("hash mismatch: got %s want %s", link.Hash, want)
	}
	if link.NextState.LatestHash != link.Hash {
		t.Fatalf("next state must carry the new hash")
	}
	if link.NextState.LatestEventID != "ev-1" {
		t.Fatalf("next state must carry the new event id, got %q", link.NextState.LatestEventID)
	}
	if link.NextState.Count != 1 {
		t.Fatalf("count must advance by 1, got %d", link.NextState.Count)
	}
}

func TestNextLinkIsDeterministic(t *testing.T) {
	cur := State{ID: StateID, LatestHash: GenesisHash, Count: 3}
	a := NextLink(cur, "t", []byte(`{"a":1}`), "2024-06-01T10:00:00Z", "id")
	b := NextLink(cur, "t", []byte(`{"a":1}`), "2024-06-01T10:00:00Z", "id")
	if a.Hash != b.Hash {
		t.Fatalf("same inputs must hash identically: %s vs %s", a.Hash, b.Hash)
	}

	c := NextLink(cur, "t", []byte(`{"a":2}`), "2024-06-01T10:00:00Z", "id")
	if c.Hash == a.Hash {
		t.Fatalf("different payloads must not collide")
	}
}

func TestMemoryStateStoreCAS(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStateStore()

	st, ver, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.LatestHash != GenesisHash || st.Count != 0 {
		t.Fatalf("fresh store must start at genesis, got %+v", st)
	}

	link := NextLink(st, "t", []byte(`{}`), "2024-01-01T00:00:00Z", "e1")
	if err := s.CompareAndSwap(ctx, link.NextState, ver); err != nil {
		t.Fatalf("first CAS must succeed: %v", err)
	}

	// Stale version must be rejected, not overwritten.
	stale := NextLink(st, "t", []byte(`{}`), "2024-01-01T00:00:01Z", "e2")
	if err := s.CompareAndSwap(ctx, stale.NextState, ver); err != ErrConflict {
		t.Fatalf("stale CAS must return ErrConflict, got %v", err)
	}

	st2, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st2.LatestHash != link.Hash || st2.Count != 1 {
		t.Fatalf("winner's state must be preserved, got %+v", st2)
	}
}
