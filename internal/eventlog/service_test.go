package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"advocacy-platform/internal/chain"
)

func newTestService() (*Service, *chain.MemoryStateStore, *MemoryRepo) {
	states := chain.NewMemoryStateStore()
	repo := NewMemoryRepo()
	return NewService(states, repo, RetryPolicy{}), states, repo
}

func TestAppendFromGenesis(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newTestService()

	e, st, err := svc.Append(ctx, "wiki_create", json.RawMessage(`{"title":"X"}`), "a1")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if e.PrevHash != chain.GenesisHash {
		t.Fatalf("first event must link to genesis, got %q", e.PrevHash)
	}
	if st.Count != 1 {
		t.Fatalf("count after first append must be 1, got %d", st.Count)
	}
	if st.LatestHash != e.Hash || st.LatestEventID != e.ID {
		t.Fatalf("chain state must point at the new event: %+v vs %+v", st, e)
	}

	stored, _, err := states.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored != st {
		t.Fatalf("returned state must match stored state")
	}
}

func TestAppendChainLinkageAndCount(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newTestService()

	const n = 5
	for i := 0; i < n; i++ {
		if _, _, err := svc.Append(ctx, "wiki_edit", json.RawMessage(`{"rev":1}`), "a1"); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	newest, err := svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(newest) != n {
		t.Fatalf("expected %d events, got %d", n, len(newest))
	}

	events := OldestFirst(newest)
	for i := 0; i+1 < len(events); i++ {
		if events[i+1].PrevHash != events[i].Hash {
			t.Fatalf("link broken between %d and %d", i, i+1)
		}
	}

	st, _, _ := states.Load(ctx)
	if st.Count != n {
		t.Fatalf("count must equal %d, got %d", n, st.Count)
	}
	if st.LatestHash != events[len(events)-1].Hash {
		t.Fatalf("latestHash must equal the last event's hash")
	}
}

func TestAppendRejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	svc, states, repo := newTestService()

	cases := []struct {
		typ     string
		payload json.RawMessage
	}{
		{"", json.RawMessage(`{}`)},
		{"wiki_edit", nil},
		{"wiki_edit", json.RawMessage(`{not json`)},
	}
	for _, tc := range cases {
		if _, _, err := svc.Append(ctx, tc.typ, tc.payload, ""); !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("type=%q payload=%q: expected ErrInvalidEvent, got %v", tc.typ, tc.payload, err)
		}
	}

	// Fail fast: no partial state change.
	st, _, _ := states.Load(ctx)
	if st.Count != 0 {
		t.Fatalf("rejected appends must not touch the chain, count=%d", st.Count)
	}
	events, _ := repo.ListAll(ctx)
	if len(events) != 0 {
		t.Fatalf("rejected appends must not write events")
	}
}

// racingStore injects a rival append immediately before the caller's first
// CAS, simulating two writers that read the same chain state.
type racingStore struct {
	*chain.MemoryStateStore
	once  sync.Once
	rival func()
}

func (s *racingStore) CompareAndSwap(ctx context.Context, next chain.State, expectedVersion int64) error {
	s.once.Do(s.rival)
	return s.MemoryStateStore.CompareAndSwap(ctx, next, expectedVersion)
}

func TestAppendRetriesAfterLostRace(t *testing.T) {
	ctx := context.Background()
	underlying := chain.NewMemoryStateStore()
	repo := NewMemoryRepo()

	rivalSvc := NewService(underlying, repo, RetryPolicy{})
	var rivalHash string

	store := &racingStore{MemoryStateStore: underlying}
	store.rival = func() {
		e, _, err := rivalSvc.Append(ctx, "wiki_create", json.RawMessage(`{"who":"rival"}`), "")
		if err != nil {
			t.Fatalf("rival append: %v", err)
		}
		rivalHash = e.Hash
	}

	svc := NewService(store, repo, RetryPolicy{})
	e, st, err := svc.Append(ctx, "wiki_edit", json.RawMessage(`{"who":"loser"}`), "")
	if err != nil {
		t.Fatalf("append after lost race: %v", err)
	}
	if e.PrevHash != rivalHash {
		t.Fatalf("retried append must link to the rival's hash, got %q want %q", e.PrevHash, rivalHash)
	}
	if st.Count != 2 {
		t.Fatalf("final count must be 2, got %d", st.Count)
	}
}

// contestedStore loses every CAS.
type contestedStore struct {
	*chain.MemoryStateStore
	attempts int
}

func (s *contestedStore) CompareAndSwap(ctx context.Context, next chain.State, expectedVersion int64) error {
	s.attempts++
	return chain.ErrConflict
}

func TestAppendExhaustsRetries(t *testing.T) {
	ctx := context.Background()
	store := &contestedStore{MemoryStateStore: chain.NewMemoryStateStore()}
	repo := NewMemoryRepo()
	svc := NewService(store, repo, RetryPolicy{})

	_, _, err := svc.Append(ctx, "wiki_edit", json.RawMessage(`{}`), "")
	if !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	if store.attempts != DefaultMaxAttempts {
		t.Fatalf("expected %d attempts, got %d", DefaultMaxAttempts, store.attempts)
	}
	events, _ := repo.ListAll(ctx)
	if len(events) != 0 {
		t.Fatalf("exhausted append must not write an event")
	}
}

func TestQueryByResource(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	svc.Append(ctx, "wiki_create", json.RawMessage(`{"n":1}`), "a1")
	svc.Append(ctx, "wiki_create", json.RawMessage(`{"n":2}`), "a2")
	svc.Append(ctx, "wiki_edit", json.RawMessage(`{"n":3}`), "a1")

	scoped, err := svc.QueryByResource(ctx, "a1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 events for a1, got %d", len(scoped))
	}
	if scoped[0].Type != "wiki_edit" {
		t.Fatalf("results must be newest first, got %q", scoped[0].Type)
	}

	none, err := svc.QueryByResource(ctx, "missing")
	if err != nil {
		t.Fatalf("unknown resource must not error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("unknown resource must yield an empty result")
	}
}

func TestVerifyIntegrity(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for i := 0; i < 4; i++ {
		if _, _, err := svc.Append(ctx, "wiki_edit", json.RawMessage(`{"rev":2}`), "a1"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	newest, _ := svc.QueryAll(ctx)
	events := OldestFirst(newest)

	if ok, bad := VerifyIntegrity(events); !ok {
		t.Fatalf("untampered chain must verify, flagged %q", bad)
	}

	// Tampering with a payload must be detected at that event.
	tampered := make([]Event, len(events))
	copy(tampered, events)
	tampered[1].Payload = json.RawMessage(`{"rev":999}`)
	ok, bad := VerifyIntegrity(tampered)
	if ok {
		t.Fatalf("tampered chain must fail verification")
	}
	if bad != tampered[1].ID {
		t.Fatalf("expected offender %q, got %q", tampered[1].ID, bad)
	}

	// A broken link must be detected on the later event.
	relinked := make([]Event, len(events))
	copy(relinked, events)
	relinked[2].PrevHash = chain.GenesisHash
	ok, bad = VerifyIntegrity(relinked)
	if ok {
		t.Fatalf("broken linkage must fail verification")
	}
	if bad != relinked[2].ID {
		t.Fatalf("expected offender %q, got %q", relinked[2].ID, bad)
	}

	if ok, _ := VerifyIntegrity(nil); !ok {
		t.Fatalf("an empty log is intact")
	}
}

// Verification recomputes each hash over the payload bytes read back from
// storage, so storage must round-trip those bytes exactly. A backend that
// normalizes JSON on the way through (reordering keys, changing whitespace)
// makes every untampered chain read as broken.
func TestVerifyIntegrityRequiresExactPayloadBytes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	if _, _, err := svc.Append(ctx, "wiki_edit", json.RawMessage(`{"title":"X","a":1}`), "a1"); err != nil {
		t.Fatalf("append: %v", err)
	}
	newest, _ := svc.QueryAll(ctx)
	events := OldestFirst(newest)

	if ok, bad := VerifyIntegrity(events); !ok {
		t.Fatalf("stored bytes must verify, flagged %q", bad)
	}

	// Decode and re-marshal the payload; map marshaling sorts keys, standing
	// in for any store that re-serializes JSON instead of keeping the bytes.
	var decoded map[string]any
	if err := json.Unmarshal(events[0].Payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	renormalized, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(renormalized) == string(events[0].Payload) {
		t.Fatalf("fixture payload must change under re-serialization")
	}

	reread := make([]Event, len(events))
	copy(reread, events)
	reread[0].Payload = renormalized
	if ok, _ := VerifyIntegrity(reread); ok {
		t.Fatalf("re-serialized payload bytes must fail verification")
	}
}
