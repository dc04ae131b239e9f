package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"advocacy-platform/internal/chain"

	"github.com/google/uuid"
)

var (
	ErrInvalidEvent = errors.New("eventlog: type and payload are required")

	// ErrConcurrentModification is returned when every append attempt lost
	// the race for the chain pointer. The caller's change is NOT logged.
	ErrConcurrentModification = errors.New("eventlog: chain modified concurrently, retries exhausted")
)

// DefaultMaxAttempts bounds the append retry loop.
const DefaultMaxAttempts = 4

// RetryPolicy controls the append retry loop. Backoff is intentionally
// immediate: each attempt is one read + one conditional write + one insert,
// and contention on a single low-volume pointer resolves in microseconds.
type RetryPolicy struct {
	MaxAttempts int
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

// Service appends immutable events to the hash chain and reads them back.
//
// Append has at-most-one-writer-wins semantics per attempt: conflicts on the
// chain pointer are retried locally up to the policy bound, and only final
// exhaustion is surfaced.
type Service struct {
	states chain.StateStore
	repo   Repository
	retry  RetryPolicy
	clock  func() time.Time
	newID  func() string
}

func NewService(states chain.StateStore, repo Repository, retry RetryPolicy) *Service {
	return &Service{
		states: states,
		repo:   repo,
		retry:  retry,
		clock:  time.Now,
		newID:  uuid.NewString,
	}
}

// Append records one event on top of the current chain head.
//
// Per attempt: read the pointer, compute the next link, commit it with a
// compare-and-swap, then persist the event record. A lost CAS means another
// writer advanced the pointer; the attempt restarts from a fresh read so the
// new event's prevHash references the winner's hash.
func (s *Service) Append(ctx context.Context, eventType string, payload json.RawMessage, resourceID string) (Event, chain.State, error) {
	if eventType == "" || len(payload) == 0 || !json.Valid(payload) {
		return Event{}, chain.State{}, ErrInvalidEvent
	}

	for i := 0; i < s.retry.attempts(); i++ {
		cur, version, err := s.states.Load(ctx)
		if err != nil {
			return Event{}, chain.State{}, fmt.Errorf("eventlog: load chain state: %w", err)
		}

		eventID := s.newID()
		timestamp := s.clock().UTC().Format(time.RFC3339Nano)
		link := chain.NextLink(cur, eventType, payload, timestamp, eventID)

		if err := s.states.CompareAndSwap(ctx, link.NextState, version); err != nil {
			if errors.Is(err, chain.ErrConflict) {
				continue
			}
			return Event{}, chain.State{}, fmt.Errorf("eventlog: commit chain state: %w", err)
		}

		e := Event{
			ID:         eventID,
			Type:       eventType,
			Payload:    payload,
			Timestamp:  timestamp,
			PrevHash:   cur.LatestHash,
			Hash:       link.Hash,
			ResourceID: resourceID,
		}
		if err := s.repo.Insert(ctx, e); err != nil {
			// The pointer already advanced; the chain now references an
			// event record that was never written. Surface it loudly so the
			// gap can be reconciled.
			slog.Error("event insert failed after chain commit",
				"event_id", eventID, "hash", link.Hash, "err", err)
			return Event{}, chain.State{}, fmt.Errorf("eventlog: insert event %s: %w", eventID, err)
		}
		return e, link.NextState, nil
	}

	return Event{}, chain.State{}, ErrConcurrentModification
}

// QueryAll returns the global log, newest first.
func (s *Service) QueryAll(ctx context.Context) ([]Event, error) {
	return s.repo.ListAll(ctx)
}

// QueryByResource returns the resource-scoped log, newest first. An unknown
// resource yields an empty slice, not an error.
func (s *Service) QueryByResource(ctx context.Context, resourceID string) ([]Event, error) {
	return s.repo.ListByResource(ctx, resourceID)
}

// VerifyIntegrity walks events ordered oldest first and checks that every
// adjacent pair links (next.PrevHash == prev.Hash) and that every stored hash
// is reproduced by recomputing the link over the event's recorded fields.
// Returns false plus the offending event id on the first mismatch.
func VerifyIntegrity(events []Event) (bool, string) {
	prevHash := ""
	for i, e := range events {
		if i == 0 {
			prevHash = e.PrevHash
		}
		if e.PrevHash != prevHash {
			return false, e.ID
		}
		link := chain.NextLink(chain.State{LatestHash: e.PrevHash}, e.Type, e.Payload, e.Timestamp, e.ID)
		if link.Hash != e.Hash {
			return false, e.ID
		}
		prevHash = e.Hash
	}
	return true, ""
}

// OldestFirst returns a copy of a newest-first query result in chain order,
// the order VerifyIntegrity expects.
func OldestFirst(newestFirst []Event) []Event {
	return reversed(newestFirst)
}
