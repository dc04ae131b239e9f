package eventlog

import "encoding/json"

// Event is an immutable, append-only audit record linked into the hash chain.
//
// Invariants:
// - Events are never updated or deleted; no such methods exist anywhere in
//   this package.
// - PrevHash is the chain pointer's latestHash observed immediately before
//   the append; Hash is the link computed for this event and becomes the
//   chain's new latestHash.
// - For any two chronologically adjacent events A (older) and B (newer),
//   B.PrevHash == A.Hash.
//
// Payload keeps the exact serialized bytes that were hashed; verification
// depends on them staying byte-identical.
//
// JSON field names follow the public audit API wire format.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  string          `json:"timestamp"`
	PrevHash   string          `json:"prevHash"`
	Hash       string          `json:"hash"`
	ResourceID string          `json:"resourceId,omitempty"`
}

// Well-known event types appended by the wiki collaborator.
const (
	TypeWikiCreate = "wiki_create"
	TypeWikiEdit   = "wiki_edit"
	TypeWikiDelete = "wiki_delete"
)
