// Package chain maintains the hash-chained audit pointer: a singleton record
// holding the latest link hash, plus the pure function producing the next
// link.
//
// Each link's hash is computed as
//
//	SHA-256(latestHash | type | payload | timestamp)
//
// over the pipe-joined fields, hex-encoded. The payload contributes its exact
// serialized bytes; verification must reuse the same bytes.
package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NextLink computes the hash for an event being appended on top of cur and
// the pointer state that commits it. Pure; no side effects.
func NextLink(cur State, eventType string, payload []byte, timestamp, eventID string) Link {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", cur.LatestHash, eventType, payload, timestamp)
	sum := hex.EncodeToString(h.Sum(nil))

	return Link{
		Hash: sum,
		NextState: State{
			ID:            StateID,
			LatestHash:    sum,
			LatestEventID: eventID,
			Count:         cur.Count + 1,
		},
	}
}
