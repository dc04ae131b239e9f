package chain

import "strings"

// StateID is the key of the singleton chain pointer record.
const StateID = "global"

// GenesisHash is the latestHash value before any event has been appended.
var GenesisHash = strings.Repeat("0", 64)

// State is the single record tracking the head of the audit chain.
//
// Invariants:
// - Count strictly increases by 1 per accepted append.
// - LatestHash always equals the hash of the most recently appended event.
type State struct {
	ID            string `json:"id"`
	LatestHash    string `json:"latestHash"`
	LatestEventID string `json:"latestEventId"`
	Count         int64  `json:"count"`
}

// Genesis returns the pointer state of an empty chain.
func Genesis() State {
	return State{ID: StateID, LatestHash: GenesisHash, LatestEventID: "", Count: 0}
}

// Link is the result of computing the next chain link. NextState is the
// pointer value to commit; Hash becomes the new event's hash.
type Link struct {
	Hash      string
	NextState State
}
