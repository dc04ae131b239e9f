package chain

import (
	"context"
	"errors"
)

// ErrConflict signals that another writer advanced the pointer between this
// caller's Load and CompareAndSwap.
var ErrConflict = errors.New("chain: concurrent modification")

// StateStore is the persistence contract for the singleton pointer record.
//
// Load must create the genesis record if none exists, and returns an opaque
// version used to guard the subsequent write. CompareAndSwap must fail with
// ErrConflict (never silently overwrite) when the stored version no longer
// matches expectedVersion.
type StateStore interface {
	Load(ctx context.Context) (State, int64, error)
	CompareAndSwap(ctx context.Context, next State, expectedVersion int64) error
}
