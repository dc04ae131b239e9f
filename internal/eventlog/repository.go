package eventlog

import "context"

// Repository is the persistence contract for event records.
//
// It MUST be append-only. No Update/Delete methods are provided by design.
// List methods return newest first and an empty slice (not an error) when
// nothing matches.
type Repository interface {
	Insert(ctx context.Context, e Event) error
	ListAll(ctx context.Context) ([]Event, error)
	ListByResource(ctx context.Context, resourceID string) ([]Event, error)
}
