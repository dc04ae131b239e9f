package chain

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStateStore persists the chain pointer in a single versioned row.
//
// Assumed table:
//
//	CREATE TABLE chain_state (
//	  id              TEXT PRIMARY KEY,
//	  latest_hash     TEXT NOT NULL,
//	  latest_event_id TEXT NOT NULL,
//	  count           BIGINT NOT NULL,
//	  version         BIGINT NOT NULL
//	);
//
// Optimistic concurrency: every write bumps version and is guarded by the
// version the caller read. A lost race affects zero rows and maps to
// ErrConflict.
type PostgresStateStore struct {
	db *sql.DB
}

func NewPostgresStateStore(db *sql.DB) *PostgresStateStore {
	return &PostgresStateStore{db: db}
}

func (s *PostgresStateStore) Load(ctx context.Context) (State, int64, error) {
	const sel = `
SELECT id, latest_hash, latest_event_id, count, version
FROM chain_state
WHERE id = $1
`
	var st State
	var version int64
	err := s.db.QueryRowContext(ctx, sel, StateID).Scan(
		&st.ID,
		&st.LatestHash,
		&st.LatestEventID,
		&st.Count,
		&version,
	)
	if err == nil {
		return st, version, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return State{}, 0, err
	}

	// Genesis row. Another writer may race us here; ON CONFLICT makes the
	// insert idempotent and the re-read picks up whichever row won.
	const ins = `
INSERT INTO chain_state (id, latest_hash, latest_event_id, count, version)
VALUES ($1, $2, '', 0, 0)
ON CONFLICT (id) DO NOTHING
`
	if _, err := s.db.ExecContext(ctx, ins, StateID, GenesisHash); err != nil {
		return State{}, 0, err
	}
	err = s.db.QueryRowContext(ctx, sel, StateID).Scan(
		&st.ID,
		&st.LatestHash,
		&st.LatestEventID,
		&st.Count,
		&version,
	)
	if err != nil {
		return State{}, 0, err
	}
	return st, version, nil
}

func (s *PostgresStateStore) CompareAndSwap(ctx context.Context, next State, expectedVersion int64) error {
	const q = `
UPDATE chain_state
SET latest_hash = $2, latest_event_id = $3, count = $4, version = version + 1
WHERE id = $1 AND version = $5
`
	res, err := s.db.ExecContext(ctx, q, StateID, next.LatestHash, next.LatestEventID, next.Count, expectedVersion)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
