package eventlog

import (
	"context"
	"database/sql"
)

// PostgresRepo persists event records.
//
// The payload column is TEXT, not JSONB. Each event's hash covers the exact
// payload bytes that were hashed at append time, and verification recomputes
// it over the bytes read back; jsonb normalizes on storage (key reorder,
// whitespace), which would make every stored payload fail verification.
// TEXT round-trips the bytes unchanged.
//
// Assumed table (INSERT-only; recommend a trigger preventing UPDATE/DELETE):
//
//	CREATE TABLE audit_events (
//	  id          TEXT PRIMARY KEY,
//	  type        TEXT NOT NULL,
//	  payload     TEXT NOT NULL,
//	  timestamp   TEXT NOT NULL,
//	  prev_hash   TEXT NOT NULL,
//	  hash        TEXT NOT NULL,
//	  resource_id TEXT NOT NULL DEFAULT '',
//	  seq         BIGSERIAL
//	);
//	CREATE INDEX audit_events_resource_idx ON audit_events (resource_id, seq DESC);
//
// seq orders reads; the chain's prev_hash linkage is the source of truth for
// integrity, not seq.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (id, type, payload, timestamp, prev_hash, hash, resource_id)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.Type,
		string(e.Payload),
		e.Timestamp,
		e.PrevHash,
		e.Hash,
		e.ResourceID,
	)
	return err
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Event, error) {
	const q = `
SELECT id, type, payload, timestamp, prev_hash, hash, resource_id
FROM audit_events
ORDER BY seq DESC
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *PostgresRepo) ListByResource(ctx context.Context, resourceID string) ([]Event, error) {
	const q = `
SELECT id, type, payload, timestamp, prev_hash, hash, resource_id
FROM audit_events
WHERE resource_id = $1
ORDER BY seq DESC
`
	rows, err := r.db.QueryContext(ctx, q, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var e Event
		var payload string
		if err := rows.Scan(
			&e.ID,
			&e.Type,
			&payload,
			&e.Timestamp,
			&e.PrevHash,
			&e.Hash,
			&e.ResourceID,
		); err != nil {
			return nil, err
		}
		e.Payload = []byte(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}
