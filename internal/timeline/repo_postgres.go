package timeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"advocacy-platform/internal/forensic"
)

// PostgresRepo persists case timelines; the event list is stored as JSONB.
//
// Assumed table:
//
//	CREATE TABLE case_timelines (
//	  id          TEXT PRIMARY KEY,
//	  title       TEXT NOT NULL,
//	  description TEXT NOT NULL DEFAULT '',
//	  updated_at  TEXT NOT NULL,
//	  events      JSONB NOT NULL,
//	  seq         BIGSERIAL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context) ([]CaseTimeline, error) {
	const q = `
SELECT id, title, description, updated_at, events
FROM case_timelines
ORDER BY seq
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CaseTimeline
	for rows.Next() {
		t, err := scanTimeline(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (CaseTimeline, bool, error) {
	const q = `
SELECT id, title, description, updated_at, events
FROM case_timelines
WHERE id = $1
`
	t, err := scanTimeline(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CaseTimeline{}, false, nil
		}
		return CaseTimeline{}, false, err
	}
	return t, true, nil
}

func (r *PostgresRepo) Put(ctx context.Context, t CaseTimeline) error {
	events, err := json.Marshal(t.Events)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO case_timelines (id, title, description, updated_at, events)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  description = EXCLUDED.description,
  updated_at = EXCLUDED.updated_at,
  events = EXCLUDED.events
`
	_, err = r.db.ExecContext(ctx, q, t.ID, t.Title, t.Description, t.UpdatedAt, events)
	return err
}

func scanTimeline(scan func(dest ...any) error) (CaseTimeline, error) {
	var t CaseTimeline
	var events []byte
	if err := scan(&t.ID, &t.Title, &t.Description, &t.UpdatedAt, &events); err != nil {
		return CaseTimeline{}, err
	}
	if err := json.Unmarshal(events, &t.Events); err != nil {
		return CaseTimeline{}, err
	}
	if t.Events == nil {
		t.Events = []forensic.Event{}
	}
	return t, nil
}
