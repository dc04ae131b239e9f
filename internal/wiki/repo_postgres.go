package wiki

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists articles.
//
// Assumed table:
//
//	CREATE TABLE wiki_articles (
//	  id                TEXT PRIMARY KEY,
//	  title             TEXT NOT NULL,
//	  category          TEXT NOT NULL,
//	  summary           TEXT NOT NULL,
//	  content           TEXT NOT NULL,
//	  statute_reference TEXT NOT NULL DEFAULT '',
//	  last_updated      TEXT NOT NULL,
//	  author_obf        TEXT NOT NULL,
//	  deleted           BOOLEAN NOT NULL DEFAULT FALSE,
//	  seq               BIGSERIAL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context) ([]Article, error) {
	const q = `
SELECT id, title, category, summary, content, statute_reference, last_updated, author_obf, deleted
FROM wiki_articles
ORDER BY seq
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Category,
			&a.Summary,
			&a.Content,
			&a.StatuteReference,
			&a.LastUpdated,
			&a.AuthorObf,
			&a.Deleted,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Article, bool, error) {
	const q = `
SELECT id, title, category, summary, content, statute_reference, last_updated, author_obf, deleted
FROM wiki_articles
WHERE id = $1
`
	var a Article
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID,
		&a.Title,
		&a.Category,
		&a.Summary,
		&a.Content,
		&a.StatuteReference,
		&a.LastUpdated,
		&a.AuthorObf,
		&a.Deleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Article{}, false, nil
		}
		return Article{}, false, err
	}
	return a, true, nil
}

func (r *PostgresRepo) Put(ctx context.Context, a Article) error {
	const q = `
INSERT INTO wiki_articles (id, title, category, summary, content, statute_reference, last_updated, author_obf, deleted)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  category = EXCLUDED.category,
  summary = EXCLUDED.summary,
  content = EXCLUDED.content,
  statute_reference = EXCLUDED.statute_reference,
  last_updated = EXCLUDED.last_updated,
  author_obf = EXCLUDED.author_obf,
  deleted = EXCLUDED.deleted
`
	_, err := r.db.ExecContext(ctx, q,
		a.ID,
		a.Title,
		a.Category,
		a.Summary,
		a.Content,
		a.StatuteReference,
		a.LastUpdated,
		a.AuthorObf,
		a.Deleted,
	)
	return err
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wiki_articles`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
