package bookmark

import (
	"context"
	"database/sql"
)

// PostgresRepo persists bookmarks.
//
// Assumed table:
//
//	CREATE TABLE bookmarks (
//	  id            TEXT PRIMARY KEY,
//	  article_id    TEXT NOT NULL,
//	  article_title TEXT NOT NULL,
//	  category      TEXT NOT NULL,
//	  saved_at      TEXT NOT NULL,
//	  seq           BIGSERIAL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context) ([]Bookmark, error) {
	const q = `
SELECT id, article_id, article_title, category, saved_at
FROM bookmarks
ORDER BY seq
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.ArticleID, &b.ArticleTitle, &b.Category, &b.SavedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, b Bookmark) error {
	const q = `
INSERT INTO bookmarks (id, article_id, article_title, category, saved_at)
VALUES ($1,$2,$3,$4,$5)
`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.ArticleID, b.ArticleTitle, b.Category, b.SavedAt)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
