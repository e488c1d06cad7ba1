// Package sqlite stores a prebuilt documentation index in an SQLite FTS5
// table, so large collections do not need to be scanned on every lookup.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE VIRTUAL TABLE IF NOT EXISTS docs USING fts5(
	slug UNINDEXED,
	title,
	description,
	body,
	tokenize = 'unicode61'
);`

// maxHits bounds a single lookup; callers normalize to a smaller limit.
const maxHits = 50

const searchQuery = `
SELECT slug, title, snippet(docs, -1, '<mark>', '</mark>', '…', 16), bm25(docs, 0.0, 3.0, 2.0, 1.0) AS rank
FROM docs
WHERE docs MATCH ?
ORDER BY rank
LIMIT ?`

// Index implements ports.SearchIndex over an FTS5 table.
type Index struct {
	db      *sql.DB
	baseURL string
}

// Option configures an Index.
type Option func(*Index)

// WithBaseURL prefixes every hit URL.
func WithBaseURL(base string) Option {
	return func(i *Index) {
		i.baseURL = strings.TrimSuffix(base, "/")
	}
}

// Open opens (or creates) the index database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}

	idx := &Index{db: db}
	for _, opt := range opts {
		opt(idx)
	}
	return idx, nil
}

// Close releases the database.
func (i *Index) Close() error {
	return i.db.Close()
}

// Build replaces the indexed entries in one transaction.
func (i *Index) Build(ctx context.Context, entries []domain.Entry) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin build: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM docs`); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO docs (slug, title, description, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Slug, e.Title, e.Description, e.Body); err != nil {
			return fmt.Errorf("index %s: %w", e.Slug, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of indexed entries.
func (i *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := i.db.QueryRowContext(ctx, `SELECT count(*) FROM docs`).Scan(&n)
	return n, err
}

// Search matches every term of query as a prefix, best first.
func (i *Index) Search(ctx context.Context, query string) ([]domain.Hit, error) {
	match := MatchExpr(query)
	if match == "" {
		return nil, nil
	}

	rows, err := i.db.QueryContext(ctx, searchQuery, match, maxHits)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer rows.Close()

	var hits []domain.Hit
	for rows.Next() {
		var (
			slug string
			hit  domain.Hit
			rank float64
		)
		if err := rows.Scan(&slug, &hit.Title, &hit.Excerpt, &rank); err != nil {
			return nil, err
		}
		hit.URL = i.baseURL + "/" + strings.TrimPrefix(slug, "/")
		hit.Score = -rank
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// MatchExpr turns free text into an FTS5 expression: each whitespace
// separated term is quoted and matched as a prefix, all terms required.
func MatchExpr(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ReplaceAll(t, `"`, `""`)
		quoted = append(quoted, `"`+t+`"*`)
	}
	return strings.Join(quoted, " ")
}
