// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists search hits in SQLite so repeated runs over the
// same citation list do not re-query arXiv for records already matched.
// Misses are never stored: a re-run is the retry mechanism for them.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citemap/pkg/types"
)

const table = "search_cache"

// Store is a SQLite-backed query → candidate cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + table + ` (
		query TEXT PRIMARY KEY,
		arxiv_id TEXT NOT NULL,
		title TEXT,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Lookup returns the cached candidate for query, if any.
func (s *Store) Lookup(ctx context.Context, query string) (types.Candidate, bool, error) {
	var c types.Candidate
	var title sql.NullString
	err := sq.Select("arxiv_id", "title").
		From(table).
		Where(sq.Eq{"query": query}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&c.ID, &title)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Candidate{}, false, nil
	}
	if err != nil {
		return types.Candidate{}, false, fmt.Errorf("looking up %q: %w", query, err)
	}
	c.Title = title.String
	return c, true, nil
}

// Store records the candidate matched for query, replacing any earlier entry.
func (s *Store) Store(ctx context.Context, query string, c types.Candidate) error {
	if c.ID == "" {
		return nil
	}
	_, err := sq.Insert(table).
		Options("OR REPLACE").
		Columns("query", "arxiv_id", "title", "created_at").
		Values(query, c.ID, c.Title, s.now().UTC().Format(time.RFC3339)).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("storing %q: %w", query, err)
	}
	return nil
}

// Len returns the number of cached queries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := sq.Select("COUNT(*)").From(table).RunWith(s.db).QueryRowContext(ctx).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}
