// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keyindex persists the global registry of citation keys used
// for uniqueness checks during key generation.
package keyindex

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/orgbib/internal/outline"
)

// DefaultPath is the key index database file when none is configured.
const DefaultPath = "orgbib-keys.db"

// Index is the SQLite-backed citation key registry.
type Index struct {
	db *sql.DB
}

// Entry is one registered key with the title and source it came from.
type Entry struct {
	Key    string `json:"key" yaml:"key"`
	Title  string `json:"title" yaml:"title"`
	Source string `json:"source" yaml:"source"`
}

// Open opens or creates the key index database at path, creating the
// schema if it does not exist.
func Open(path string) (*Index, error) {
	if path == "" {
		path = DefaultPath
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening key index: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating key index schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema() error {
	_, err := idx.db.Exec(`CREATE TABLE IF NOT EXISTS keys (
		key TEXT PRIMARY KEY,
		title TEXT,
		source TEXT
	)`)
	return err
}

// Add registers a key, updating the title and source if it exists.
func (idx *Index) Add(ctx context.Context, e Entry) error {
	_, err := idx.db.ExecContext(ctx,
		`INSERT INTO keys (key, title, source) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET title=excluded.title, source=excluded.source`,
		e.Key, e.Title, e.Source,
	)
	if err != nil {
		return fmt.Errorf("registering key %q: %w", e.Key, err)
	}
	return nil
}

// Exists reports whether key is registered.
func (idx *Index) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	err := idx.db.QueryRowContext(ctx,
		`SELECT count(*) FROM keys WHERE key = ?`, key,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying key %q: %w", key, err)
	}
	return n > 0, nil
}

// List returns every registered key in sorted order.
func (idx *Index) List(ctx context.Context) ([]Entry, error) {
	rows, err := idx.db.QueryContext(ctx,
		`SELECT key, title, source FROM keys ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Title, &e.Source); err != nil {
			return nil, fmt.Errorf("scanning key row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Rebuild replaces the keys previously registered from source with the
// keys found in the document's headings under keyProperty. It returns
// the number of keys registered and the keys that appeared more than
// once in the document.
func (idx *Index) Rebuild(ctx context.Context, doc *outline.Document, keyProperty, source string) (int, []string, error) {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("beginning rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM keys WHERE source = ?`, source); err != nil {
		return 0, nil, fmt.Errorf("clearing old keys: %w", err)
	}

	seen := make(map[string]bool)
	var dups []string
	count := 0

	for _, h := range doc.Headings {
		key, ok := h.Property(keyProperty)
		if !ok || key == "" {
			continue
		}
		if seen[key] {
			dups = append(dups, key)
			continue
		}
		seen[key] = true

		_, err := tx.ExecContext(ctx,
			`INSERT INTO keys (key, title, source) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET title=excluded.title, source=excluded.source`,
			key, h.Title, source,
		)
		if err != nil {
			return 0, nil, fmt.Errorf("registering key %q: %w", key, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("committing rebuild: %w", err)
	}
	return count, dups, nil
}
