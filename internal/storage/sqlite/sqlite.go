// Package sqlite implements the storage.Store port on an embedded SQLite
// database.
//
// modernc.org/sqlite is a pure-Go translation of SQLite — no CGo, no external
// server, a single file on disk (or ":memory:" for tests). The whole store is
// one kv table; Set is an upsert that replaces the value wholesale, matching
// the single-key, whole-blob-replace semantics the port promises.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"

	"github.com/sakif/learnhub/internal/storage"
)

// Store is the SQLite-backed key-value store. It holds a connection pool;
// callers own the lifecycle (New creates it, Close releases it).
type Store struct {
	conn *sql.DB
}

// New opens (creating if necessary) the database at path and prepares the kv
// table. Path may be ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Fail now on a bad path or permissions rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return s, nil
}

// Close closes the connection pool. Defer this wherever New is called.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating kv table: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: getting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite: setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	// Deleting an absent key is not an error — Delete is idempotent.
	_, err := s.conn.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("sqlite: deleting %q: %w", key, err)
	}
	return nil
}
