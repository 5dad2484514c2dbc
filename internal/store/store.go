package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // cgo-free driver
)

// StorageError wraps a persistence-layer failure. Callers must treat it as
// fatal: a run cannot guarantee feed correctness once the store misbehaves.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Store owns the SQLite handle shared by the repositories.
type Store struct {
	db *sql.DB

	// now stamps created_at/updated_at; overridable in tests.
	now func() time.Time
}

// Open opens (creating if necessary) the database file and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageErr("create directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", err)
	}

	// SQLite allows one writer; a single connection avoids lock contention.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return storageErr("close", err)
	}
	return nil
}

// Ping verifies the connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// Earnings returns the earnings repository.
func (s *Store) Earnings() *EarningsRepo {
	return &EarningsRepo{store: s}
}

// Occurrences returns the annual-event occurrence repository.
func (s *Store) Occurrences() *OccurrenceRepo {
	return &OccurrenceRepo{store: s}
}

func (s *Store) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS earnings (
	ticker TEXT NOT NULL,
	fiscal_year INTEGER NOT NULL,
	quarter INTEGER NOT NULL,
	event_date TEXT NOT NULL,
	eps_estimate REAL,
	revenue_estimate REAL,
	source TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (ticker, fiscal_year, quarter)
);
CREATE TABLE IF NOT EXISTS occurrences (
	series_id TEXT NOT NULL,
	year INTEGER NOT NULL,
	start_date TEXT,
	end_date TEXT,
	location TEXT,
	timezone TEXT,
	confident INTEGER NOT NULL DEFAULT 0,
	confirmed INTEGER NOT NULL DEFAULT 0,
	announcement_url TEXT,
	included INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (series_id, year)
);`
	if _, err := s.db.Exec(schema); err != nil {
		return storageErr("initialize schema", err)
	}
	return nil
}
