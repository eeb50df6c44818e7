// Package storage persists the record collections as a small key-value store
// on SQLite. Each collection is one key holding a JSON array; the store writes
// whole collections, never individual rows.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Keys under which the two collections are persisted.
const (
	KeyTrainingRecords = "training_records"
	KeyPlannedSessions = "planned_sessions"
)

type StateStore struct {
	db *sql.DB
}

// NewStateStore opens (creating if needed) the state database and runs
// migrations.
func NewStateStore(dbPath string) (*StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &StateStore{db: db}, nil
}

func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the payload stored under key, or (nil, nil) when the key is
// absent. Callers treat absence as an empty collection.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM state WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state %s: %w", key, err)
	}
	return payload, nil
}

// Save replaces the payload stored under key in a single write.
func (s *StateStore) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save state %s: %w", key, err)
	}

	slog.DebugContext(ctx, "State saved", "key", key, "bytes", len(payload))
	return nil
}
