// Package store is the persistence adapter: a sqlite-backed key-value
// snapshot store for cart and wishlist state.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no snapshot exists under a key. Callers
// treat it as "start empty", never as a failure.
var ErrNotFound = errors.New("snapshot not found")

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// CartKey and WishlistKey scope the two logical snapshot names to one
// visitor.
func CartKey(visitor string) string {
	return visitor + "/cart"
}

func WishlistKey(visitor string) string {
	return visitor + "/wishlist"
}

// SaveSnapshot writes (or replaces) the snapshot under key. Saved after
// every cart/wishlist mutation, so last write wins.
func (s *Store) SaveSnapshot(key string, value []byte) error {
	_, err := s.DB.Exec(`
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// LoadSnapshot reads the snapshot under key, or ErrNotFound.
func (s *Store) LoadSnapshot(key string) ([]byte, error) {
	var value string
	err := s.DB.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return []byte(value), nil
}

// DeleteSnapshot removes the snapshot under key; missing keys are fine.
func (s *Store) DeleteSnapshot(key string) error {
	_, err := s.DB.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

// PurgeBefore deletes snapshots not touched since t. Used by the cli to
// clear out carts of visitors who never came back.
func (s *Store) PurgeBefore(t time.Time) (int64, error) {
	res, err := s.DB.Exec(`DELETE FROM snapshots WHERE updated_at < ?`, t.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}
	return res.RowsAffected()
}
