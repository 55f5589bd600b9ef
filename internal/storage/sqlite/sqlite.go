// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/ventry/ventry/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	// caps describes which later-revision attendee columns are
	// available, decided once at schema setup.
	caps Capabilities
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and ensures the schema.
// A base-schema failure is fatal; additive migration failures are
// logged and the store runs with a reduced column set.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Cascading deletes depend on this pragma
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	caps, err := ensureSchema(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &SQLiteStore{db: db, caps: caps}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Capabilities reports which optional attendee columns this store can
// read and write.
func (s *SQLiteStore) Capabilities() Capabilities {
	return s.caps
}

// nowUTC returns the current time as an RFC 3339 UTC string, the
// format used for every stored timestamp.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// normalizeOptional maps absent or blank optional strings to nil so
// they are stored as NULL, never as empty strings.
func normalizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// placeholders returns n comma-separated "?" markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
