// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	"modernc.org/sqlite"

	"github.com/xvierd/kicks-cli/internal/ports"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db           *sql.DB
	snapshotRepo ports.SnapshotRepository
	userRepo     ports.UserRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:           db,
		snapshotRepo: newSnapshotRepository(db),
		userRepo:     newUserRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Snapshots returns the snapshot repository.
func (s *sqliteStorage) Snapshots() ports.SnapshotRepository {
	return s.snapshotRepo
}

// Users returns the known-user repository.
func (s *sqliteStorage) Users() ports.UserRepository {
	return s.userRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS known_users (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL DEFAULT '',
		last_seen INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_known_users_seen ON known_users(last_seen);

	CREATE TABLE IF NOT EXISTS kick_snapshots (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		day TEXT NOT NULL,
		total_kicks INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		fetched_at INTEGER NOT NULL,
		FOREIGN KEY (user_id) REFERENCES known_users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_user_day ON kick_snapshots(user_id, day);
	CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON kick_snapshots(fetched_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	sqliteErr, ok := err.(*sqlite.Error)
	return ok && sqliteErr.Code() == 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
}
