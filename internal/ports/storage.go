// Package ports defines the interfaces (driven and driving ports)
// for the kicks application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/kicks-cli/internal/domain"
)

// SnapshotRepository defines the interface for kick snapshot persistence.
// This is a driven port (implemented by adapters).
type SnapshotRepository interface {
	// Save persists a snapshot to storage.
	Save(ctx context.Context, snapshot *domain.KickSnapshot) error

	// FindByUser retrieves a user's snapshots fetched at or after since,
	// newest first.
	FindByUser(ctx context.Context, user domain.UserIdentity, since time.Time) ([]*domain.KickSnapshot, error)

	// LatestForDay returns the most recent successful snapshot for a user on
	// the given day, or nil when there is none.
	LatestForDay(ctx context.Context, user domain.UserIdentity, day time.Time) (*domain.KickSnapshot, error)
}

// UserRepository defines the interface for known-user persistence.
// This is a driven port (implemented by adapters).
type UserRepository interface {
	// Touch records that a user was viewed, creating it if needed.
	// An empty label keeps the existing one.
	Touch(ctx context.Context, user domain.UserIdentity, label string, seen time.Time) error

	// FindByID retrieves a known user.
	FindByID(ctx context.Context, user domain.UserIdentity) (*domain.KnownUser, error)

	// FindRecent returns known users ordered by last view, newest first.
	FindRecent(ctx context.Context, limit int) ([]*domain.KnownUser, error)

	// Search does a fuzzy match over user labels and ids.
	Search(ctx context.Context, query string) ([]*domain.KnownUser, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Snapshots provides access to snapshot operations.
	Snapshots() SnapshotRepository

	// Users provides access to known-user operations.
	Users() UserRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
