package ports

import (
	"context"
	"time"

	"github.com/xvierd/kicks-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPKickProvider provides kick information to the MCP server.
// This is a driven port (implemented by services layer).
type MCPKickProvider interface {
	// Lookup fetches and settles today's count for a user.
	Lookup(ctx context.Context, user domain.UserIdentity) domain.FetchState

	// History returns a user's snapshots since the given time.
	History(ctx context.Context, user domain.UserIdentity, since time.Time) ([]*domain.KickSnapshot, error)

	// KnownUsers returns recently viewed users.
	KnownUsers(ctx context.Context, limit int) ([]*domain.KnownUser, error)
}
