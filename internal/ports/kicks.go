package ports

import (
	"context"

	"github.com/xvierd/kicks-cli/internal/domain"
)

// KickSource reads a user's kick total for today from the counting service.
// This is a driven port (implemented by adapters).
type KickSource interface {
	// DailyKicks returns today's total for the user. Failures wrap one of
	// domain.ErrRequestFailed, domain.ErrResponseMalformed or
	// domain.ErrNetworkFailure.
	DailyKicks(ctx context.Context, user domain.UserIdentity) (domain.KickCount, error)
}

// IdentityProvider publishes the current user identity. The identity may be
// unavailable at startup and become available (or change) later.
// This is a driven port (implemented by adapters).
type IdentityProvider interface {
	// Current returns the identity now, or nil if none is available.
	Current() *domain.UserIdentity

	// Subscribe returns a channel that first receives the current identity
	// and then every change. The returned func unsubscribes.
	Subscribe() (<-chan *domain.UserIdentity, func())
}
