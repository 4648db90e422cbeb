// Package identity provides an observable holder for the current user
// identity.
package identity

import (
	"sync"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// Signal holds the current identity and fans changes out to subscribers.
// Each subscriber channel keeps only the most recent value.
type Signal struct {
	mu      sync.Mutex
	current *domain.UserIdentity
	subs    map[int]chan *domain.UserIdentity
	nextID  int
}

// Ensure Signal implements ports.IdentityProvider.
var _ ports.IdentityProvider = (*Signal)(nil)

// NewSignal creates a signal with an initial identity, which may be empty.
func NewSignal(initial domain.UserIdentity) *Signal {
	return &Signal{
		current: initial.Ptr(),
		subs:    make(map[int]chan *domain.UserIdentity),
	}
}

// Current returns the current identity or nil when none is available.
func (s *Signal) Current() *domain.UserIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIdentity(s.current)
}

// Set replaces the identity and notifies subscribers. Setting the same
// identity again is not a change and notifies no one.
func (s *Signal) Set(id *domain.UserIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if equal(s.current, id) {
		return
	}
	s.current = copyIdentity(id)
	for _, ch := range s.subs {
		publish(ch, copyIdentity(s.current))
	}
}

// Subscribe returns a channel that receives the current identity immediately
// and every later change. The returned function unsubscribes and closes it.
func (s *Signal) Subscribe() (<-chan *domain.UserIdentity, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan *domain.UserIdentity, 1)
	ch <- copyIdentity(s.current)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish replaces any undelivered value so the receiver sees the latest.
// Callers hold s.mu, so there is a single sender per channel.
func publish(ch chan *domain.UserIdentity, v *domain.UserIdentity) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

func equal(a, b *domain.UserIdentity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyIdentity(id *domain.UserIdentity) *domain.UserIdentity {
	if id == nil {
		return nil
	}
	return id.Ptr()
}
