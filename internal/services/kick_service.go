package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// KickService handles one-shot lookups and the local record of what was
// fetched.
type KickService struct {
	storage  ports.Storage
	source   ports.KickSource
	notifier ports.GoalNotifier
	timeout  time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewKickService creates a new kick service. notifier may be nil.
func NewKickService(storage ports.Storage, source ports.KickSource, notifier ports.GoalNotifier, timeout time.Duration, logger *log.Logger) *KickService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &KickService{
		storage:  storage,
		source:   source,
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// Ensure KickService implements ports.MCPKickProvider.
var _ ports.MCPKickProvider = (*KickService)(nil)

// NewController returns a fresh fetch controller bound to the service source.
func (s *KickService) NewController() *FetchController {
	return NewFetchController(s.source, s.timeout, s.logger)
}

// Lookup fetches today's count for user and records the outcome.
func (s *KickService) Lookup(ctx context.Context, user domain.UserIdentity) domain.FetchState {
	state := s.NewController().Fetch(ctx, user)
	if err := s.Record(ctx, state, ""); err != nil {
		s.logger.Warn("failed to record snapshot", "user", user, "err", err)
	}
	return state
}

// Record stores a settled state as a snapshot and marks the user as seen.
// Crossing the daily goal for the first time today triggers a notification.
func (s *KickService) Record(ctx context.Context, state domain.FetchState, label string) error {
	if state.Phase != domain.PhaseSettled || state.Identity.IsZero() {
		return nil
	}
	now := s.now()

	if err := s.storage.Users().Touch(ctx, state.Identity, label, now); err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}

	previous, err := s.storage.Snapshots().LatestForDay(ctx, state.Identity, domain.StartOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to load previous snapshot: %w", err)
	}

	snap := domain.NewKickSnapshot(state, now)
	if err := s.storage.Snapshots().Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if snap.Outcome == domain.OutcomeOK && snap.ReachedGoal() && (previous == nil || !previous.ReachedGoal()) {
		s.notifyGoal(ctx, state)
	}
	return nil
}

func (s *KickService) notifyGoal(ctx context.Context, state domain.FetchState) {
	if s.notifier == nil {
		return
	}
	label := ""
	if u, err := s.storage.Users().FindByID(ctx, state.Identity); err == nil {
		label = u.Label
	}
	if err := s.notifier.NotifyGoalReached(state.Identity, label, state.Count); err != nil {
		s.logger.Warn("goal notification failed", "user", state.Identity, "err", err)
	}
}

// History returns snapshots for user fetched since the given time.
func (s *KickService) History(ctx context.Context, user domain.UserIdentity, since time.Time) ([]*domain.KickSnapshot, error) {
	if user.IsZero() {
		return nil, domain.ErrIdentityUnavailable
	}
	return s.storage.Snapshots().FindByUser(ctx, user, since)
}

// KnownUsers returns the most recently seen users.
func (s *KickService) KnownUsers(ctx context.Context, limit int) ([]*domain.KnownUser, error) {
	return s.storage.Users().FindRecent(ctx, limit)
}

// SearchUsers fuzzy-matches known users by label or id.
func (s *KickService) SearchUsers(ctx context.Context, query string) ([]*domain.KnownUser, error) {
	return s.storage.Users().Search(ctx, query)
}

// AddUser registers a user without fetching.
func (s *KickService) AddUser(ctx context.Context, user domain.UserIdentity, label string) (*domain.KnownUser, error) {
	if err := s.storage.Users().Touch(ctx, user, label, s.now()); err != nil {
		return nil, err
	}
	return s.storage.Users().FindByID(ctx, user)
}

// LabelFor returns the stored label for user, or "" when unknown.
func (s *KickService) LabelFor(ctx context.Context, user domain.UserIdentity) string {
	u, err := s.storage.Users().FindByID(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug("label lookup failed", "user", user, "err", err)
		}
		return ""
	}
	return u.Label
}
