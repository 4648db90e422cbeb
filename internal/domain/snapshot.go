package domain

import (
	"time"
)

// KickSnapshot records one settled fetch for a user.
type KickSnapshot struct {
	ID         string
	User       UserIdentity
	Day        time.Time
	TotalKicks KickCount
	Outcome    Outcome
	Error      string
	FetchedAt  time.Time
}

// NewKickSnapshot captures a settled state. The day is the local calendar
// day of the fetch.
func NewKickSnapshot(state FetchState, now time.Time) *KickSnapshot {
	snap := &KickSnapshot{
		ID:         generateID(),
		User:       state.Identity,
		Day:        StartOfDay(now),
		TotalKicks: state.Count,
		Outcome:    state.Outcome(),
		FetchedAt:  now,
	}
	if state.Err != nil {
		snap.Error = state.Err.Error()
	}
	return snap
}

// ReachedGoal reports whether the snapshot's count meets the daily goal.
func (s *KickSnapshot) ReachedGoal() bool {
	return s.TotalKicks >= DailyGoal
}

// KnownUser is an identity that has been viewed before.
type KnownUser struct {
	ID       UserIdentity
	Label    string
	LastSeen time.Time
}

// DisplayName returns the label if set, otherwise the id.
func (u *KnownUser) DisplayName() string {
	if u.Label != "" {
		return u.Label
	}
	return u.ID.String()
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
