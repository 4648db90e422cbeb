package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/kicks-cli/internal/adapters/storage"
	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

type goalCall struct {
	user  domain.UserIdentity
	label string
	count domain.KickCount
}

type recordingNotifier struct {
	calls []goalCall
}

func (n *recordingNotifier) NotifyGoalReached(user domain.UserIdentity, label string, count domain.KickCount) error {
	n.calls = append(n.calls, goalCall{user, label, count})
	return nil
}

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestService(t *testing.T, src *fakeSource) (*KickService, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	svc := NewKickService(setupTestStorage(t), src, n, time.Second, nil)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	return svc, n
}

func TestKickService_LookupRecords(t *testing.T) {
	src := &fakeSource{responses: map[domain.UserIdentity]response{"42": {count: 6}}}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	st := svc.Lookup(ctx, "42")
	assert.Equal(t, domain.KickCount(6), st.Count)

	snaps, err := svc.History(ctx, "42", time.Time{})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, domain.KickCount(6), snaps[0].TotalKicks)
	assert.Equal(t, domain.OutcomeOK, snaps[0].Outcome)

	users, err := svc.KnownUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.UserIdentity("42"), users[0].ID)
}

func TestKickService_LookupRecordsFailure(t *testing.T) {
	src := &fakeSource{responses: map[domain.UserIdentity]response{"42": {err: &domain.StatusError{StatusCode: 500}}}}
	svc, n := newTestService(t, src)
	ctx := context.Background()

	st := svc.Lookup(ctx, "42")
	assert.Equal(t, domain.KickCount(0), st.Count)

	snaps, err := svc.History(ctx, "42", time.Time{})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, domain.OutcomeRequestFailed, snaps[0].Outcome)
	assert.NotEmpty(t, snaps[0].Error)
	assert.Empty(t, n.calls)
}

func TestKickService_GoalNotifiedOncePerDay(t *testing.T) {
	src := &fakeSource{responses: map[domain.UserIdentity]response{"42": {count: 8}}}
	svc, n := newTestService(t, src)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "42", "Mia")
	require.NoError(t, err)

	svc.Lookup(ctx, "42")
	assert.Empty(t, n.calls, "below goal")

	src.mu.Lock()
	src.responses["42"] = response{count: 10}
	src.mu.Unlock()
	svc.Lookup(ctx, "42")
	require.Len(t, n.calls, 1)
	assert.Equal(t, goalCall{user: "42", label: "Mia", count: 10}, n.calls[0])

	src.mu.Lock()
	src.responses["42"] = response{count: 11}
	src.mu.Unlock()
	svc.Lookup(ctx, "42")
	assert.Len(t, n.calls, 1, "goal already reached today")
}

func TestKickService_RecordIgnoresUnsettled(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{})
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, domain.FetchState{Phase: domain.PhaseLoading, Identity: "42"}, ""))
	require.NoError(t, svc.Record(ctx, domain.FetchState{Phase: domain.PhaseSettled}, ""))

	users, err := svc.KnownUsers(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestKickService_SearchAndLabel(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{})
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "1", "alice")
	require.NoError(t, err)
	_, err = svc.AddUser(ctx, "2", "bob")
	require.NoError(t, err)

	found, err := svc.SearchUsers(ctx, "bo")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.UserIdentity("2"), found[0].ID)

	assert.Equal(t, "alice", svc.LabelFor(ctx, "1"))
	assert.Equal(t, "", svc.LabelFor(ctx, "404"))
}

func TestKickService_HistoryRequiresIdentity(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{})
	_, err := svc.History(context.Background(), "", time.Time{})
	assert.ErrorIs(t, err, domain.ErrIdentityUnavailable)
}
