package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

func newTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func snapshotAt(user domain.UserIdentity, count domain.KickCount, err error, at time.Time) *domain.KickSnapshot {
	state := domain.FetchState{
		Phase:      domain.PhaseSettled,
		Identity:   user,
		Count:      count,
		HasSettled: true,
		Err:        err,
	}
	return domain.NewKickSnapshot(state, at)
}

func TestNewMemory(t *testing.T) {
	storage := newTestStorage(t)
	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
	if err := storage.Migrate(); err != nil {
		t.Errorf("Migrate() should be idempotent, got %v", err)
	}
}

func TestUserRepository_Touch(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Users()
	now := time.Now()

	t.Run("insert", func(t *testing.T) {
		if err := repo.Touch(ctx, "42", "mine", now); err != nil {
			t.Fatalf("Touch() error = %v", err)
		}
		u, err := repo.FindByID(ctx, "42")
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if u.Label != "mine" {
			t.Errorf("label = %q, want mine", u.Label)
		}
	})

	t.Run("empty label keeps existing", func(t *testing.T) {
		if err := repo.Touch(ctx, "42", "", now.Add(time.Minute)); err != nil {
			t.Fatalf("Touch() error = %v", err)
		}
		u, _ := repo.FindByID(ctx, "42")
		if u.Label != "mine" {
			t.Errorf("label = %q, want mine", u.Label)
		}
		if u.LastSeen.UnixMilli() != now.Add(time.Minute).UnixMilli() {
			t.Errorf("last seen not updated: %v", u.LastSeen)
		}
	})

	t.Run("empty identity", func(t *testing.T) {
		if err := repo.Touch(ctx, "", "x", now); !errors.Is(err, domain.ErrIdentityUnavailable) {
			t.Errorf("Touch() error = %v, want ErrIdentityUnavailable", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, "999"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("FindByID() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestUserRepository_FindRecentAndSearch(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Users()
	base := time.Now()

	_ = repo.Touch(ctx, "1", "alice", base)
	_ = repo.Touch(ctx, "2", "bob", base.Add(time.Minute))
	_ = repo.Touch(ctx, "3", "", base.Add(2*time.Minute))

	recent, err := repo.FindRecent(ctx, 2)
	if err != nil {
		t.Fatalf("FindRecent() error = %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "3" || recent[1].ID != "2" {
		t.Errorf("FindRecent() = %v", recent)
	}

	found, err := repo.Search(ctx, "alc")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 1 || found[0].ID != "1" {
		t.Errorf("Search(alc) = %v", found)
	}

	all, _ := repo.Search(ctx, "")
	if len(all) != 3 {
		t.Errorf("Search(\"\") returned %d users, want 3", len(all))
	}
}

func TestSnapshotRepository_SaveAndFind(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)

	if err := storage.Users().Touch(ctx, "42", "", now); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}

	repo := storage.Snapshots()
	old := snapshotAt("42", 3, nil, now.Add(-48*time.Hour))
	failed := snapshotAt("42", 0, domain.ErrNetworkFailure, now.Add(-time.Minute))
	latest := snapshotAt("42", 6, nil, now.Add(-2*time.Minute))

	for _, s := range []*domain.KickSnapshot{old, failed, latest} {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	t.Run("duplicate id", func(t *testing.T) {
		if err := repo.Save(ctx, latest); err == nil {
			t.Error("Save() should reject duplicate id")
		}
	})

	t.Run("find since", func(t *testing.T) {
		snaps, err := repo.FindByUser(ctx, "42", now.Add(-time.Hour))
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		if len(snaps) != 2 {
			t.Fatalf("FindByUser() returned %d, want 2", len(snaps))
		}
		if snaps[0].ID != failed.ID {
			t.Errorf("expected newest first, got %s", snaps[0].ID)
		}
		if snaps[0].Outcome != domain.OutcomeNetworkFailure || snaps[0].Error == "" {
			t.Errorf("failure not persisted: %+v", snaps[0])
		}
	})

	t.Run("latest successful for day", func(t *testing.T) {
		snap, err := repo.LatestForDay(ctx, "42", domain.StartOfDay(now))
		if err != nil {
			t.Fatalf("LatestForDay() error = %v", err)
		}
		if snap == nil || snap.ID != latest.ID {
			t.Fatalf("LatestForDay() = %+v, want %s", snap, latest.ID)
		}
		if snap.TotalKicks != 6 {
			t.Errorf("TotalKicks = %d, want 6", snap.TotalKicks)
		}
	})

	t.Run("no snapshot", func(t *testing.T) {
		snap, err := repo.LatestForDay(ctx, "7", domain.StartOfDay(now))
		if err != nil || snap != nil {
			t.Errorf("LatestForDay() = %v, %v; want nil, nil", snap, err)
		}
	})
}

func TestSnapshotRepository_RequiresKnownUser(t *testing.T) {
	storage := newTestStorage(t)
	err := storage.Snapshots().Save(context.Background(), snapshotAt("404", 1, nil, time.Now()))
	if err == nil {
		t.Error("Save() should fail for an unknown user")
	}
}
