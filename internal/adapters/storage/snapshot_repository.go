package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

const dayLayout = "2006-01-02"

// snapshotRepository implements ports.SnapshotRepository using SQLite.
type snapshotRepository struct {
	db *sql.DB
}

// newSnapshotRepository creates a new snapshot repository.
func newSnapshotRepository(db *sql.DB) ports.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save persists a snapshot. The user row must already exist.
func (r *snapshotRepository) Save(ctx context.Context, snap *domain.KickSnapshot) error {
	query := `
		INSERT INTO kick_snapshots (id, user_id, day, total_kicks, outcome, error, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		snap.ID,
		snap.User.String(),
		snap.Day.Format(dayLayout),
		int(snap.TotalKicks),
		string(snap.Outcome),
		nullableString(snap.Error),
		snap.FetchedAt.UnixMilli(),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("snapshot %s already exists", snap.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// FindByUser returns snapshots fetched at or after since, newest first.
func (r *snapshotRepository) FindByUser(ctx context.Context, user domain.UserIdentity, since time.Time) ([]*domain.KickSnapshot, error) {
	query := `
		SELECT id, user_id, day, total_kicks, outcome, error, fetched_at
		FROM kick_snapshots
		WHERE user_id = ? AND fetched_at >= ?
		ORDER BY fetched_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, user.String(), since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	return r.scanSnapshots(rows)
}

// LatestForDay returns the newest successful snapshot for the user on day,
// or nil when there is none.
func (r *snapshotRepository) LatestForDay(ctx context.Context, user domain.UserIdentity, day time.Time) (*domain.KickSnapshot, error) {
	query := `
		SELECT id, user_id, day, total_kicks, outcome, error, fetched_at
		FROM kick_snapshots
		WHERE user_id = ? AND day = ? AND outcome = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	rows, err := r.db.QueryContext(ctx, query,
		user.String(), day.Format(dayLayout), string(domain.OutcomeOK))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	defer rows.Close()

	snaps, err := r.scanSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return snaps[0], nil
}

// scanSnapshots converts rows to domain snapshots.
func (r *snapshotRepository) scanSnapshots(rows *sql.Rows) ([]*domain.KickSnapshot, error) {
	var snaps []*domain.KickSnapshot

	for rows.Next() {
		var (
			snap      domain.KickSnapshot
			user      string
			day       string
			total     int
			outcome   string
			errText   sql.NullString
			fetchedAt int64
		)
		if err := rows.Scan(&snap.ID, &user, &day, &total, &outcome, &errText, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		snap.User = domain.UserIdentity(user)
		snap.TotalKicks = domain.KickCount(total)
		snap.Outcome = domain.Outcome(outcome)
		snap.FetchedAt = time.UnixMilli(fetchedAt)
		if errText.Valid {
			snap.Error = errText.String
		}
		parsed, err := time.ParseInLocation(dayLayout, day, time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot day %q: %w", day, err)
		}
		snap.Day = parsed

		snaps = append(snaps, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snaps, nil
}

// nullableString returns a *string, or nil if empty.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
