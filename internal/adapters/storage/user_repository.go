package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// userRepository implements ports.UserRepository using SQLite.
type userRepository struct {
	db *sql.DB
}

// newUserRepository creates a new known-user repository.
func newUserRepository(db *sql.DB) ports.UserRepository {
	return &userRepository{db: db}
}

// Touch records that user was seen. An empty label keeps the stored one.
func (r *userRepository) Touch(ctx context.Context, user domain.UserIdentity, label string, seen time.Time) error {
	if user.IsZero() {
		return domain.ErrIdentityUnavailable
	}

	query := `
		INSERT INTO known_users (id, label, last_seen)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = CASE WHEN excluded.label != '' THEN excluded.label ELSE known_users.label END,
			last_seen = MAX(known_users.last_seen, excluded.last_seen)
	`

	if _, err := r.db.ExecContext(ctx, query, user.String(), label, seen.UnixMilli()); err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}
	return nil
}

// FindByID retrieves a known user.
func (r *userRepository) FindByID(ctx context.Context, user domain.UserIdentity) (*domain.KnownUser, error) {
	query := `SELECT id, label, last_seen FROM known_users WHERE id = ?`

	var (
		u        domain.KnownUser
		id       string
		lastSeen int64
	)
	err := r.db.QueryRowContext(ctx, query, user.String()).Scan(&id, &u.Label, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u.ID = domain.UserIdentity(id)
	u.LastSeen = time.UnixMilli(lastSeen)
	return &u, nil
}

// FindRecent returns users ordered by most recently seen. A limit <= 0
// returns all of them.
func (r *userRepository) FindRecent(ctx context.Context, limit int) ([]*domain.KnownUser, error) {
	query := `SELECT id, label, last_seen FROM known_users ORDER BY last_seen DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.KnownUser
	for rows.Next() {
		var (
			u        domain.KnownUser
			id       string
			lastSeen int64
		)
		if err := rows.Scan(&id, &u.Label, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.ID = domain.UserIdentity(id)
		u.LastSeen = time.UnixMilli(lastSeen)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// Search does a fuzzy search over user labels and ids.
func (r *userRepository) Search(ctx context.Context, query string) ([]*domain.KnownUser, error) {
	users, err := r.FindRecent(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for fuzzy search: %w", err)
	}
	if query == "" {
		return users, nil
	}

	matches := fuzzy.FindFrom(query, knownUserSource(users))

	var result []*domain.KnownUser
	for _, match := range matches {
		result = append(result, users[match.Index])
	}
	return result, nil
}

// knownUserSource adapts users to fuzzy.Source, matching on "label id".
type knownUserSource []*domain.KnownUser

func (s knownUserSource) String(i int) string {
	if s[i].Label == "" {
		return s[i].ID.String()
	}
	return s[i].Label + " " + s[i].ID.String()
}

func (s knownUserSource) Len() int { return len(s) }
