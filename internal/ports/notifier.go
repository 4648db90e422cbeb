package ports

import "github.com/xvierd/kicks-cli/internal/domain"

// GoalNotifier announces that a user reached the daily kick goal.
type GoalNotifier interface {
	NotifyGoalReached(user domain.UserIdentity, label string, count domain.KickCount) error
}
