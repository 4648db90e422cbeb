// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/kicks-cli/internal/config"
	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string, sound bool) error
}

// Ensure Notifier implements ports.GoalNotifier.
var _ ports.GoalNotifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, send: desktop}
}

func desktop(title, message string, sound bool) error {
	if sound {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.send(title, message, n.cfg.Sound)
}

// NotifyGoalReached displays a notification when the daily goal is met.
func (n *Notifier) NotifyGoalReached(user domain.UserIdentity, label string, count domain.KickCount) error {
	who := label
	if who == "" {
		who = "user " + user.String()
	}
	title := "👶 Daily kick goal reached!"
	message := fmt.Sprintf("%s: %s. %s", who, count.Caption(), domain.Classify(count).OneLine())
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
