package notification

import (
	"strings"
	"testing"

	"github.com/xvierd/kicks-cli/internal/config"
)

type sent struct {
	title, message string
	sound          bool
}

func newRecording(cfg *config.NotificationConfig) (*Notifier, *[]sent) {
	var out []sent
	n := New(cfg)
	n.send = func(title, message string, sound bool) error {
		out = append(out, sent{title, message, sound})
		return nil
	}
	return n, &out
}

func TestNotifier_Disabled(t *testing.T) {
	for _, cfg := range []*config.NotificationConfig{nil, {Enabled: false}} {
		n, out := newRecording(cfg)
		if err := n.NotifyGoalReached("42", "", 10); err != nil {
			t.Fatalf("NotifyGoalReached() error = %v", err)
		}
		if len(*out) != 0 {
			t.Errorf("disabled notifier sent %v", *out)
		}
		if n.IsEnabled() {
			t.Error("IsEnabled() should be false")
		}
	}
}

func TestNotifier_GoalReached(t *testing.T) {
	n, out := newRecording(&config.NotificationConfig{Enabled: true, Sound: true})
	if err := n.NotifyGoalReached("42", "", 11); err != nil {
		t.Fatalf("NotifyGoalReached() error = %v", err)
	}
	if len(*out) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*out))
	}
	got := (*out)[0]
	if !got.sound {
		t.Error("expected sound alert")
	}
	if !strings.Contains(got.message, "user 42") || !strings.Contains(got.message, "11 / 10 kicks today") {
		t.Errorf("message = %q", got.message)
	}
}

func TestNotifier_UsesLabel(t *testing.T) {
	n, out := newRecording(&config.NotificationConfig{Enabled: true})
	_ = n.NotifyGoalReached("42", "Mia", 10)
	if len(*out) != 1 || !strings.HasPrefix((*out)[0].message, "Mia:") {
		t.Errorf("sent %v", *out)
	}
}
