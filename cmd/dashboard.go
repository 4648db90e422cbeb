package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/adapters/identity"
	"github.com/xvierd/kicks-cli/internal/adapters/tui"
	"github.com/xvierd/kicks-cli/internal/domain"
)

// knownUserLimit bounds the users offered by the picker and tab cycling.
const knownUserLimit = 20

// runDashboard opens the live widget for the selected user.
func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	users, err := app.kicks.KnownUsers(ctx, knownUserLimit)
	if err != nil {
		app.logger.Warn("failed to load known users", "err", err)
	}

	id, err := resolveIdentity()
	if errors.Is(err, domain.ErrIdentityUnavailable) && term.IsTerminal(os.Stdin.Fd()) {
		id, err = promptIdentity(ctx, users)
	}
	if err != nil && !errors.Is(err, domain.ErrIdentityUnavailable) {
		return err
	}

	current := identity.NewSignal(id)
	controller := app.kicks.NewController()

	opts := tui.Options{
		Theme:    &app.config.Theme,
		Display:  app.config.Display,
		Users:    users,
		Switcher: current,
		OnSettled: func(state domain.FetchState) {
			label := ""
			if state.Identity.String() == app.config.User.ID {
				label = app.config.User.Label
			}
			if err := app.kicks.Record(ctx, state, label); err != nil {
				app.logger.Warn("failed to record snapshot", "user", state.Identity, "err", err)
			}
		},
	}

	return tui.NewDashboard(controller, current, opts, inlineMode).Run(ctx)
}

// promptIdentity asks for a user interactively: a picker over known users
// when there are any, otherwise a free-text id prompt.
func promptIdentity(ctx context.Context, users []*domain.KnownUser) (domain.UserIdentity, error) {
	if len(users) > 0 {
		if u := tui.RunUserPicker(users, &app.config.Theme); u != nil {
			return u.ID, nil
		}
		return "", domain.ErrIdentityUnavailable
	}

	res := tui.RunTextPrompt("User id:", "e.g. 12345", &app.config.Theme)
	if res.Aborted {
		return "", domain.ErrIdentityUnavailable
	}
	id, err := domain.ParseUserIdentity(res.Value)
	if err != nil {
		return "", fmt.Errorf("user %q: %w", res.Value, err)
	}
	if _, err := app.kicks.AddUser(ctx, id, ""); err != nil {
		app.logger.Warn("failed to remember user", "user", id, "err", err)
	}
	return id, nil
}
