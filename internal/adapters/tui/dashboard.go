package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/kicks-cli/internal/ports"
	"github.com/xvierd/kicks-cli/internal/services"
)

// Dashboard runs the full-screen widget until the user quits or ctx ends.
type Dashboard struct {
	controller *services.FetchController
	identity   ports.IdentityProvider
	opts       Options
	inline     bool
}

// NewDashboard creates a dashboard fed by identity.
func NewDashboard(controller *services.FetchController, identity ports.IdentityProvider, opts Options, inline bool) *Dashboard {
	return &Dashboard{
		controller: controller,
		identity:   identity,
		opts:       opts,
		inline:     inline,
	}
}

// Run starts the interface and blocks until completion.
func (d *Dashboard) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, unsubscribe := d.identity.Subscribe()
	defer unsubscribe()

	model := NewModel(ctx, d.controller, ch, d.opts)

	var programOpts []tea.ProgramOption
	if !d.inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	programOpts = append(programOpts, tea.WithContext(ctx))

	program := tea.NewProgram(model, programOpts...)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
