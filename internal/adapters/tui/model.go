// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/kicks-cli/internal/config"
	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/services"
)

// identityMsg carries a value received from the identity subscription.
type identityMsg struct {
	id *domain.UserIdentity
}

// identityClosedMsg is sent once the identity subscription ends.
type identityClosedMsg struct{}

// fetchResultMsg wraps a finished fetch.
type fetchResultMsg struct {
	res services.FetchResult
}

// IdentitySetter publishes a new identity.
type IdentitySetter interface {
	Set(id *domain.UserIdentity)
}

// Options configures a Model.
type Options struct {
	Theme   *config.ThemeConfig
	Display config.DisplayConfig
	// Users are the known users that tab cycles through.
	Users []*domain.KnownUser
	// Switcher receives the identity chosen with tab. Nil disables switching.
	Switcher IdentitySetter
	// OnSettled is called with every settled state.
	OnSettled func(domain.FetchState)
}

// Model represents the TUI state.
type Model struct {
	ctx        context.Context
	controller *services.FetchController
	identities <-chan *domain.UserIdentity
	spinner    spinner.Model
	theme      config.ThemeConfig
	display    config.DisplayConfig
	users      []*domain.KnownUser
	switcher   IdentitySetter
	onSettled  func(domain.FetchState)
	width      int
	height     int
}

// NewModel creates a new TUI model reading identities from the given channel.
func NewModel(ctx context.Context, controller *services.FetchController, identities <-chan *domain.UserIdentity, opts Options) Model {
	theme := resolveTheme(opts.Theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorAchieved))

	return Model{
		ctx:        ctx,
		controller: controller,
		identities: identities,
		spinner:    sp,
		theme:      theme,
		display:    opts.Display,
		users:      opts.Users,
		switcher:   opts.Switcher,
		onSettled:  opts.OnSettled,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForIdentity(m.identities))
}

// waitForIdentity blocks on the next identity value.
func waitForIdentity(ch <-chan *domain.UserIdentity) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return identityClosedMsg{}
		}
		return identityMsg{id: id}
	}
}

// fetchCmd executes req off the event loop.
func fetchCmd(ctx context.Context, c *services.FetchController, req services.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		return fetchResultMsg{res: c.Execute(ctx, req)}
	}
}

// settledCmd hands a settled state to the callback off the event loop.
func settledCmd(fn func(domain.FetchState), state domain.FetchState) tea.Cmd {
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		fn(state)
		return nil
	}
}

// State returns the controller state shown by the model.
func (m Model) State() domain.FetchState {
	return m.controller.State()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if req, ok := m.controller.Refresh(); ok {
				return m, fetchCmd(m.ctx, m.controller, req)
			}
		case "tab":
			if next := m.nextUser(); next != nil && m.switcher != nil {
				m.switcher.Set(next.ID.Ptr())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case identityMsg:
		cmds := []tea.Cmd{waitForIdentity(m.identities)}
		if req, ok := m.controller.OnIdentityChange(msg.id); ok {
			cmds = append(cmds, fetchCmd(m.ctx, m.controller, req))
		}
		return m, tea.Batch(cmds...)

	case identityClosedMsg:
		return m, nil

	case fetchResultMsg:
		if m.controller.Apply(msg.res) {
			return m, settledCmd(m.onSettled, m.controller.State())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// nextUser returns the known user after the current one, wrapping around.
func (m Model) nextUser() *domain.KnownUser {
	if len(m.users) == 0 {
		return nil
	}
	current := m.controller.State().Identity
	for i, u := range m.users {
		if u.ID == current {
			next := m.users[(i+1)%len(m.users)]
			if next.ID == current {
				return nil
			}
			return next
		}
	}
	return m.users[0]
}

// userLabel returns the display name for the current identity.
func (m Model) userLabel(id domain.UserIdentity) string {
	for _, u := range m.users {
		if u.ID == id {
			return u.DisplayName()
		}
	}
	return id.String()
}

// View renders the TUI.
func (m Model) View() string {
	state := m.controller.State()
	v := composeWidget(state, m.display)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	title := fmt.Sprintf("%s Baby kicks", m.theme.IconApp)
	if !state.Identity.IsZero() {
		title += " · " + m.userLabel(state.Identity)
	}
	sections = append(sections, titleStyle.Render(title))

	if state.Phase == domain.PhaseIdle && state.Identity.IsZero() {
		sections = append(sections, helpStyle.Render("No user selected."))
		sections = append(sections, helpStyle.Render("Run kicks --user <id> or kicks config set-user <id>"))
	}

	loading := m.spinner.View() + " " + loadingText
	sections = append(sections, widgetSections(v, m.theme, m.display, m.width, loading, true)...)

	sections = append(sections, "")
	help := "[r]efresh  [q]uit"
	if m.switcher != nil && len(m.users) > 1 {
		help = "[r]efresh  tab:next user  [q]uit"
	}
	sections = append(sections, helpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
