package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/xvierd/kicks-cli/internal/config"
	"github.com/xvierd/kicks-cli/internal/domain"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

// pickerItems adapts items to fuzzy.Source.
type pickerItems []PickerItem

func (p pickerItems) String(i int) string { return p[i].Label + " " + p[i].Desc }
func (p pickerItems) Len() int            { return len(p) }

type pickerModel struct {
	title   string
	items   []PickerItem
	footer  string
	filter  textinput.Model
	visible []int
	cursor  int
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
}

func newPickerModel(title string, items []PickerItem, footer string, theme config.ThemeConfig) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.CharLimit = 40
	ti.Width = 30
	ti.Focus()

	m := pickerModel{
		title:  title,
		items:  items,
		footer: footer,
		filter: ti,
		theme:  theme,
	}
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible items from the filter text.
func (m *pickerModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	m.visible = m.visible[:0]
	if query == "" {
		for i := range m.items {
			m.visible = append(m.visible, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, pickerItems(m.items)) {
			m.visible = append(m.visible, match.Index)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

// selected returns the index into items under the cursor, or -1.
func (m pickerModel) selected() int {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return -1
	}
	return m.visible[m.cursor]
}

func (m pickerModel) Init() tea.Cmd { return textinput.Blink }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.selected() < 0 {
				return m, nil
			}
			m.chosen = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAchieved)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n")
	b.WriteString("  " + m.filter.View() + "\n\n")

	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAchieved)).Bold(true)

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("    no matches") + "\n")
	}
	for i, idx := range m.visible {
		item := m.items[idx]
		if i == m.cursor {
			arrow := arrowStyle.Render("▸")
			line := activeStyle.Render(fmt.Sprintf(" %-12s %s", item.Label, item.Desc))
			b.WriteString(fmt.Sprintf("  %s%s\n", arrow, line))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %-12s %s", item.Label, item.Desc)) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · type to filter · enter select · esc back") + "\n")

	return b.String()
}

// RunPicker launches an interactive picker and returns the selected index.
func RunPicker(title string, items []PickerItem, footer string, theme *config.ThemeConfig) PickerResult {
	m := newPickerModel(title, items, footer, resolveTheme(theme))

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted || !final.chosen {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.selected()}
}

// UserItems converts known users into picker items.
func UserItems(users []*domain.KnownUser) []PickerItem {
	items := make([]PickerItem, len(users))
	for i, u := range users {
		desc := ""
		if u.Label != "" {
			desc = u.Label
		}
		if !u.LastSeen.IsZero() {
			desc = strings.TrimSpace(desc + "  seen " + u.LastSeen.Format("Jan 2 15:04"))
		}
		items[i] = PickerItem{Label: u.ID.String(), Desc: desc}
	}
	return items
}

// RunUserPicker asks which known user to show. It returns nil when aborted
// or when there are no users.
func RunUserPicker(users []*domain.KnownUser, theme *config.ThemeConfig) *domain.KnownUser {
	if len(users) == 0 {
		return nil
	}
	res := RunPicker("Whose kicks?", UserItems(users), "", theme)
	if res.Aborted || res.Index < 0 || res.Index >= len(users) {
		return nil
	}
	return users[res.Index]
}

// --- Styled text prompt ---

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title       string
	placeholder string
	input       textinput.Model
	aborted     bool
	theme       config.ThemeConfig
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + " ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  enter confirm · esc back") + "\n")

	return b.String()
}

// RunTextPrompt launches a styled text input prompt.
func RunTextPrompt(title string, placeholder string, theme *config.ThemeConfig) TextPromptResult {
	resolved := resolveTheme(theme)

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 20
	ti.Width = 20
	ti.Focus()

	m := textPromptModel{
		title:       title,
		placeholder: placeholder,
		input:       ti,
		theme:       resolved,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
