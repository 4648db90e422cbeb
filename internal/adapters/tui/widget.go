package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/kicks-cli/internal/adapters/canvas"
	"github.com/xvierd/kicks-cli/internal/chart"
	"github.com/xvierd/kicks-cli/internal/config"
	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

const loadingText = "Loading..."

// widgetView is what the widget shows for a given fetch state.
type widgetView struct {
	Loading    bool
	ShowChart  bool
	Caption    string
	Message    domain.ActivityMessage
	Proportion domain.Proportion
}

// composeWidget derives the widget from state. A zero count only shows a
// chart in ring mode, and only once a fetch has settled.
func composeWidget(state domain.FetchState, display config.DisplayConfig) widgetView {
	show := state.Count > 0 || (display.ShowZeroRing() && state.HasSettled)
	v := widgetView{
		Loading:   state.Loading(),
		ShowChart: show,
	}
	if show {
		v.Caption = state.Count.Caption()
		v.Message = state.Message()
		v.Proportion = state.Proportion()
	}
	return v
}

// chartStyle maps theme colors onto the doughnut slices.
func chartStyle(theme config.ThemeConfig) chart.Style {
	style := chart.DefaultStyle()
	style.Achieved.Fill = theme.ColorAchieved
	style.Achieved.Border = theme.BorderAchieved
	style.Remaining.Fill = theme.ColorRemaining
	style.Remaining.Border = theme.BorderRemaining
	return style
}

func overlayStyle(theme config.ThemeConfig) ports.TextStyle {
	style := chart.DefaultTextStyle()
	style.Color = theme.ColorOverlay
	style.ShadowColor = theme.ColorShadow
	return style
}

// chartSize returns the ring size in cells, or false when the terminal is
// too narrow for it.
func chartSize(display config.DisplayConfig, width int) (int, int, bool) {
	cols, rows := display.ChartWidth, display.ChartHeight
	if cols <= 0 {
		cols = 40
	}
	if rows <= 0 {
		rows = 20
	}
	if display.Compact || (width > 0 && width < cols) {
		return 0, 0, false
	}
	return cols, rows, true
}

// renderRing paints the doughnut and its overlay on a fresh canvas.
func renderRing(v widgetView, theme config.ThemeConfig, cols, rows int, colored bool) string {
	c := canvas.New(cols, rows)
	overlay := chart.NewOverlay(v.Message)
	overlay.Style = overlayStyle(theme)
	chart.NewDoughnut(v.Proportion, chartStyle(theme)).
		WithOverlay(overlay).
		Draw(c, c.Area())
	if colored {
		return c.Render()
	}
	return c.String()
}

// renderBar is the compact rendition: a progress bar and the one-line message.
func renderBar(v widgetView, theme config.ThemeConfig, width int) string {
	bar := progress.New(progress.WithGradient(theme.GradientStart, theme.GradientEnd))
	bar.Width = 30
	if width > 0 && width-4 < bar.Width {
		bar.Width = max(10, width-4)
	}
	msgStyle := lipgloss.NewStyle().Bold(true)
	return lipgloss.JoinVertical(lipgloss.Center,
		bar.ViewAs(v.Proportion.Fraction()),
		msgStyle.Render(v.Message.OneLine()),
	)
}

// widgetSections renders the chart, caption and loading line.
func widgetSections(v widgetView, theme config.ThemeConfig, display config.DisplayConfig, width int, loading string, colored bool) []string {
	var sections []string
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorCaption))

	if v.ShowChart {
		if cols, rows, ok := chartSize(display, width); ok {
			sections = append(sections, renderRing(v, theme, cols, rows, colored))
		} else {
			sections = append(sections, renderBar(v, theme, width))
		}
		sections = append(sections, "")
		sections = append(sections, captionStyle.Render(v.Caption))
	}
	if v.Loading {
		sections = append(sections, loading)
	}
	return sections
}

// RenderWidget renders state once, without animation. It is used by the
// one-shot commands.
func RenderWidget(state domain.FetchState, theme *config.ThemeConfig, display config.DisplayConfig, width int, colored bool) string {
	resolved := resolveTheme(theme)
	v := composeWidget(state, display)
	sections := widgetSections(v, resolved, display, width, loadingText, colored)
	if len(sections) == 0 {
		return ""
	}
	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Center, sections...), "\n")
}
