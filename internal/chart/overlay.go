package chart

import (
	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// DefaultLineHeight is the vertical distance between overlay lines.
const DefaultLineHeight = 20.0

// DefaultTextStyle is bold 14 unit white text with a soft shadow.
func DefaultTextStyle() ports.TextStyle {
	return ports.TextStyle{
		Bold:         true,
		Size:         14,
		Family:       "Arial",
		Color:        "#ffffff",
		ShadowColor:  "rgba(0, 0, 0, 0.5)",
		ShadowBlur:   4,
		Align:        ports.AlignCenter,
		MiddleAnchor: true,
	}
}

// Overlay is multi-line text centered in a chart area.
type Overlay struct {
	Message    domain.ActivityMessage
	Style      ports.TextStyle
	LineHeight float64
}

// NewOverlay returns an overlay for msg with the default style.
func NewOverlay(msg domain.ActivityMessage) Overlay {
	return Overlay{
		Message:    msg,
		Style:      DefaultTextStyle(),
		LineHeight: DefaultLineHeight,
	}
}

// Draw writes each line of the message. The surface's text style is restored
// before returning.
func (o Overlay) Draw(s ports.Surface, area ports.ChartArea) {
	lines := o.Message.Lines()
	if len(lines) == 0 {
		return
	}
	lh := o.LineHeight
	if lh <= 0 {
		lh = DefaultLineHeight
	}

	s.Save()
	defer s.Restore()

	s.SetTextStyle(o.Style)
	for i, p := range LinePositions(o.Message, area, lh) {
		s.FillText(lines[i], p.X, p.Y)
	}
}

// LinePositions returns the anchor of each line: horizontally centered and
// spread lineHeight apart around the vertical center.
func LinePositions(msg domain.ActivityMessage, area ports.ChartArea, lineHeight float64) []ports.Point {
	lines := msg.Lines()
	if len(lines) == 0 {
		return nil
	}
	center := area.Center()
	mid := float64(len(lines)-1) / 2
	out := make([]ports.Point, len(lines))
	for i := range lines {
		out[i] = ports.Point{
			X: center.X,
			Y: center.Y + (float64(i)-mid)*lineHeight,
		}
	}
	return out
}
