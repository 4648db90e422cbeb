package ports

// Point is a position on a drawing surface, in surface units.
type Point struct {
	X float64
	Y float64
}

// ChartArea is the region a chart is laid out in.
type ChartArea struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the middle of the area.
func (a ChartArea) Center() Point {
	return Point{X: a.Left + a.Width/2, Y: a.Top + a.Height/2}
}

// TextAlign is the horizontal anchor of drawn text.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
)

// TextStyle groups the text drawing parameters of a surface.
type TextStyle struct {
	Bold         bool
	Size         float64
	Family       string
	Color        string
	ShadowColor  string
	ShadowBlur   float64
	Align        TextAlign
	MiddleAnchor bool
}

// ArcStyle describes how a ring segment is filled.
type ArcStyle struct {
	Fill        string
	Border      string
	BorderWidth float64
}

// Surface is a 2D drawing context. Style state set between Save and the
// matching Restore must not leak to later draws.
// This is a driven port (implemented by adapters).
type Surface interface {
	// Save pushes the current style state.
	Save()

	// Restore pops the style state pushed by the last Save.
	Restore()

	// TextStyle returns the active text style.
	TextStyle() TextStyle

	// SetTextStyle replaces the active text style.
	SetTextStyle(style TextStyle)

	// FillText draws a single line of text anchored at (x, y) according to
	// the active text style.
	FillText(text string, x, y float64)

	// FillArc fills the ring segment between the inner and outer radius,
	// from start to end radians measured clockwise from 12 o'clock.
	FillArc(center Point, inner, outer, start, end float64, style ArcStyle)

	// Size returns the drawable width and height.
	Size() (width, height float64)
}
