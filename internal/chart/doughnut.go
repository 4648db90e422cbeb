package chart

import (
	"math"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// DefaultCutout is the hole size as a fraction of the outer radius.
const DefaultCutout = 0.7

// Style holds slice colors and the cutout.
type Style struct {
	Achieved  ports.ArcStyle
	Remaining ports.ArcStyle
	Cutout    float64
}

// DefaultStyle returns the blue-on-grey progress ring.
func DefaultStyle() Style {
	return Style{
		Achieved:  ports.ArcStyle{Fill: "#3498db", Border: "#2980b9", BorderWidth: 1},
		Remaining: ports.ArcStyle{Fill: "#ecf0f1", Border: "#bdc3c7", BorderWidth: 1},
		Cutout:    DefaultCutout,
	}
}

// Slice is one dataset value with its style.
type Slice struct {
	Value float64
	Style ports.ArcStyle
}

// Span is the angular extent of a slice, in radians clockwise from
// 12 o'clock.
type Span struct {
	Start, End float64
	Style      ports.ArcStyle
}

// Doughnut is a two-slice progress ring.
type Doughnut struct {
	Slices  []Slice
	Cutout  float64
	Overlay *Overlay
}

// NewDoughnut builds the achieved/remaining ring for p. Calling it performs
// the one-time component setup.
func NewDoughnut(p domain.Proportion, style Style) *Doughnut {
	Setup()
	cutout := style.Cutout
	if cutout <= 0 || cutout >= 1 {
		cutout = DefaultCutout
	}
	return &Doughnut{
		Slices: []Slice{
			{Value: float64(p.Achieved), Style: style.Achieved},
			{Value: float64(p.Remaining), Style: style.Remaining},
		},
		Cutout: cutout,
	}
}

// WithOverlay attaches center text drawn after the arcs.
func (d *Doughnut) WithOverlay(o Overlay) *Doughnut {
	d.Overlay = &o
	return d
}

// Spans lays the slices out around the circle. Empty slices are skipped.
// When every slice is empty the whole ring uses the last slice's style.
func (d *Doughnut) Spans() []Span {
	total := 0.0
	for _, s := range d.Slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		if len(d.Slices) == 0 {
			return nil
		}
		return []Span{{Start: 0, End: 2 * math.Pi, Style: d.Slices[len(d.Slices)-1].Style}}
	}

	spans := make([]Span, 0, len(d.Slices))
	angle := 0.0
	for _, s := range d.Slices {
		if s.Value <= 0 {
			continue
		}
		sweep := 2 * math.Pi * s.Value / total
		spans = append(spans, Span{Start: angle, End: angle + sweep, Style: s.Style})
		angle += sweep
	}
	return spans
}

// Radii returns the inner and outer radius for area.
func (d *Doughnut) Radii(area ports.ChartArea) (inner, outer float64) {
	outer = math.Min(area.Width, area.Height) / 2
	return outer * d.Cutout, outer
}

// Draw paints the arcs, then runs every registered plugin.
func (d *Doughnut) Draw(s ports.Surface, area ports.ChartArea) {
	center := area.Center()
	inner, outer := d.Radii(area)
	if el := element(ElementArc); el != nil {
		for _, span := range d.Spans() {
			el.DrawSpan(s, center, inner, outer, span)
		}
	}
	for _, p := range plugins() {
		p.AfterDraw(s, d, area)
	}
}
