// Package canvas implements the drawing surface on a grid of terminal cells.
//
// Coordinates are in surface units. One cell spans CellWidth x CellHeight
// units, which keeps circles round on a typical terminal font and makes a
// 20 unit line height exactly one row.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/kicks-cli/internal/ports"
)

const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

const (
	arcRune    = '█'
	borderRune = '▓'
)

type cell struct {
	r     rune
	color string
	bold  bool
}

// Canvas is a fixed-size cell grid.
type Canvas struct {
	cols, rows int
	cells      [][]cell
	style      ports.TextStyle
	stack      []ports.TextStyle
}

// Ensure Canvas implements ports.Surface.
var _ ports.Surface = (*Canvas)(nil)

// New creates a blank canvas of cols x rows cells.
func New(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &Canvas{cols: cols, rows: rows}
	c.cells = make([][]cell, rows)
	for y := range c.cells {
		c.cells[y] = make([]cell, cols)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Size returns the canvas size in surface units.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols) * CellWidth, float64(c.rows) * CellHeight
}

// Area returns the whole canvas as a chart area.
func (c *Canvas) Area() ports.ChartArea {
	w, h := c.Size()
	return ports.ChartArea{Width: w, Height: h}
}

// Save pushes the current text style.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.style)
}

// Restore pops the last saved text style. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.style = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth returns the number of unmatched Save calls.
func (c *Canvas) Depth() int { return len(c.stack) }

func (c *Canvas) TextStyle() ports.TextStyle { return c.style }

func (c *Canvas) SetTextStyle(style ports.TextStyle) { c.style = style }

// FillText writes text on the row containing y. Shadows have no cell
// equivalent and are not drawn.
func (c *Canvas) FillText(text string, x, y float64) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}

	var row int
	if c.style.MiddleAnchor {
		row = int(math.Floor(y / CellHeight))
	} else {
		// Baseline anchoring puts the glyphs on the row above y.
		row = int(math.Floor((y - 1) / CellHeight))
	}
	if row < 0 || row >= c.rows {
		return
	}

	col := int(math.Floor(x / CellWidth))
	if c.style.Align == ports.AlignCenter {
		col = int(math.Round(x/CellWidth)) - len(runes)/2
	}

	for i, r := range runes {
		cx := col + i
		if cx < 0 || cx >= c.cols {
			continue
		}
		c.cells[row][cx] = cell{r: r, color: c.style.Color, bold: c.style.Bold}
	}
}

// FillArc paints every cell whose center falls inside the annular sector
// between inner and outer radius, from start to end radians measured
// clockwise from 12 o'clock.
func (c *Canvas) FillArc(center ports.Point, inner, outer, start, end float64, style ports.ArcStyle) {
	if end <= start || outer <= 0 {
		return
	}
	full := end-start >= 2*math.Pi-1e-9

	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			px := (float64(col) + 0.5) * CellWidth
			py := (float64(row) + 0.5) * CellHeight
			dx, dy := px-center.X, py-center.Y
			dist := math.Hypot(dx, dy)
			if dist < inner || dist > outer {
				continue
			}
			if !full && !angleWithin(Angle(dx, dy), start, end) {
				continue
			}

			next := cell{r: arcRune, color: style.Fill}
			if style.BorderWidth > 0 && style.Border != "" && outer-dist < CellWidth/2 {
				next = cell{r: borderRune, color: style.Border}
			}
			c.cells[row][col] = next
		}
	}
}

// Angle converts an offset from the center into radians clockwise from
// 12 o'clock, in [0, 2π).
func Angle(dx, dy float64) float64 {
	a := math.Atan2(dx, -dy)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func angleWithin(a, start, end float64) bool {
	twoPi := 2 * math.Pi
	start = math.Mod(start, twoPi)
	if start < 0 {
		start += twoPi
	}
	span := end - start
	rel := a - start
	if rel < 0 {
		rel += twoPi
	}
	return rel < span
}

// String returns the canvas as plain text with trailing blanks trimmed.
func (c *Canvas) String() string {
	lines := make([]string, c.rows)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Render returns the canvas with colors applied, one lipgloss style per run
// of identically styled cells.
func (c *Canvas) Render() string {
	lines := make([]string, c.rows)
	for y, row := range c.cells {
		var b strings.Builder
		runStart := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].color == row[runStart].color && row[x].bold == row[runStart].bold {
				continue
			}
			b.WriteString(renderRun(row[runStart:x]))
			runStart = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func renderRun(run []cell) string {
	var b strings.Builder
	for _, cl := range run {
		b.WriteRune(cl.r)
	}
	first := run[0]
	if first.color == "" && !first.bold {
		return b.String()
	}
	style := lipgloss.NewStyle().Bold(first.bold)
	if first.color != "" && !strings.HasPrefix(first.color, "rgba") {
		style = style.Foreground(lipgloss.Color(first.color))
	}
	return style.Render(b.String())
}
