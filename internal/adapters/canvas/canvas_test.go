package canvas

import (
	"math"
	"strings"
	"testing"

	"github.com/xvierd/kicks-cli/internal/ports"
)

func TestCanvas_Size(t *testing.T) {
	c := New(40, 20)
	w, h := c.Size()
	if w != 400 || h != 400 {
		t.Errorf("Size() = %v x %v, want 400 x 400", w, h)
	}
	if c.Cols() != 40 || c.Rows() != 20 {
		t.Errorf("cells = %d x %d", c.Cols(), c.Rows())
	}
}

func TestCanvas_SaveRestore(t *testing.T) {
	c := New(10, 5)
	base := ports.TextStyle{Color: "#000000"}
	c.SetTextStyle(base)

	c.Save()
	c.SetTextStyle(ports.TextStyle{Color: "#ffffff", Bold: true})
	if c.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", c.Depth())
	}
	c.Restore()

	if c.TextStyle() != base {
		t.Errorf("style leaked: %+v", c.TextStyle())
	}
	if c.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", c.Depth())
	}

	// Unbalanced restore is ignored.
	c.Restore()
	if c.TextStyle() != base {
		t.Errorf("unbalanced Restore changed style: %+v", c.TextStyle())
	}
}

func TestCanvas_FillTextCentered(t *testing.T) {
	c := New(20, 3)
	c.SetTextStyle(ports.TextStyle{Align: ports.AlignCenter, MiddleAnchor: true})
	// Row 1 spans y in [20, 40).
	c.FillText("abcd", 100, 30)

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "" || lines[2] != "" {
		t.Errorf("text leaked to other rows: %q", c.String())
	}
	want := strings.Repeat(" ", 8) + "abcd"
	if lines[1] != want {
		t.Errorf("row 1 = %q, want %q", lines[1], want)
	}
}

func TestCanvas_FillTextClipped(t *testing.T) {
	c := New(4, 1)
	c.FillText("hello", 0, 10)
	c.FillText("x", 0, 500)
	if got := c.String(); got != "hell" {
		t.Errorf("String() = %q, want %q", got, "hell")
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   float64
	}{
		{"up", 0, -1, 0},
		{"right", 1, 0, math.Pi / 2},
		{"down", 0, 1, math.Pi},
		{"left", -1, 0, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Angle(tt.dx, tt.dy); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Angle(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestCanvas_FillArcHalf(t *testing.T) {
	c := New(20, 10)
	w, h := c.Size()
	center := ports.Point{X: w / 2, Y: h / 2}

	// Right half: 12 o'clock to 6 o'clock clockwise.
	c.FillArc(center, 0, 100, 0, math.Pi, ports.ArcStyle{Fill: "#3498db"})

	left, right := 0, 0
	for _, line := range strings.Split(c.String(), "\n") {
		runes := []rune(line)
		for x, r := range runes {
			if r != arcRune {
				continue
			}
			if x < 10 {
				left++
			} else {
				right++
			}
		}
	}
	if right == 0 {
		t.Fatal("expected cells on the right half")
	}
	if left != 0 {
		t.Errorf("expected no cells on the left half, got %d", left)
	}
}

func TestCanvas_FillArcRespectsCutout(t *testing.T) {
	c := New(40, 20)
	w, h := c.Size()
	center := ports.Point{X: w / 2, Y: h / 2}
	c.FillArc(center, 140, 200, 0, 2*math.Pi, ports.ArcStyle{Fill: "#ecf0f1"})

	lines := strings.Split(c.String(), "\n")
	// Center cell is inside the hole.
	mid := []rune(lines[10])
	if len(mid) > 20 && mid[20] != ' ' {
		t.Errorf("center cell painted: %q", string(mid[20]))
	}
	if !strings.ContainsRune(c.String(), arcRune) {
		t.Error("ring not painted")
	}
}

func TestCanvas_FillArcEmptySpan(t *testing.T) {
	c := New(10, 5)
	c.FillArc(ports.Point{X: 50, Y: 50}, 0, 100, 1, 1, ports.ArcStyle{Fill: "#fff"})
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("empty span painted cells: %q", c.String())
	}
}

func TestCanvas_RenderKeepsText(t *testing.T) {
	c := New(10, 1)
	c.SetTextStyle(ports.TextStyle{Color: "#ffffff", Bold: true})
	c.FillText("hi", 0, 19)
	if !strings.Contains(c.Render(), "hi") {
		t.Errorf("Render() lost text: %q", c.Render())
	}
}
