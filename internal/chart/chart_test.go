package chart

import (
	"math"
	"sync"
	"testing"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

type call struct {
	op    string
	text  string
	x, y  float64
	style ports.TextStyle
	arc   Span
}

// recorder is a ports.Surface that logs every call.
type recorder struct {
	calls []call
	style ports.TextStyle
	stack []ports.TextStyle
}

func (r *recorder) Save() {
	r.stack = append(r.stack, r.style)
	r.calls = append(r.calls, call{op: "save"})
}

func (r *recorder) Restore() {
	r.style = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.calls = append(r.calls, call{op: "restore"})
}

func (r *recorder) TextStyle() ports.TextStyle { return r.style }

func (r *recorder) SetTextStyle(s ports.TextStyle) {
	r.style = s
	r.calls = append(r.calls, call{op: "style", style: s})
}

func (r *recorder) FillText(text string, x, y float64) {
	r.calls = append(r.calls, call{op: "text", text: text, x: x, y: y, style: r.style})
}

func (r *recorder) FillArc(_ ports.Point, _, _, start, end float64, style ports.ArcStyle) {
	r.calls = append(r.calls, call{op: "arc", arc: Span{Start: start, End: end, Style: style}})
}

func (r *recorder) Size() (float64, float64) { return 300, 300 }

func (r *recorder) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.op
	}
	return out
}

func equalOps(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var area = ports.ChartArea{Left: 0, Top: 0, Width: 300, Height: 200}

func TestLinePositions(t *testing.T) {
	tests := []struct {
		name  string
		msg   domain.ActivityMessage
		wantY []float64
	}{
		{"single line", domain.MessageQuiteActive, []float64{100}},
		{"two lines", domain.MessageNotActive, []float64{90, 110}},
		{"three lines", "a\nb\nc", []float64{80, 100, 120}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinePositions(tt.msg, area, DefaultLineHeight)
			if len(got) != len(tt.wantY) {
				t.Fatalf("got %d positions, want %d", len(got), len(tt.wantY))
			}
			for i, p := range got {
				if p.X != 150 {
					t.Errorf("line %d x = %v, want 150", i, p.X)
				}
				if p.Y != tt.wantY[i] {
					t.Errorf("line %d y = %v, want %v", i, p.Y, tt.wantY[i])
				}
			}
		})
	}
}

func TestOverlay_DrawIsBracketed(t *testing.T) {
	r := &recorder{style: ports.TextStyle{Color: "#000000"}}
	before := r.style

	NewOverlay(domain.MessageNotActive).Draw(r, area)

	want := []string{"save", "style", "text", "text", "restore"}
	if !equalOps(r.ops(), want) {
		t.Fatalf("ops = %v, want %v", r.ops(), want)
	}
	if r.style != before {
		t.Errorf("style leaked after Draw: %+v", r.style)
	}
	if r.calls[2].text != "Not really active," || r.calls[3].text != "maybe they're asleep" {
		t.Errorf("unexpected lines %q, %q", r.calls[2].text, r.calls[3].text)
	}
	if !r.calls[2].style.Bold || r.calls[2].style.Color != "#ffffff" {
		t.Errorf("text drawn with style %+v", r.calls[2].style)
	}
}

func TestOverlay_EmptyMessageDrawsNothing(t *testing.T) {
	r := &recorder{}
	Overlay{}.Draw(r, area)
	if len(r.calls) != 0 {
		t.Errorf("expected no calls, got %v", r.ops())
	}
}

func TestDoughnut_Spans(t *testing.T) {
	tests := []struct {
		name      string
		count     domain.KickCount
		wantSpans int
		wantFirst float64
	}{
		{"partial", 6, 2, 0.6 * 2 * math.Pi},
		{"full", 12, 1, 2 * math.Pi},
		{"zero", 0, 1, 2 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDoughnut(domain.MapProportion(tt.count), DefaultStyle())
			spans := d.Spans()
			if len(spans) != tt.wantSpans {
				t.Fatalf("got %d spans, want %d", len(spans), tt.wantSpans)
			}
			if spans[0].Start != 0 {
				t.Errorf("first span starts at %v, want 12 o'clock", spans[0].Start)
			}
			if math.Abs(spans[0].End-tt.wantFirst) > 1e-9 {
				t.Errorf("first span ends at %v, want %v", spans[0].End, tt.wantFirst)
			}
			if last := spans[len(spans)-1]; math.Abs(last.End-2*math.Pi) > 1e-9 {
				t.Errorf("spans end at %v, want full circle", last.End)
			}
		})
	}
}

func TestDoughnut_ZeroUsesRemainingStyle(t *testing.T) {
	style := DefaultStyle()
	spans := NewDoughnut(domain.MapProportion(0), style).Spans()
	if spans[0].Style != style.Remaining {
		t.Errorf("zero ring style = %+v, want remaining", spans[0].Style)
	}
}

func TestDoughnut_Radii(t *testing.T) {
	d := NewDoughnut(domain.MapProportion(5), DefaultStyle())
	inner, outer := d.Radii(area)
	if outer != 100 {
		t.Errorf("outer = %v, want 100", outer)
	}
	if math.Abs(inner-70) > 1e-9 {
		t.Errorf("inner = %v, want 70", inner)
	}
}

func TestDoughnut_DrawArcsBeforeOverlay(t *testing.T) {
	r := &recorder{}
	d := NewDoughnut(domain.MapProportion(6), DefaultStyle()).
		WithOverlay(NewOverlay(domain.Classify(6)))
	d.Draw(r, area)

	want := []string{"arc", "arc", "save", "style", "text", "restore"}
	if !equalOps(r.ops(), want) {
		t.Fatalf("ops = %v, want %v", r.ops(), want)
	}
	if r.calls[4].text != "Quite active" {
		t.Errorf("overlay text = %q", r.calls[4].text)
	}
}

func TestSetup_RunsOnce(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Setup()
			_ = NewDoughnut(domain.MapProportion(3), DefaultStyle())
		}()
	}
	wg.Wait()

	if got := setupRuns(); got != 1 {
		t.Errorf("setup ran %d times, want 1", got)
	}
	for _, id := range []string{ElementArc, PluginCenterText} {
		if !Registered(id) {
			t.Errorf("%s not registered", id)
		}
	}
	if Registered("legend") {
		t.Error("legend should not be registered")
	}
}

func TestDraw_PaintsSpansThroughArcElement(t *testing.T) {
	d := NewDoughnut(domain.MapProportion(4), DefaultStyle())

	el := element(ElementArc)
	if el == nil || el.ID() != ElementArc {
		t.Fatalf("arc element not registered: %v", el)
	}

	direct := &recorder{}
	spans := d.Spans()
	for _, sp := range spans {
		el.DrawSpan(direct, ports.Point{X: 150, Y: 150}, 50, 100, sp)
	}

	drawn := &recorder{}
	d.Draw(drawn, area)

	var arcs []Span
	for _, c := range drawn.calls {
		if c.op == "arc" {
			arcs = append(arcs, c.arc)
		}
	}
	if len(arcs) != len(spans) || len(direct.calls) != len(spans) {
		t.Fatalf("got %d arcs from Draw and %d direct, want %d", len(arcs), len(direct.calls), len(spans))
	}
	for i := range spans {
		if arcs[i] != direct.calls[i].arc {
			t.Errorf("span %d: Draw painted %+v, element painted %+v", i, arcs[i], direct.calls[i].arc)
		}
	}
}
