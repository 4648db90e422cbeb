// Package chart draws the daily progress doughnut and its center overlay onto
// a ports.Surface.
package chart

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/xvierd/kicks-cli/internal/ports"
)

// Plugin draws on top of a doughnut once its arcs are painted.
type Plugin interface {
	ID() string
	AfterDraw(s ports.Surface, d *Doughnut, area ports.ChartArea)
}

// Element paints one dataset span of a doughnut.
type Element interface {
	ID() string
	DrawSpan(s ports.Surface, center ports.Point, inner, outer float64, span Span)
}

type registry struct {
	once     sync.Once
	mu       sync.RWMutex
	elements map[string]Element
	plugins  map[string]Plugin
	runs     atomic.Int32
}

var global = &registry{}

// Setup registers the built-in elements and plugins. It runs at most once per
// process no matter how many callers race on it.
func Setup() {
	global.once.Do(func() {
		global.runs.Add(1)
		global.mu.Lock()
		defer global.mu.Unlock()
		global.elements = map[string]Element{
			ElementArc: arc{},
		}
		global.plugins = map[string]Plugin{
			PluginCenterText: centerText{},
		}
	})
}

// Built-in component ids.
const (
	ElementArc       = "arc"
	PluginCenterText = "centerText"
)

// Registered reports whether an element or plugin id is known.
func Registered(id string) bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	if _, ok := global.elements[id]; ok {
		return true
	}
	_, ok := global.plugins[id]
	return ok
}

// element returns the registered element for id, or nil.
func element(id string) Element {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.elements[id]
}

func plugins() []Plugin {
	global.mu.RLock()
	defer global.mu.RUnlock()
	ids := make([]string, 0, len(global.plugins))
	for id := range global.plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Plugin, 0, len(ids))
	for _, id := range ids {
		out = append(out, global.plugins[id])
	}
	return out
}

func setupRuns() int32 {
	return global.runs.Load()
}

// arc fills a span as a ring segment.
type arc struct{}

func (arc) ID() string { return ElementArc }

func (arc) DrawSpan(s ports.Surface, center ports.Point, inner, outer float64, span Span) {
	s.FillArc(center, inner, outer, span.Start, span.End, span.Style)
}

// centerText paints the doughnut's overlay, if any.
type centerText struct{}

func (centerText) ID() string { return PluginCenterText }

func (centerText) AfterDraw(s ports.Surface, d *Doughnut, area ports.ChartArea) {
	if d.Overlay == nil {
		return
	}
	d.Overlay.Draw(s, area)
}
