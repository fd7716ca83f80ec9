// Package control turns held input controls into view changes.
//
// The update step is a pure function of the current view and the set of
// controls held during the tick, so a frame loop can thread a single View
// value through input updates and renders without shared state.
package control

import (
	"strings"

	"github.com/gogpu/mandelbrot"
)

// Control is a logical input, independent of the physical key bound to it.
type Control uint16

// Logical controls.
const (
	PanLeft Control = 1 << iota
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
	MoreIterations
	FewerIterations
	Reset
	Boost
	Report
)

var controlNames = []struct {
	c    Control
	name string
}{
	{PanLeft, "pan-left"},
	{PanRight, "pan-right"},
	{PanUp, "pan-up"},
	{PanDown, "pan-down"},
	{ZoomIn, "zoom-in"},
	{ZoomOut, "zoom-out"},
	{MoreIterations, "more-iterations"},
	{FewerIterations, "fewer-iterations"},
	{Reset, "reset"},
	{Boost, "boost"},
	{Report, "report"},
}

// String returns the control's name.
func (c Control) String() string {
	for _, n := range controlNames {
		if n.c == c {
			return n.name
		}
	}
	return "unknown"
}

// Input is the set of controls held during one update tick.
type Input uint16

// Has reports whether c is held.
func (in Input) Has(c Control) bool {
	return in&Input(c) != 0
}

// With returns the set with c held.
func (in Input) With(c Control) Input {
	return in | Input(c)
}

// Without returns the set with c released.
func (in Input) Without(c Control) Input {
	return in &^ Input(c)
}

// String lists the held controls, e.g. "pan-left+boost".
func (in Input) String() string {
	if in == 0 {
		return "none"
	}
	var parts []string
	for _, n := range controlNames {
		if in.Has(n.c) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// Config holds the step sizes of the update step.
type Config struct {
	// PanStep is the pan distance per tick at zoom 1; it shrinks as 1/zoom.
	PanStep float64

	// ZoomStep is the relative zoom change per tick.
	ZoomStep float64

	// IterationStep is the iteration-cap change per tick.
	IterationStep int

	// BoostFactor multiplies every step while Boost is held.
	BoostFactor float64
}

// DefaultConfig returns the stock step sizes: pan 0.1/zoom, zoom 10%,
// one iteration, five times faster with Boost.
func DefaultConfig() Config {
	return Config{
		PanStep:       0.1,
		ZoomStep:      0.1,
		IterationStep: 1,
		BoostFactor:   5,
	}
}

// Step applies one tick of held controls to v using DefaultConfig.
func Step(v mandelbrot.View, in Input) mandelbrot.View {
	return DefaultConfig().Step(v, in)
}

// Step applies one tick of held controls to v and returns the new view.
//
// Pans, then zooms, then Reset, then iteration changes, so holding Reset
// together with an iteration control adjusts the default cap. The result
// always keeps Zoom > 0 and MaxIterations >= 1. Report does not change the
// view; callers check it themselves.
func (c Config) Step(v mandelbrot.View, in Input) mandelbrot.View {
	if !(v.Zoom > 0) {
		v.Zoom = mandelbrot.DefaultZoom
	}
	multiplier := 1.0
	if in.Has(Boost) {
		multiplier = c.BoostFactor
	}

	pan := c.PanStep / v.Zoom * multiplier
	if in.Has(PanLeft) {
		v.CenterReal -= pan
	}
	if in.Has(PanRight) {
		v.CenterReal += pan
	}
	if in.Has(PanUp) {
		v.CenterImag -= pan
	}
	if in.Has(PanDown) {
		v.CenterImag += pan
	}

	zoom := v.Zoom
	if in.Has(ZoomIn) {
		zoom += c.ZoomStep * zoom * multiplier
	}
	if in.Has(ZoomOut) {
		zoom -= c.ZoomStep * zoom * multiplier
	}
	if zoom > 0 {
		v.Zoom = zoom
	}

	if in.Has(Reset) {
		v = mandelbrot.DefaultView()
	}

	step := int(float64(c.IterationStep) * multiplier)
	if in.Has(MoreIterations) {
		v.MaxIterations += step
	}
	if in.Has(FewerIterations) {
		v.MaxIterations -= step
	}
	if v.MaxIterations < 1 {
		v.MaxIterations = 1
	}
	return v
}

// Recenter moves the view center to the sample point of pixel (px, py).
func Recenter(v mandelbrot.View, g mandelbrot.Grid, px, py int) mandelbrot.View {
	v.CenterReal, v.CenterImag = v.PixelToComplex(g, px, py)
	return v
}

// browserKeys maps DOM KeyboardEvent.key values to controls.
var browserKeys = map[string]Control{
	"ArrowLeft":  PanLeft,
	"ArrowRight": PanRight,
	"ArrowUp":    PanUp,
	"ArrowDown":  PanDown,
	"a":          ZoomIn,
	"A":          ZoomIn,
	"s":          ZoomOut,
	"S":          ZoomOut,
	"z":          MoreIterations,
	"Z":          MoreIterations,
	"x":          FewerIterations,
	"X":          FewerIterations,
	" ":          Reset,
	"Shift":      Boost,
	"Enter":      Report,
}

// ParseKey returns the control bound to a DOM KeyboardEvent.key value.
func ParseKey(key string) (Control, bool) {
	c, ok := browserKeys[key]
	return c, ok
}
