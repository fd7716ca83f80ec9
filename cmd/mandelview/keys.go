package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/mandelbrot/control"
)

// bindings maps physical keys to logical controls.
var bindings = []struct {
	keys    []ebiten.Key
	control control.Control
}{
	{[]ebiten.Key{ebiten.KeyArrowLeft}, control.PanLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight}, control.PanRight},
	{[]ebiten.Key{ebiten.KeyArrowUp}, control.PanUp},
	{[]ebiten.Key{ebiten.KeyArrowDown}, control.PanDown},
	{[]ebiten.Key{ebiten.KeyA}, control.ZoomIn},
	{[]ebiten.Key{ebiten.KeyS}, control.ZoomOut},
	{[]ebiten.Key{ebiten.KeyZ}, control.MoreIterations},
	{[]ebiten.Key{ebiten.KeyX}, control.FewerIterations},
	{[]ebiten.Key{ebiten.KeySpace}, control.Reset},
	{[]ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}, control.Boost},
	{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}, control.Report},
}

// pollInput samples the keyboard once for the current tick.
func pollInput() control.Input {
	var in control.Input
	for _, b := range bindings {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				in = in.With(b.control)
				break
			}
		}
	}
	return in
}
