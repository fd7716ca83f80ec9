// Command mandelwasm is the browser build of the renderer.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o web/mandelbrot.wasm ./cmd/mandelwasm
//
// and serve the web directory together with wasm_exec.js from the Go
// distribution. The page's script drives the frame loop; this module
// exports the host API (alloc, dealloc, calculate, copyTo) and the input
// step (keyDown, keyUp, update) on globalThis.mandelbrot.
package main

import (
	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/control"
)

// bridge is the state behind the exported functions. The browser calls in
// from its single event loop, so the fields need no locking.
type bridge struct {
	host  *mandelbrot.Host
	view  mandelbrot.View
	input control.Input
	last  control.Input
}

func newBridge() *bridge {
	return &bridge{
		host: mandelbrot.NewHost(),
		view: mandelbrot.DefaultView(),
	}
}

func (b *bridge) alloc(byteSize int) (mandelbrot.Handle, error) {
	return b.host.Alloc(byteSize)
}

func (b *bridge) dealloc(h mandelbrot.Handle) error {
	return b.host.Dealloc(h)
}

func (b *bridge) calculate(h mandelbrot.Handle, width, height, maxIterations int, re, im, zoom float64) error {
	return b.host.Calculate(h, width, height, maxIterations, re, im, zoom)
}

// pixels returns the buffer behind h for copying out to JavaScript.
func (b *bridge) pixels(h mandelbrot.Handle, width, height int) ([]byte, error) {
	fb, err := b.host.Frame(h, mandelbrot.Grid{Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	return fb.Data(), nil
}

// keyDown marks the control bound to a DOM key as held.
func (b *bridge) keyDown(key string) {
	if c, ok := control.ParseKey(key); ok {
		b.input = b.input.With(c)
	}
}

// keyUp releases the control bound to a DOM key.
func (b *bridge) keyUp(key string) {
	if c, ok := control.ParseKey(key); ok {
		b.input = b.input.Without(c)
	}
}

// update applies one tick of held controls and returns the new view. The
// view is logged once per Report key press.
func (b *bridge) update() mandelbrot.View {
	b.view = control.Step(b.view, b.input)
	if b.input.Has(control.Report) && !b.last.Has(control.Report) {
		mandelbrot.Logger().Info("view", "view", b.view.String())
	}
	b.last = b.input
	return b.view
}
