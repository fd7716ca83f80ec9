// Package mandelbrot renders escape-time images of the Mandelbrot set into
// RGBA8 pixel buffers.
//
// # Overview
//
// The package has two parts:
//   - the kernel ([Calculate], [Kernel], [Escape]): a pure, allocation-free
//     function that colors every pixel of a buffer for a given [View];
//   - the host API ([Host]): hands out buffers by [Handle], renders into
//     them once per frame, and releases them at shutdown.
//
// # Quick Start
//
//	h := mandelbrot.NewHost()
//	g := mandelbrot.Grid{Width: 800, Height: 600}
//	handle, err := h.AllocFrame(g)
//	if err != nil {
//	    log.Fatal(err) // ErrOutOfMemory: abort startup
//	}
//	defer h.Dealloc(handle)
//
//	v := mandelbrot.DefaultView()
//	_ = h.CalculateView(handle, g, v)
//	fb, _ := h.Frame(handle, g)
//	_ = fb.SavePNG("mandelbrot.png")
//
// # Coordinate System
//
// Pixel (Width/2, Height/2) samples the view center. The wider axis of the
// grid spans [BaseSpan]/Zoom of the complex plane; the other axis uses the
// same pixel pitch, so the image is never stretched. X grows towards
// +real, Y (down the screen) towards +imaginary.
//
// # Precision
//
// All arithmetic is float64. Beyond a zoom of roughly 1e13 adjacent pixels
// map to the same sample point and the image degrades into blocks.
//
// # Threading
//
// The kernel runs synchronously on the caller's goroutine and keeps no state,
// so a frame loop that alternates input updates and renders on one goroutine
// needs no locking.
package mandelbrot

// Version is the current version of the library.
const Version = "0.1.0"
