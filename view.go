package mandelbrot

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned when a pixel grid has a non-positive dimension.
var ErrInvalidGrid = errors.New("mandelbrot: invalid grid dimensions")

// Default view parameters, matching the startup state of the viewer.
const (
	DefaultCenterReal    = -0.5
	DefaultCenterImag    = 0.0
	DefaultZoom          = 1.0
	DefaultMaxIterations = 50
)

// BaseSpan is the extent of the complex plane covered by the wider axis of
// the grid at zoom 1.
const BaseSpan = 4.0

// View selects the region of the complex plane that is rendered.
//
// Zoom must be positive and MaxIterations at least 1. The kernel treats a
// View as read-only; hosts produce a new View for each frame.
type View struct {
	CenterReal    float64
	CenterImag    float64
	Zoom          float64
	MaxIterations int
}

// DefaultView returns the initial view: center (-0.5, 0), zoom 1, 50 iterations.
func DefaultView() View {
	return View{
		CenterReal:    DefaultCenterReal,
		CenterImag:    DefaultCenterImag,
		Zoom:          DefaultZoom,
		MaxIterations: DefaultMaxIterations,
	}
}

// Valid reports whether the zoom is a positive finite number and at least
// one iteration is requested.
func (v View) Valid() bool {
	return validZoom(v.Zoom) && v.MaxIterations >= 1 &&
		!math.IsNaN(v.CenterReal) && !math.IsNaN(v.CenterImag)
}

// Scale returns the distance in the complex plane between adjacent pixels.
func (v View) Scale(g Grid) float64 {
	return pixelScale(g.Width, g.Height, v.Zoom)
}

// PixelToComplex returns the sample point for pixel (px, py).
// Pixel (Width/2, Height/2) maps exactly onto the view center; y grows
// towards +imaginary.
func (v View) PixelToComplex(g Grid, px, py int) (re, im float64) {
	scale := v.Scale(g)
	re = v.CenterReal + float64(px-g.Width/2)*scale
	im = v.CenterImag + float64(py-g.Height/2)*scale
	return re, im
}

// String formats the view the way the viewer reports it.
func (v View) String() string {
	return fmt.Sprintf("center=(%g, %g) zoom=%g iterations=%d",
		v.CenterReal, v.CenterImag, v.Zoom, v.MaxIterations)
}

// Grid is the pixel size of a frame buffer.
type Grid struct {
	Width  int
	Height int
}

// Validate returns ErrInvalidGrid if either dimension is non-positive.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d (both must be > 0)", ErrInvalidGrid, g.Width, g.Height)
	}
	return nil
}

// Pixels returns Width*Height.
func (g Grid) Pixels() int {
	return g.Width * g.Height
}

// ByteSize returns the RGBA8 buffer size for the grid.
func (g Grid) ByteSize() int {
	return g.Width * g.Height * BytesPerPixel
}

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// validZoom reports whether z is usable as a zoom factor.
func validZoom(z float64) bool {
	return z > 0 && !math.IsInf(z, 1)
}

// pixelScale returns the complex-plane step between adjacent pixels.
// The wider of width and height spans BaseSpan/zoom.
func pixelScale(width, height int, zoom float64) float64 {
	return BaseSpan / zoom / float64(max(width, height))
}
