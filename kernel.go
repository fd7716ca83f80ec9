package mandelbrot

import "math"

// EscapeRadius2 is the squared escape radius. Once |z|^2 exceeds it the
// orbit is known to diverge.
const EscapeRadius2 = 4.0

// Kernel renders escape-time images into RGBA8 buffers.
//
// A Kernel holds only its coloring configuration. Render keeps no state
// between calls, allocates nothing and may be called concurrently on
// distinct buffers.
type Kernel struct {
	palette Palette
	smooth  bool
}

// KernelOption configures a Kernel.
type KernelOption func(*Kernel)

// WithPalette sets the palette used for escaped points. nil selects Hue.
func WithPalette(p Palette) KernelOption {
	return func(k *Kernel) {
		k.palette = p
	}
}

// WithSmoothing enables or disables continuous (band-free) coloring.
func WithSmoothing(on bool) KernelOption {
	return func(k *Kernel) {
		k.smooth = on
	}
}

// NewKernel creates a kernel. By default it uses the Hue palette with
// smoothing enabled.
func NewKernel(opts ...KernelOption) Kernel {
	k := Kernel{palette: Hue, smooth: true}
	for _, opt := range opts {
		opt(&k)
	}
	if k.palette == nil {
		k.palette = Hue
	}
	return k
}

// DefaultKernel is the kernel used by Calculate.
var DefaultKernel = NewKernel()

// Calculate renders the view into buf using DefaultKernel.
//
// buf should hold exactly width*height*4 bytes. Pixels are written row-major
// as R, G, B, 255. Points that never escape within maxIterations are black.
//
// Calculate never writes outside buf: if buf is shorter than required only
// the complete rows that fit are rendered, and bytes beyond width*height*4
// are left untouched. A non-positive or non-finite zoom, or a non-positive
// dimension, leaves buf unchanged. maxIterations below 1 is treated as 1.
func Calculate(buf []byte, width, height, maxIterations int, centerReal, centerImag, zoom float64) {
	DefaultKernel.Render(buf, width, height, maxIterations, centerReal, centerImag, zoom)
}

// RenderView renders v over grid g into buf. See Calculate for the contract.
func (k Kernel) RenderView(buf []byte, g Grid, v View) {
	k.Render(buf, g.Width, g.Height, v.MaxIterations, v.CenterReal, v.CenterImag, v.Zoom)
}

// Render renders one frame into buf. See Calculate for the contract.
func (k Kernel) Render(buf []byte, width, height, maxIterations int, centerReal, centerImag, zoom float64) {
	if width <= 0 || height <= 0 || !validZoom(zoom) {
		return
	}
	if maxIterations < 1 {
		maxIterations = 1
	}
	palette := k.palette
	if palette == nil {
		palette = Hue
	}

	rows := min(height, len(buf)/BytesPerPixel/width)
	scale := pixelScale(width, height, zoom)
	halfW, halfH := width/2, height/2
	fmax := float64(maxIterations)

	i := 0
	for py := range rows {
		y0 := centerImag + float64(py-halfH)*scale
		for px := range width {
			x0 := centerReal + float64(px-halfW)*scale
			n, mag2 := Escape(x0, y0, maxIterations)

			var r, g, b uint8
			if n < maxIterations {
				mu := float64(n)
				if k.smooth {
					mu = smoothIteration(n, mag2, fmax)
				}
				r, g, b = palette(mu / fmax)
			}

			p := buf[i : i+4 : i+4]
			p[0] = r
			p[1] = g
			p[2] = b
			p[3] = 255
			i += BytesPerPixel
		}
	}
}

// Escape iterates z = z² + c from z = 0 for c = (re, im).
//
// n is the number of iterations completed without |z|² exceeding
// EscapeRadius2; n == maxIterations means the point did not escape.
// mag2 is |z|² after the last iteration performed.
func Escape(re, im float64, maxIterations int) (n int, mag2 float64) {
	var zr, zi float64
	for n < maxIterations {
		zr, zi = zr*zr-zi*zi+re, 2*zr*zi+im
		mag2 = zr*zr + zi*zi
		if mag2 > EscapeRadius2 {
			return n, mag2
		}
		n++
	}
	return n, mag2
}

// smoothIteration returns the continuous escape count
// n + 1 - log2(log2|z|), clamped to [0, fmax).
func smoothIteration(n int, mag2, fmax float64) float64 {
	// log2|z| = log2(|z|²)/2 > 1 because |z|² > 4.
	mu := float64(n) + 1 - math.Log2(0.5*math.Log2(mag2))
	if !(mu >= 0) {
		return 0
	}
	if mu >= fmax {
		return float64(n)
	}
	return mu
}
