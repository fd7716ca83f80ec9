package mandelbrot

import (
	"bytes"
	"math"
	"testing"
)

const guardByte = 0xCD

// guarded returns a slice of n bytes surrounded by pad guard bytes on each
// side, plus the full backing array for inspection.
func guarded(n, pad int) (buf, full []byte) {
	full = make([]byte, n+2*pad)
	for i := range full {
		full[i] = guardByte
	}
	return full[pad : pad+n : pad+n], full
}

func checkGuards(t *testing.T, full []byte, n, pad int) {
	t.Helper()
	for i := 0; i < pad; i++ {
		if full[i] != guardByte {
			t.Fatalf("leading guard byte %d overwritten: %#x", i, full[i])
		}
		if full[pad+n+i] != guardByte {
			t.Fatalf("trailing guard byte %d overwritten: %#x", i, full[pad+n+i])
		}
	}
}

func TestCalculate_BoundsSafety(t *testing.T) {
	sizes := []Grid{
		{1, 1}, {1, 7}, {7, 1}, {2, 2}, {3, 5}, {16, 9},
		{640, 480}, {2000, 1}, {1, 2000}, {2000, 3}, {3, 2000},
	}
	const pad = 64
	for _, g := range sizes {
		n := g.ByteSize()
		buf, full := guarded(n, pad)
		Calculate(buf, g.Width, g.Height, 16, -0.5, 0, 1)
		checkGuards(t, full, n, pad)
		for i := 3; i < n; i += 4 {
			if buf[i] != 255 {
				t.Fatalf("%dx%d: pixel %d alpha = %d, want 255", g.Width, g.Height, i/4, buf[i])
			}
		}
	}
}

func TestCalculate_ShortBufferRendersWholeRows(t *testing.T) {
	const width, height, pad = 10, 6, 32
	n := width*height*4 - 5 // 5 full rows fit, plus 35 bytes
	buf, full := guarded(n, pad)
	Calculate(buf, width, height, 20, -0.5, 0, 1)
	checkGuards(t, full, n, pad)

	rendered := 5 * width * 4
	for i := 3; i < rendered; i += 4 {
		if buf[i] != 255 {
			t.Fatalf("pixel %d in a fitting row not rendered", i/4)
		}
	}
	for i := rendered; i < n; i++ {
		if buf[i] != guardByte {
			t.Fatalf("byte %d of the partial row was written", i)
		}
	}
}

func TestCalculate_LongBufferLeavesTail(t *testing.T) {
	const width, height = 4, 4
	buf := bytes.Repeat([]byte{guardByte}, width*height*4+16)
	Calculate(buf, width, height, 20, -0.5, 0, 1)
	for i := width * height * 4; i < len(buf); i++ {
		if buf[i] != guardByte {
			t.Fatalf("byte %d past width*height*4 was written", i)
		}
	}
}

func TestCalculate_DegenerateInputsAreNoOps(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		zoom          float64
	}{
		{"zero zoom", 4, 4, 0},
		{"negative zoom", 4, 4, -1},
		{"NaN zoom", 4, 4, math.NaN()},
		{"infinite zoom", 4, 4, math.Inf(1)},
		{"zero width", 0, 4, 1},
		{"negative height", 4, -4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.Repeat([]byte{guardByte}, 4*4*4)
			Calculate(buf, tt.width, tt.height, 50, -0.5, 0, tt.zoom)
			for i, v := range buf {
				if v != guardByte {
					t.Fatalf("byte %d written for degenerate input", i)
				}
			}
		})
	}
}

func TestCalculate_NonPositiveIterationsClamped(t *testing.T) {
	for _, iters := range []int{0, -10} {
		buf := make([]byte, 8*8*4)
		Calculate(buf, 8, 8, iters, -0.5, 0, 1)
		for i := 3; i < len(buf); i += 4 {
			if buf[i] != 255 {
				t.Fatalf("maxIterations=%d: pixel %d not rendered", iters, i/4)
			}
		}
	}
}

func TestCalculate_EmptyBuffer(t *testing.T) {
	Calculate(nil, 4, 4, 50, -0.5, 0, 1)
	Calculate([]byte{}, 4, 4, 50, -0.5, 0, 1)
}

// TestCalculate_StartupScenario renders the viewer's initial configuration.
func TestCalculate_StartupScenario(t *testing.T) {
	buf := make([]byte, 4*4*4)
	Calculate(buf, 4, 4, 50, -0.5, 0.0, 1.0)
	for p := 0; p < 16; p++ {
		if a := buf[p*4+3]; a != 255 {
			t.Errorf("pixel %d alpha = %d, want 255", p, a)
		}
	}
	// Pixel (2, 2) samples the center (-0.5, 0), which is in the set.
	i := (2*4 + 2) * 4
	if buf[i] != 0 || buf[i+1] != 0 || buf[i+2] != 0 {
		t.Errorf("center pixel = (%d, %d, %d), want black", buf[i], buf[i+1], buf[i+2])
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	a := make([]byte, 97*61*4)
	b := make([]byte, len(a))
	Calculate(a, 97, 61, 200, -0.7436, 0.1318, 37.5)
	Calculate(b, 97, 61, 200, -0.7436, 0.1318, 37.5)
	if !bytes.Equal(a, b) {
		t.Fatal("identical inputs produced different output")
	}

	// Stale contents must not influence the result.
	for i := range b {
		b[i] = 0x5A
	}
	Calculate(b, 97, 61, 200, -0.7436, 0.1318, 37.5)
	if !bytes.Equal(a, b) {
		t.Fatal("output depends on previous buffer contents")
	}
}

func TestCalculate_DoesNotAllocate(t *testing.T) {
	buf := make([]byte, 64*48*4)
	allocs := testing.AllocsPerRun(10, func() {
		Calculate(buf, 64, 48, 50, -0.5, 0, 1)
	})
	if allocs != 0 {
		t.Errorf("Calculate allocated %v times per run, want 0", allocs)
	}
}

func TestEscape_CenterNeverEscapes(t *testing.T) {
	for _, m := range []int{1, 2, 10, 50, 1000, 100000} {
		n, _ := Escape(-0.5, 0.0, m)
		if n != m {
			t.Errorf("Escape(-0.5, 0, %d) = %d, want %d", m, n, m)
		}
	}
}

func TestEscape_KnownEscapingPoint(t *testing.T) {
	for _, m := range []int{2, 3, 50, 1000} {
		n, mag2 := Escape(1.0, 1.0, m)
		if n >= 2 {
			t.Errorf("Escape(1, 1, %d) = %d, want < 2", m, n)
		}
		if mag2 <= EscapeRadius2 {
			t.Errorf("Escape(1, 1, %d) |z|^2 = %v, want > %v", m, mag2, EscapeRadius2)
		}
	}
}

func TestEscape_Monotonic(t *testing.T) {
	caps := []int{1, 2, 5, 10, 20, 50, 100, 500}
	for re := -2.25; re <= 0.75; re += 0.0625 {
		for im := -1.25; im <= 1.25; im += 0.0625 {
			prev := -1
			for _, m := range caps {
				n, _ := Escape(re, im, m)
				if n < prev {
					t.Fatalf("c=(%v, %v): escape count dropped from %d to %d when cap rose to %d", re, im, prev, n, m)
				}
				if n > m {
					t.Fatalf("c=(%v, %v): escape count %d exceeds cap %d", re, im, n, m)
				}
				prev = n
			}
		}
	}
}

func TestEscape_ZeroIterations(t *testing.T) {
	n, mag2 := Escape(10, 10, 0)
	if n != 0 || mag2 != 0 {
		t.Errorf("Escape with cap 0 = (%d, %v), want (0, 0)", n, mag2)
	}
}

func TestSmoothIteration(t *testing.T) {
	tests := []struct {
		name string
		n    int
		mag2 float64
		fmax float64
		want float64
	}{
		// |z| = 4: log2(log2 4) = 1, so mu = n.
		{"exact", 3, 16, 50, 3},
		// |z| = 2^4: log2(4) = 2, mu = n - 1.
		{"large modulus", 3, 256, 50, 2},
		{"clamped below zero", 0, 1e300, 50, 0},
		{"overflowed modulus", 0, math.Inf(1), 50, 0},
		{"clamped to cap", 49, 4.0000001, 49.5, 49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := smoothIteration(tt.n, tt.mag2, tt.fmax)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("smoothIteration(%d, %v, %v) = %v, want %v", tt.n, tt.mag2, tt.fmax, got, tt.want)
			}
		})
	}
}

func TestKernel_BandedColorDependsOnlyOnCount(t *testing.T) {
	k := NewKernel(WithSmoothing(false), WithPalette(Gray))
	const w, h, iters = 64, 48, 30
	buf := make([]byte, w*h*4)
	k.Render(buf, w, h, iters, -0.5, 0, 1)

	v := View{CenterReal: -0.5, Zoom: 1, MaxIterations: iters}
	g := Grid{w, h}
	for py := range h {
		for px := range w {
			re, im := v.PixelToComplex(g, px, py)
			n, _ := Escape(re, im, iters)
			var want uint8
			if n < iters {
				want, _, _ = Gray(float64(n) / iters)
			}
			i := (py*w + px) * 4
			if buf[i] != want || buf[i+1] != want || buf[i+2] != want {
				t.Fatalf("pixel (%d, %d) = %d, want gray %d for n=%d", px, py, buf[i], want, n)
			}
		}
	}
}

func TestKernel_SmoothingChangesOutput(t *testing.T) {
	banded := make([]byte, 32*32*4)
	smooth := make([]byte, len(banded))
	NewKernel(WithSmoothing(false)).Render(banded, 32, 32, 64, -0.5, 0, 1)
	NewKernel(WithSmoothing(true)).Render(smooth, 32, 32, 64, -0.5, 0, 1)
	if bytes.Equal(banded, smooth) {
		t.Error("smoothing had no effect on the rendered image")
	}
}

func TestKernel_NilPaletteFallsBackToHue(t *testing.T) {
	a := make([]byte, 16*16*4)
	b := make([]byte, len(a))
	NewKernel(WithPalette(nil)).Render(a, 16, 16, 40, -0.5, 0, 1)
	NewKernel().Render(b, 16, 16, 40, -0.5, 0, 1)
	if !bytes.Equal(a, b) {
		t.Error("nil palette did not fall back to Hue")
	}

	var zero Kernel
	zero.Render(a, 16, 16, 40, -0.5, 0, 1)
}

func BenchmarkCalculate_640x480(b *testing.B) {
	buf := make([]byte, 640*480*4)
	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	for b.Loop() {
		Calculate(buf, 640, 480, 50, -0.5, 0, 1)
	}
}

func BenchmarkCalculate_DeepIterations(b *testing.B) {
	buf := make([]byte, 256*256*4)
	b.ReportAllocs()
	for b.Loop() {
		Calculate(buf, 256, 256, 1000, -0.7436447860, 0.1318252536, 2000)
	}
}
