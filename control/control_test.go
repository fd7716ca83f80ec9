package control

import (
	"math"
	"testing"

	"github.com/gogpu/mandelbrot"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestInput(t *testing.T) {
	var in Input
	if in.Has(PanLeft) {
		t.Error("empty input has PanLeft")
	}
	in = in.With(PanLeft).With(Boost)
	if !in.Has(PanLeft) || !in.Has(Boost) || in.Has(PanRight) {
		t.Errorf("With: got %v", in)
	}
	in = in.Without(PanLeft)
	if in.Has(PanLeft) || !in.Has(Boost) {
		t.Errorf("Without: got %v", in)
	}
	if got := Input(0).With(PanLeft).With(Boost).String(); got != "pan-left+boost" {
		t.Errorf("String() = %q", got)
	}
	if got := Input(0).String(); got != "none" {
		t.Errorf("empty String() = %q", got)
	}
	if got := Control(1 << 15).String(); got != "unknown" {
		t.Errorf("unknown control String() = %q", got)
	}
}

func TestStep(t *testing.T) {
	start := mandelbrot.View{CenterReal: -0.5, CenterImag: 0, Zoom: 2, MaxIterations: 50}

	tests := []struct {
		name string
		in   Input
		want mandelbrot.View
	}{
		{"idle", 0, start},
		{"pan left", Input(PanLeft), mandelbrot.View{CenterReal: -0.55, Zoom: 2, MaxIterations: 50}},
		{"pan right", Input(PanRight), mandelbrot.View{CenterReal: -0.45, Zoom: 2, MaxIterations: 50}},
		{"pan up", Input(PanUp), mandelbrot.View{CenterReal: -0.5, CenterImag: -0.05, Zoom: 2, MaxIterations: 50}},
		{"pan down boosted", Input(PanDown).With(Boost), mandelbrot.View{CenterReal: -0.5, CenterImag: 0.25, Zoom: 2, MaxIterations: 50}},
		{"zoom in", Input(ZoomIn), mandelbrot.View{CenterReal: -0.5, Zoom: 2.2, MaxIterations: 50}},
		{"zoom out", Input(ZoomOut), mandelbrot.View{CenterReal: -0.5, Zoom: 1.8, MaxIterations: 50}},
		{"zoom out boosted", Input(ZoomOut).With(Boost), mandelbrot.View{CenterReal: -0.5, Zoom: 1, MaxIterations: 50}},
		{"more iterations", Input(MoreIterations), mandelbrot.View{CenterReal: -0.5, Zoom: 2, MaxIterations: 51}},
		{"fewer iterations boosted", Input(FewerIterations).With(Boost), mandelbrot.View{CenterReal: -0.5, Zoom: 2, MaxIterations: 45}},
		{"reset", Input(Reset).With(PanLeft), mandelbrot.DefaultView()},
		{"reset then more iterations", Input(Reset).With(MoreIterations), mandelbrot.View{CenterReal: -0.5, Zoom: 1, MaxIterations: 51}},
		{"report only", Input(Report), start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Step(start, tt.in)
			if !near(got.CenterReal, tt.want.CenterReal) || !near(got.CenterImag, tt.want.CenterImag) ||
				!near(got.Zoom, tt.want.Zoom) || got.MaxIterations != tt.want.MaxIterations {
				t.Errorf("Step(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStep_KeepsInvariants(t *testing.T) {
	v := mandelbrot.DefaultView()
	v.MaxIterations = 3
	in := Input(ZoomOut).With(FewerIterations).With(Boost)
	for range 1000 {
		v = Step(v, in)
		if !(v.Zoom > 0) {
			t.Fatalf("zoom left the positive range: %v", v.Zoom)
		}
		if v.MaxIterations < 1 {
			t.Fatalf("iterations dropped below 1: %d", v.MaxIterations)
		}
	}

	// A config whose boosted zoom-out would overshoot zero keeps the old zoom.
	cfg := DefaultConfig()
	cfg.BoostFactor = 20
	got := cfg.Step(mandelbrot.DefaultView(), Input(ZoomOut).With(Boost))
	if got.Zoom != 1 {
		t.Errorf("overshooting zoom-out: zoom = %v, want 1", got.Zoom)
	}

	// An invalid incoming zoom is repaired rather than propagated.
	bad := mandelbrot.View{Zoom: 0, MaxIterations: 10}
	if got := Step(bad, Input(PanLeft)); !got.Valid() {
		t.Errorf("Step from zero zoom produced invalid view %+v", got)
	}
}

func TestStep_PanScalesWithZoom(t *testing.T) {
	v := mandelbrot.View{Zoom: 100, MaxIterations: 10}
	got := Step(v, Input(PanRight))
	if !near(got.CenterReal, 0.001) {
		t.Errorf("pan at zoom 100 = %v, want 0.001", got.CenterReal)
	}
}

func TestRecenter(t *testing.T) {
	g := mandelbrot.Grid{Width: 200, Height: 100}
	v := mandelbrot.DefaultView()

	same := Recenter(v, g, 100, 50)
	if same != v {
		t.Errorf("Recenter on the center pixel = %+v, want %+v", same, v)
	}
	got := Recenter(v, g, 0, 0)
	if !near(got.CenterReal, -2.5) || !near(got.CenterImag, -1) {
		t.Errorf("Recenter(0, 0) center = (%v, %v), want (-2.5, -1)", got.CenterReal, got.CenterImag)
	}
	if got.Zoom != v.Zoom || got.MaxIterations != v.MaxIterations {
		t.Error("Recenter changed zoom or iterations")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want Control
		ok   bool
	}{
		{"ArrowLeft", PanLeft, true},
		{"a", ZoomIn, true},
		{"S", ZoomOut, true},
		{"Z", MoreIterations, true},
		{"x", FewerIterations, true},
		{" ", Reset, true},
		{"Shift", Boost, true},
		{"Enter", Report, true},
		{"q", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}
