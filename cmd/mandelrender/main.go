// Command mandelrender renders a single Mandelbrot frame to a PNG file.
//
// Usage:
//
//	mandelrender -width 1024 -height 768 -re -0.7436 -im 0.1318 -zoom 500 -iter 800 -o out.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/language"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/internal/hud"
)

type options struct {
	width, height int
	view          mandelbrot.View
	palette       string
	smooth        bool
	supersample   int
	overlay       bool
	output        string
	verbose       bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("mandelrender", flag.ContinueOnError)
	fs.IntVar(&o.width, "width", 800, "image width")
	fs.IntVar(&o.height, "height", 600, "image height")
	fs.Float64Var(&o.view.CenterReal, "re", mandelbrot.DefaultCenterReal, "real part of the view center")
	fs.Float64Var(&o.view.CenterImag, "im", mandelbrot.DefaultCenterImag, "imaginary part of the view center")
	fs.Float64Var(&o.view.Zoom, "zoom", mandelbrot.DefaultZoom, "zoom factor (> 0)")
	fs.IntVar(&o.view.MaxIterations, "iter", mandelbrot.DefaultMaxIterations, "iteration cap (>= 1)")
	fs.StringVar(&o.palette, "palette", "hue", "palette: "+strings.Join(mandelbrot.PaletteNames(), ", "))
	fs.BoolVar(&o.smooth, "smooth", true, "continuous coloring")
	fs.IntVar(&o.supersample, "ss", 1, "supersampling factor (1-4)")
	fs.BoolVar(&o.overlay, "hud", false, "draw the status overlay")
	fs.StringVar(&o.output, "o", "mandelbrot.png", "output file")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if err := (mandelbrot.Grid{Width: o.width, Height: o.height}).Validate(); err != nil {
		return o, err
	}
	if !o.view.Valid() {
		return o, fmt.Errorf("invalid view: %v", o.view)
	}
	if o.supersample < 1 || o.supersample > 4 {
		return o, fmt.Errorf("supersampling factor %d out of range 1-4", o.supersample)
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("mandelrender: %v", err)
	}
	if o.verbose {
		mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	start := time.Now()
	img, err := render(o)
	if err != nil {
		log.Fatalf("mandelrender: %v", err)
	}
	elapsed := time.Since(start)

	if o.overlay {
		overlay := hud.New(language.English)
		overlay.Draw(img, overlay.Lines(o.view, elapsed))
	}

	if err := save(o.output, img); err != nil {
		log.Fatalf("mandelrender: %v", err)
	}
	log.Printf("Rendered %s (%dx%d, %v) in %v\n", o.output, o.width, o.height, o.view, elapsed)
}

// render draws the view at supersample times the output size through the
// host API and scales it down to the output size.
func render(o options) (*image.RGBA, error) {
	palette, err := mandelbrot.ParsePalette(o.palette)
	if err != nil {
		return nil, err
	}
	kernel := mandelbrot.NewKernel(mandelbrot.WithPalette(palette), mandelbrot.WithSmoothing(o.smooth))
	host := mandelbrot.NewHost(mandelbrot.WithKernel(kernel))

	grid := mandelbrot.Grid{Width: o.width * o.supersample, Height: o.height * o.supersample}
	handle, err := host.AllocFrame(grid)
	if err != nil {
		return nil, err
	}
	defer func() { _ = host.Dealloc(handle) }()

	if err := host.CalculateView(handle, grid, o.view); err != nil {
		return nil, err
	}
	fb, err := host.Frame(handle, grid)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, o.width, o.height))
	if o.supersample == 1 {
		copy(out.Pix, fb.Data())
		return out, nil
	}
	xdraw.CatmullRom.Scale(out, out.Bounds(), fb.ToImage(), fb.Bounds(), xdraw.Src, nil)
	return out, nil
}

func save(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode PNG: %w", err)
	}
	return f.Close()
}
