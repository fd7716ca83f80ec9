// Command mandelview is an interactive Mandelbrot viewer.
//
// Controls:
//
//	arrows      pan
//	A / S       zoom in / out
//	Z / X       more / fewer iterations
//	Shift       five times faster
//	Space       reset the view
//	Enter       log the current view
//	click       re-center on the clicked point
//	H           toggle the status overlay
//	Esc         quit
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/internal/viewer"
)

func main() {
	var (
		width   = flag.Int("width", 640, "canvas width")
		height  = flag.Int("height", 480, "canvas height")
		scale   = flag.Int("scale", 1, "window scale factor")
		palette = flag.String("palette", "hue", "palette name")
		smooth  = flag.Bool("smooth", true, "continuous coloring")
		showHUD = flag.Bool("hud", true, "show the status overlay")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		mandelbrot.SetLogger(logger)
	}

	p, err := mandelbrot.ParsePalette(*palette)
	if err != nil {
		log.Fatalf("mandelview: %v", err)
	}
	host := mandelbrot.NewHost(mandelbrot.WithKernel(
		mandelbrot.NewKernel(mandelbrot.WithPalette(p), mandelbrot.WithSmoothing(*smooth))))

	grid := mandelbrot.Grid{Width: *width, Height: *height}
	if err := grid.Validate(); err != nil {
		log.Fatalf("mandelview: %v", err)
	}
	session, err := viewer.New(host, grid, viewer.WithHUD(*showHUD), viewer.WithLogger(logger))
	if err != nil {
		log.Fatalf("mandelview: %v", err)
	}

	g := newGame(session)
	ebiten.SetWindowTitle("Mandelbrot")
	ebiten.SetWindowSize(grid.Width*max(*scale, 1), grid.Height*max(*scale, 1))
	ebiten.SetTPS(60)

	runErr := ebiten.RunGame(g)
	if err := g.close(); err != nil {
		logger.Warn("release frame buffer", "err", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatalf("mandelview: %v", runErr)
	}
}
