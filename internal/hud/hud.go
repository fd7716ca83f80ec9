// Package hud draws the status overlay shown on top of a rendered frame.
package hud

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandelbrot"
)

// Layout constants, in pixels.
const (
	margin  = 4
	padding = 3
)

var (
	// Background is the translucent panel behind the text.
	Background = color.RGBA{A: 160}

	// Foreground is the text color.
	Foreground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Overlay formats and draws status lines.
type Overlay struct {
	printer *message.Printer
	face    font.Face
}

// New creates an overlay that formats numbers for tag.
func New(tag language.Tag) *Overlay {
	return &Overlay{
		printer: message.NewPrinter(tag),
		face:    basicfont.Face7x13,
	}
}

// Lines returns the status lines for a view and an average frame time.
// A zero frame time omits the timing line.
func (o *Overlay) Lines(v mandelbrot.View, frame time.Duration) []string {
	lines := []string{
		o.printer.Sprintf("center %.10f %+.10fi", v.CenterReal, v.CenterImag),
		o.printer.Sprintf("zoom %.2f", v.Zoom),
		o.printer.Sprintf("iterations %d", v.MaxIterations),
	}
	if frame > 0 {
		ms := float64(frame) / float64(time.Millisecond)
		lines = append(lines, o.printer.Sprintf("frame %.2f ms", ms))
	}
	return lines
}

// Bounds returns the rectangle the panel for lines would cover.
func (o *Overlay) Bounds(lines []string) image.Rectangle {
	metrics := o.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(o.face, line).Ceil(); w > width {
			width = w
		}
	}
	return image.Rect(margin, margin,
		margin+width+2*padding, margin+len(lines)*lineHeight+2*padding)
}

// Draw paints the panel and lines into the top-left corner of dst.
// Drawing is clipped to dst's bounds.
func (o *Overlay) Draw(dst draw.Image, lines []string) {
	if len(lines) == 0 {
		return
	}
	panel := o.Bounds(lines).Add(dst.Bounds().Min)
	draw.Draw(dst, panel, image.NewUniform(Background), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(Foreground),
		Face: o.face,
	}
	metrics := o.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	x := panel.Min.X + padding
	y := panel.Min.Y + padding + metrics.Ascent.Ceil()
	for _, line := range lines {
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += lineHeight
	}
}
