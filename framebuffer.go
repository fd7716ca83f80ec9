package mandelbrot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// ErrSizeMismatch is returned when a byte slice does not match a grid.
var ErrSizeMismatch = errors.New("mandelbrot: buffer size does not match grid")

// FrameBuffer is a view of an RGBA8 pixel region as an image.
//
// It does not own its bytes: they belong to whoever lent them (usually a
// Host). A FrameBuffer must not be used after the backing handle is
// released.
type FrameBuffer struct {
	grid Grid
	data []byte
}

// NewFrameBuffer allocates a standalone frame buffer for g.
func NewFrameBuffer(g Grid) (*FrameBuffer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &FrameBuffer{grid: g, data: make([]byte, g.ByteSize())}, nil
}

// WrapFrameBuffer views data as a frame buffer for g without copying.
// len(data) must be exactly g.ByteSize().
func WrapFrameBuffer(data []byte, g Grid) (*FrameBuffer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(data) != g.ByteSize() {
		return nil, fmt.Errorf("%w: have %d bytes, %dx%d needs %d",
			ErrSizeMismatch, len(data), g.Width, g.Height, g.ByteSize())
	}
	return &FrameBuffer{grid: g, data: data}, nil
}

// Grid returns the pixel dimensions.
func (f *FrameBuffer) Grid() Grid {
	return f.grid
}

// Width returns the width in pixels.
func (f *FrameBuffer) Width() int {
	return f.grid.Width
}

// Height returns the height in pixels.
func (f *FrameBuffer) Height() int {
	return f.grid.Height
}

// Data returns the raw pixel bytes (RGBA, row-major).
func (f *FrameBuffer) Data() []byte {
	return f.data
}

// Render draws v into the buffer with k.
func (f *FrameBuffer) Render(k Kernel, v View) {
	k.RenderView(f.data, f.grid, v)
}

// Pixel returns the bytes of pixel (x, y), or zeros if out of bounds.
func (f *FrameBuffer) Pixel(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= f.grid.Width || y < 0 || y >= f.grid.Height {
		return 0, 0, 0, 0
	}
	i := (y*f.grid.Width + x) * BytesPerPixel
	return f.data[i], f.data[i+1], f.data[i+2], f.data[i+3]
}

// ToImage returns an *image.RGBA that shares the buffer's pixels.
// Drawing into the image draws into the frame buffer.
func (f *FrameBuffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    f.data,
		Stride: f.grid.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, f.grid.Width, f.grid.Height),
	}
}

// EncodePNG writes the buffer as a PNG image.
func (f *FrameBuffer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToImage()); err != nil {
		return fmt.Errorf("mandelbrot: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the buffer to a PNG file.
func (f *FrameBuffer) SavePNG(path string) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("mandelbrot: create file: %w", err)
	}
	if err := f.EncodePNG(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// At implements the image.Image interface.
func (f *FrameBuffer) At(x, y int) color.Color {
	r, g, b, a := f.Pixel(x, y)
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (f *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.grid.Width, f.grid.Height)
}

// ColorModel implements the image.Image interface.
func (f *FrameBuffer) ColorModel() color.Model {
	return color.RGBAModel
}
