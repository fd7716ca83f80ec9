package mandelbrot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/mandelbrot/internal/color"
)

// ErrUnknownPalette is returned by ParsePalette for unregistered names.
var ErrUnknownPalette = errors.New("mandelbrot: unknown palette")

// Palette maps an escape fraction t in [0, 1) to an opaque color.
// Points that never escape are painted black by the kernel and are not
// passed to the palette.
type Palette func(t float64) (r, g, b uint8)

// Hue is the default palette: the HSV hue follows t at full saturation and
// value.
func Hue(t float64) (r, g, b uint8) {
	return color.HueFast(t)
}

// Gray ramps from black to white as t grows.
func Gray(t float64) (r, g, b uint8) {
	v := color.Ramp(t)
	return v, v, v
}

// Fire ramps black → red → yellow → white.
func Fire(t float64) (r, g, b uint8) {
	return color.Ramp(3 * t), color.Ramp(3*t - 1), color.Ramp(3*t - 2)
}

var palettes = map[string]Palette{
	"hue":  Hue,
	"gray": Gray,
	"fire": Fire,
}

// ParsePalette returns the palette registered under name.
func ParsePalette(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownPalette, name, PaletteNames())
	}
	return p, nil
}

// PaletteNames returns the registered palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
