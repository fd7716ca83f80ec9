// Package color provides the lookup tables behind the fractal palettes.
//
// Converting a hue to RGB needs a sector switch and a few multiplies per
// pixel. The kernel colors every pixel of every frame, so the conversion is
// precomputed once into a table and looked up in O(1).
package color

import "math"

// hueLUTSize is the number of hue steps in the table.
// 4096 steps is finer than the 1530 distinct fully-saturated 8-bit hues.
const hueLUTSize = 4096

// hueLUT maps a hue in [0, 1) to fully saturated, full-value RGB bytes,
// packed as three consecutive bytes per entry.
var hueLUT [hueLUTSize * 3]uint8

func init() {
	for i := range hueLUTSize {
		r, g, b := HueSlow(float64(i) / hueLUTSize)
		hueLUT[i*3+0] = r
		hueLUT[i*3+1] = g
		hueLUT[i*3+2] = b
	}
}

// HueFast converts a hue fraction to RGB bytes using the lookup table.
//
// t wraps into [0, 1): 0 is red, 1/3 green, 2/3 blue. NaN maps to red.
//
// Example:
//
//	r, g, b := HueFast(1.0 / 3) // 0, 255, 0
func HueFast(t float64) (r, g, b uint8) {
	index := hueIndex(t)
	return hueLUT[index*3+0], hueLUT[index*3+1], hueLUT[index*3+2]
}

// hueIndex maps t onto a table index without allocating or calling math.Mod.
func hueIndex(t float64) int {
	t -= math.Floor(t)
	if !(t >= 0 && t < 1) { // NaN or ±Inf input
		return 0
	}
	index := int(t*hueLUTSize + 0.5)
	if index >= hueLUTSize {
		index = 0
	}
	return index
}

// HueSlow converts a hue fraction to RGB bytes with the HSV formula
// (saturation 1, value 1). It is the reference for the table.
func HueSlow(t float64) (r, g, b uint8) {
	h := math.Mod(t, 1)
	if h < 0 {
		h++
	}
	h *= 6
	sector := int(h)
	f := h - float64(sector)

	var rf, gf, bf float64
	switch sector {
	case 0:
		rf, gf, bf = 1, f, 0
	case 1:
		rf, gf, bf = 1-f, 1, 0
	case 2:
		rf, gf, bf = 0, 1, f
	case 3:
		rf, gf, bf = 0, 1-f, 1
	case 4:
		rf, gf, bf = f, 0, 1
	default:
		rf, gf, bf = 1, 0, 1-f
	}
	return toByte(rf), toByte(gf), toByte(bf)
}

// toByte converts a [0, 1] channel to a byte with rounding and clamping.
func toByte(v float64) uint8 {
	x := int(v*255 + 0.5)
	if x < 0 {
		x = 0
	}
	if x > 255 {
		x = 255
	}
	//nolint:gosec // G115: x is clamped to [0,255] range
	return uint8(x)
}

// Ramp maps t in [0, 1] linearly onto a byte, clamping outside the range.
func Ramp(t float64) uint8 {
	if t != t {
		return 0
	}
	return toByte(t)
}
