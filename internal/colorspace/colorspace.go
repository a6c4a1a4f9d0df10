// Package colorspace provides the per-pixel colour conversions used by
// colorsplit.
//
// All functions are pure: they read three 8-bit channels and return 8-bit
// results, with no shared state. Every intermediate value is truncated toward
// zero exactly where the conversion defines it, so callers that split an image
// across workers get the same bytes as a single pass.
package colorspace

import "math"

// Luma weights (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Gray returns the luminance of an RGB pixel, truncated to an integer.
func Gray(r, g, b uint8) uint8 {
	// The explicit float64 conversions keep each product rounded on its own,
	// which forbids fused multiply-add on architectures that have it.
	sum := float64(lumaR*float64(r)) + float64(lumaG*float64(g))
	sum += float64(lumaB * float64(b))
	return uint8(sum)
}

// HSV converts an RGB pixel to hue, saturation and value, each scaled to
// [0, 255] and truncated.
//
// Hue is selected by the first channel equal to the maximum, checked in the
// order red, green, blue. Pure grays (zero chroma) have hue 0.
func HSV(r, g, b uint8) (h, s, v uint8) {
	rn := float64(r) / 255.0
	gn := float64(g) / 255.0
	bn := float64(b) / 255.0

	cmax := max(rn, gn, bn)
	cmin := min(rn, gn, bn)
	delta := cmax - cmin

	v = uint8(float64(cmax * 255))

	if cmax != 0 {
		s = uint8(float64(delta / cmax * 255))
	}

	var hue float64
	if delta != 0 {
		switch cmax {
		case rn:
			hue = 60 * floorMod((gn-bn)/delta, 6)
		case gn:
			hue = 60 * ((bn-rn)/delta + 2)
		default:
			hue = 60 * ((rn-gn)/delta + 4)
		}
		if hue < 0 {
			hue += 360
		}
	}
	h = uint8(float64(hue / 360 * 255))

	return h, s, v
}

// floorMod returns x mod m with the sign of m, so the result for m > 0 always
// lies in [0, m).
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}
