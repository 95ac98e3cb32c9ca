// Package tone implements the per-pixel color model applied to prints:
// multiplicative brightness and saturation, and a midpoint-preserving
// linear contrast. All functions are pure; a factor of 1 is a no-op.
package tone

import (
	"image/color"
	"math"
)

// clamp rounds and limits a channel value to [0, 255].
func clamp(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ContrastChannel applies the slope-intercept contrast transform to one
// channel:
//
//	out = in*factor + 128*(1-factor)
//
// Mid-gray (128) is an exact fixed point for any factor. This is what
// distinguishes the transform from a naive scale-from-zero contrast, which
// would darken the whole image as contrast increases.
func ContrastChannel(v uint8, factor float64) uint8 {
	return clamp(float64(v)*factor + 128*(1-factor))
}

// Contrast applies ContrastChannel to each color channel. Alpha is preserved.
func Contrast(c color.NRGBA, factor float64) color.NRGBA {
	return color.NRGBA{
		R: ContrastChannel(c.R, factor),
		G: ContrastChannel(c.G, factor),
		B: ContrastChannel(c.B, factor),
		A: c.A,
	}
}

// BrightnessSaturation applies multiplicative brightness gain followed by
// luminance-anchored saturation. Brightness scales all channels; saturation
// scales each channel's distance from the pixel's luma, so factor 0 would
// be grayscale and larger factors push colors apart monotonically.
func BrightnessSaturation(c color.NRGBA, brightness, saturation float64) color.NRGBA {
	r := float64(c.R) * brightness
	g := float64(c.G) * brightness
	b := float64(c.B) * brightness

	if saturation != 1 {
		// Rec. 601 luma weights.
		luma := 0.299*r + 0.587*g + 0.114*b
		r = luma + (r-luma)*saturation
		g = luma + (g-luma)*saturation
		b = luma + (b-luma)*saturation
	}

	return color.NRGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: c.A}
}

// Adjust composes the full color stage for one pixel: brightness and
// saturation first, then contrast. The stage order must match between the
// preview and print renderers or their outputs visibly diverge.
func Adjust(c color.NRGBA, brightness, saturation, contrast float64) color.NRGBA {
	if brightness != 1 || saturation != 1 {
		c = BrightnessSaturation(c, brightness, saturation)
	}
	if contrast != 1 {
		c = Contrast(c, contrast)
	}
	return c
}
