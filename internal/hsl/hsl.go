// Package hsl converts pixels between the stored RGB model and the
// hue/saturation/lightness model used by the HSL filter.
package hsl

import (
	"math"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
	"github.com/anas-shakeel/bmpedit/internal/utils"
)

// HSL is a color in the hue/saturation/lightness model.
// H is in degrees [0, 360], S and L are fractions in [0, 1].
type HSL struct {
	H, S, L float64
}

// FromPixel converts a pixel to HSL.
func FromPixel(p bmp.Pixel) HSL {
	return FromRGB(p.R, p.G, p.B)
}

// FromRGB converts 8-bit red, green and blue channels to HSL.
// Achromatic colors (max == min) get hue 0 and saturation 0.
func FromRGB(red, green, blue byte) HSL {
	r := float64(red) / 255
	g := float64(green) / 255
	b := float64(blue) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)

	var c HSL
	c.L = (hi + lo) / 2
	d := hi - lo
	if d == 0 {
		return c
	}

	c.S = d / (1 - math.Abs(2*c.L-1))
	switch {
	case r > g && r > b:
		// Sextants 5 and 0 straddle 360; fold the negative side back
		c.H = math.Abs(60 * math.Mod((g-b)/d+6, 6))
	case g > b:
		c.H = math.Abs(60 * ((b-r)/d + 2))
	default:
		c.H = math.Abs(60 * ((r-g)/d + 4))
	}
	return c
}

// Pixel converts c back to a pixel, rounding each channel half up.
// A hue outside [0, 360) matches no sextant and keeps only the offset m.
func (c HSL) Pixel() bmp.Pixel {
	chroma := (1 - math.Abs(2*c.L-1)) * c.S
	x := chroma * (1 - math.Abs(math.Mod(c.H/60, 2)-1))
	m := c.L - chroma/2

	var r, g, b float64
	switch {
	case c.H >= 0 && c.H < 60:
		r, g, b = chroma, x, 0
	case c.H >= 60 && c.H < 120:
		r, g, b = x, chroma, 0
	case c.H >= 120 && c.H < 180:
		r, g, b = 0, chroma, x
	case c.H >= 180 && c.H < 240:
		r, g, b = 0, x, chroma
	case c.H >= 240 && c.H < 300:
		r, g, b = x, 0, chroma
	case c.H >= 300 && c.H < 360:
		r, g, b = chroma, 0, x
	}

	return bmp.Pixel{
		B: utils.Round(255 * (b + m)),
		G: utils.Round(255 * (g + m)),
		R: utils.Round(255 * (r + m)),
	}
}

// Adjust shifts c by the given hue (degrees), saturation (percent) and
// lightness (percent) deltas. The lightness delta is applied at half
// strength. Each component is clamped to its range afterwards.
func (c HSL) Adjust(hue, saturation, lightness float64) HSL {
	return HSL{
		H: utils.Clamp(c.H+hue, 0, 360),
		S: utils.Clamp(c.S+saturation/100, 0, 1),
		L: utils.Clamp(c.L+lightness/200, 0, 1),
	}
}
