// Filters perform color manipulation and per-pixel operations
package filters

import (
	"math"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
	"github.com/anas-shakeel/bmpedit/internal/hsl"
	"github.com/anas-shakeel/bmpedit/internal/utils"
)

// lut maps every channel value to a new one
type lut [256]byte

// Runs every channel of every pixel through the table
func (t *lut) apply(g *bmp.Grid) {
	for i, p := range g.Pix {
		g.Pix[i] = bmp.Pixel{B: t[p.B], G: t[p.G], R: t[p.R]}
	}
}

// Shifts hue (degrees), saturation and lightness (percent) of every pixel
func HueSaturationLightness(g *bmp.Grid, hue, saturation, lightness float64) {
	for i, p := range g.Pix {
		g.Pix[i] = hsl.FromPixel(p).Adjust(hue, saturation, lightness).Pixel()
	}
}

// Adjusts the Contrast of a grid in-place around mid-gray (128).
// contrast is in [-100, 100]; 0 leaves the image unchanged.
func Contrast(g *bmp.Grid, contrast float64) {
	c := 2.5 * contrast
	coeff := (259 * (c + 255)) / (255 * (259 - c))

	var t lut
	for i := range t {
		t[i] = utils.Round(utils.Clamp(coeff*float64(i-128)+128, 0, 255))
	}
	t.apply(g)
}

// Gains are the per-channel factors of a gray-world white balance.
// Green is the reference channel and is never scaled.
type Gains struct {
	R, B float64
}

// GrayWorldGains computes the gains that bring the mean red and blue of g
// to the mean green. A channel whose mean is zero keeps a gain of 1.
func GrayWorldGains(g *bmp.Grid) Gains {
	gains := Gains{R: 1, B: 1}
	if len(g.Pix) == 0 {
		return gains
	}

	var sumR, sumG, sumB float64
	for _, p := range g.Pix {
		sumR += float64(p.R)
		sumG += float64(p.G)
		sumB += float64(p.B)
	}
	n := float64(len(g.Pix))
	meanR, meanG, meanB := sumR/n, sumG/n, sumB/n

	if meanR > 0 {
		gains.R = meanG / meanR
	}
	if meanB > 0 {
		gains.B = meanG / meanB
	}
	return gains
}

// Apply scales red and blue of every pixel in g by the gains.
func (k Gains) Apply(g *bmp.Grid) {
	for i, p := range g.Pix {
		r := min(k.R*float64(p.R), 255)
		b := min(k.B*float64(p.B), 255)
		g.Pix[i] = bmp.Pixel{B: utils.Round(b), G: p.G, R: utils.Round(r)}
	}
}

// Automatic white balance using the Gray World assumption
func WhiteBalance(g *bmp.Grid) {
	GrayWorldGains(g).Apply(g)
}

// Applies gamma correction; gamma > 1 brightens, gamma < 1 darkens.
func Gamma(g *bmp.Grid, gamma float64) {
	var t lut
	for i := range t {
		t[i] = utils.Round(min(255*math.Pow(float64(i)/255, 1/gamma), 255))
	}
	t.apply(g)
}

// Turns every pixel black or white depending on its mean intensity.
// threshold is a fraction in [0, 1].
func Threshold(g *bmp.Grid, threshold float64) {
	for i, p := range g.Pix {
		intensity := float64(int(p.R)+int(p.G)+int(p.B)) / (255 * 3)
		if intensity < threshold {
			g.Pix[i] = bmp.Pixel{}
		} else {
			g.Pix[i] = bmp.Pixel{B: 255, G: 255, R: 255}
		}
	}
}

// Converts a grid to Black-and-White (with Rec. 709 luminance)
func Greyscale(g *bmp.Grid) {
	for i, p := range g.Pix {
		L := utils.Round(0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B))
		g.Pix[i] = bmp.Pixel{B: L, G: L, R: L}
	}
}

// Gives the image a warm, brownish tone
func Sepia(g *bmp.Grid) {
	for i, p := range g.Pix {
		r, gr, b := float64(p.R), float64(p.G), float64(p.B)

		red := min(r*0.393+gr*0.769+b*0.189, 255)
		green := min(r*0.349+gr*0.686+b*0.168, 255)
		blue := min(r*0.272+gr*0.534+b*0.131, 255)

		g.Pix[i] = bmp.Pixel{B: utils.Round(blue), G: utils.Round(green), R: utils.Round(red)}
	}
}

// Inverts (negates) the grid
func Invert(g *bmp.Grid) {
	for i, p := range g.Pix {
		g.Pix[i] = bmp.Pixel{B: 255 - p.B, G: 255 - p.G, R: 255 - p.R}
	}
}
