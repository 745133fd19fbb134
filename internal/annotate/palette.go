// Package annotate renders match results back onto the searched image:
// one color per query, a border around every matched candidate box, and a
// small label tag naming the query. It draws whatever the resolver
// decided; no similarity logic lives here.
package annotate

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct colors by spacing hues evenly around
// the HSV wheel at fixed saturation and value. Deterministic: the same n
// always yields the same colors, so a query keeps its color across runs.
func Palette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		c := colorful.Hsv(float64(i)*360.0/float64(n), 0.9, 0.95)
		r, g, b := c.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// textColor picks black or white for readable text over the given color,
// using perceptual lightness rather than raw RGB brightness.
func textColor(c color.RGBA) color.RGBA {
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, _, _ := cc.Lab()
	if l > 0.6 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// hexColor formats a color the way web tooling expects it.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
