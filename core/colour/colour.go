// Package colour holds the explicit hue/saturation/brightness/alpha value used
// by the simulation. Conversion to screen RGB happens only in ToNRGBA.
package colour

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSBA is a colour in HSB space. H is in degrees, S, B and A in [0,1].
type HSBA struct {
	H, S, B, A float64
}

// New builds an HSBA, normalising hue into [0,360).
func New(h, s, b, a float64) HSBA {
	return HSBA{H: normHue(h), S: unit(s), B: unit(b), A: unit(a)}
}

// WithAlpha returns a copy with a replaced alpha.
func (c HSBA) WithAlpha(a float64) HSBA {
	c.A = unit(a)
	return c
}

// ToNRGBA converts to a non-premultiplied 8-bit colour for drawing.
func (c HSBA) ToNRGBA() color.NRGBA {
	rgb := colorful.Hsv(normHue(c.H), unit(c.S), unit(c.B)).Clamped()
	r, g, b := rgb.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(unit(c.A) * 255))}
}

func normHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
