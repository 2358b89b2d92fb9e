package sim

import (
	"github.com/Jimin-park1013/delulu-dreams/core/colour"
	"github.com/Jimin-park1013/delulu-dreams/core/particle"
)

// Frame is everything the renderer needs to paint one frame, in draw order:
// wash, ring, particles (or shapes), flicker. Slices alias simulation storage
// and are only valid until the next Step.
type Frame struct {
	Index int
	Level float64
	W, H  float64
	Mode  Mode

	Wash  colour.HSBA
	Flash bool // a burst fired this frame

	Ring      Ring
	Particles []particle.Particle
	Shapes    []particle.Shape
	Flickers  []Flicker
}

// Ring is the decorative circle centred on the surface.
type Ring struct {
	X, Y, R float64
	Width   float64
	Colour  colour.HSBA
}

// Flicker is a one-frame ambient point; nothing about it is retained.
type Flicker struct {
	X, Y, Size float64
	Colour     colour.HSBA
}
