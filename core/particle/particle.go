package particle

import (
	"math"
	"math/rand/v2"

	"github.com/Jimin-park1013/delulu-dreams/core/colour"
	"github.com/Jimin-park1013/delulu-dreams/internal/utils"
)

// Motion and look constants. These are tuned by eye.
const (
	MaxSpeed      = 1.2
	FlowScale     = 0.005 // position -> noise space
	FlowTimeScale = 0.002 // frame -> noise space
	FlowForce     = 0.05
	BuoyancyForce = 0.05
	SizeBase      = 3.0
	SizeGain      = 6.0
	SizeEase      = 0.1
	HueEase       = 0.05
	AlphaMin      = 50.0
	AlphaMax      = 255.0
	Elongation    = 2.5
	Saturation    = 0.6
)

// Tag is a fixed colour family assigned at creation. It decides the hue when
// no theme is driving colour.
type Tag uint8

const (
	TagMist Tag = iota
	TagRose
	TagIce
	TagGold
	tagCount
)

var tagHues = [tagCount]float64{260, 330, 190, 45}

func (t Tag) Hue() float64 {
	if t >= tagCount {
		return tagHues[TagMist]
	}
	return tagHues[t]
}

// Particle is a plain record advanced by Update. Alpha is derived from speed
// on every update and is not integrated.
type Particle struct {
	Pos, Vel, Acc Vec
	Size          float64
	Alpha         float64 // 0..255
	Angle, Spin   float64
	Hue           float64
	Drift         float64 // +1 rises with volume, -1 sinks
	Tag           Tag
}

// Noise samples a 3D noise field. *perlin.Perlin satisfies it.
type Noise interface {
	Noise3D(x, y, z float64) float64
}

// HueTarget maps volume to a hue. *theme.Cycler satisfies it.
type HueTarget interface {
	Hue(volume float64) float64
}

// Env is the per-frame context shared by every particle update.
type Env struct {
	W, H  float64
	Frame int
	Noise Noise
	Theme HueTarget // nil keeps each particle on its tag hue
}

// New creates a particle at a random position on a w×h surface.
func New(rng *rand.Rand, w, h float64) Particle {
	return NewAt(rng, Vec{rng.Float64() * w, rng.Float64() * h}, Vec{})
}

// NewAt creates a particle at pos with an initial velocity.
func NewAt(rng *rand.Rand, pos, vel Vec) Particle {
	tag := Tag(rng.IntN(int(tagCount)))
	drift := 1.0
	if rng.IntN(2) == 0 {
		drift = -1
	}
	return Particle{
		Pos:   pos,
		Vel:   vel.Limit(MaxSpeed),
		Size:  SizeBase,
		Alpha: AlphaMin,
		Angle: rng.Float64() * 2 * math.Pi,
		Spin:  (rng.Float64()*2 - 1) * 0.02,
		Hue:   tag.Hue(),
		Drift: drift,
		Tag:   tag,
	}
}

// Update advances p by one frame.
func Update(p *Particle, env Env, volume float64) {
	if env.Noise != nil {
		n := env.Noise.Noise3D(p.Pos.X*FlowScale, p.Pos.Y*FlowScale, float64(env.Frame)*FlowTimeScale)
		// A bad sample only costs this frame's flow impulse.
		if utils.Finite(n) {
			p.Acc = p.Acc.Add(FromAngle(n*2*math.Pi*2, FlowForce))
		}
	}
	p.Acc = p.Acc.Add(Vec{0, -p.Drift * volume * BuoyancyForce})

	p.Vel = p.Vel.Add(p.Acc).Limit(MaxSpeed)
	p.Pos = p.Pos.Add(p.Vel)
	p.Acc = Vec{}

	p.Angle += p.Spin
	p.Size = utils.Ease(p.Size, SizeBase+volume*SizeGain, SizeEase)
	p.Alpha = utils.Map(p.Vel.Len(), 0, MaxSpeed, AlphaMin, AlphaMax, true)

	p.Pos.X = utils.Wrap(p.Pos.X, env.W)
	p.Pos.Y = utils.Wrap(p.Pos.Y, env.H)

	if env.Theme != nil {
		p.Hue = utils.Ease(p.Hue, env.Theme.Hue(volume), HueEase)
	}
}

// Colour is the fill colour for drawing.
func (p *Particle) Colour() colour.HSBA {
	return colour.New(p.Hue, Saturation, 1, p.Alpha/AlphaMax)
}

// Radii returns the ellipse half-axes; the long axis is along local x.
func (p *Particle) Radii() (rx, ry float64) {
	return p.Size * Elongation / 2, p.Size / 2
}
