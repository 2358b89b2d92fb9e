package sim

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/harmonica"

	"github.com/Jimin-park1013/delulu-dreams/core/colour"
	"github.com/Jimin-park1013/delulu-dreams/core/particle"
	"github.com/Jimin-park1013/delulu-dreams/core/theme"
	"github.com/Jimin-park1013/delulu-dreams/core/trigger"
	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
	"github.com/Jimin-park1013/delulu-dreams/internal/utils"
)

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3

	ringBase   = 50.0
	ringGain   = 400.0
	ringWidth  = 2.0
	burstSpeed = particle.MaxSpeed

	washAlpha = 30.0 / 255
)

// dreamWash is the fixed night-blue trail wash of the shape variant.
var dreamWash = colour.New(240, 0.5, 40.0/255, washAlpha)

// State is the whole simulation. It is owned by one controller and mutated
// only from the frame callback.
type State struct {
	params Params
	logger *game_log.Logger

	w, h  float64
	frame int
	level float64

	rng   *rand.Rand
	noise *perlin.Perlin

	particles *particle.Population[particle.Particle]
	shapes    *particle.Population[particle.Shape]
	trigger   *trigger.Detector
	theme     *theme.Cycler

	ring         harmonica.Spring
	ringR, ringV float64

	flickers []Flicker
	bursts   int

	// OnBurst, if set, runs after a burst has been appended.
	OnBurst func(count int)
}

// New builds a simulation for a w×h surface. Params must already be valid.
func New(p Params, w, h float64, logger *game_log.Logger) *State {
	s := &State{
		params: p,
		logger: logger,
		w:      w,
		h:      h,
		ring:   harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.5),
	}
	s.Reset()
	return s
}

// Reset returns every piece of state to its initial value, including the
// random source, so a restarted run replays identically.
func (s *State) Reset() {
	seed := s.params.Seed
	s.rng = rand.New(rand.NewPCG(seed, seed^0x5eed))
	s.noise = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, int64(seed))
	s.frame = 0
	s.level = 0
	s.bursts = 0
	s.ringR, s.ringV = ringBase, 0
	s.flickers = s.flickers[:0]

	s.trigger = trigger.NewDetector(s.params.Threshold, s.params.Cooldown)
	s.theme = theme.NewCycler(s.params.ThemeDuration)

	switch s.params.Mode {
	case ModeDream:
		s.shapes = particle.NewPopulation[particle.Shape](s.params.Capacity)
		s.particles = particle.NewPopulation[particle.Particle](1)
	default:
		s.particles = particle.NewPopulation[particle.Particle](s.params.Capacity)
		s.shapes = particle.NewPopulation[particle.Shape](1)
		s.spawnInitial(s.params.Initial)
	}
	s.logger.Debugf("[SIM] Reset: mode=%s cap=%d initial=%d seed=%d surface=%.0fx%.0f",
		s.params.Mode, s.params.Capacity, s.particles.Len(), seed, s.w, s.h)
}

func (s *State) spawnInitial(n int) {
	for i := 0; i < n; i++ {
		s.particles.Push(particle.New(s.rng, s.w, s.h))
	}
}

// Resize changes the surface. Live entities are kept; wraparound folds any
// that fall outside the new bounds on their next update.
func (s *State) Resize(w, h float64) {
	if w == s.w && h == s.h {
		return
	}
	s.logger.Infof("[SIM] Resize: %.0fx%.0f -> %.0fx%.0f (keeping %d entities)", s.w, s.h, w, h, s.particles.Len()+s.shapes.Len())
	s.w, s.h = w, h
}

// Burst appends count particles at the centre of the surface, flying outward,
// and returns how many old particles were evicted to stay within capacity.
func (s *State) Burst(count int) int {
	c := particle.Vec{X: s.w / 2, Y: s.h / 2}
	batch := make([]particle.Particle, count)
	for i := range batch {
		vel := particle.FromAngle(s.rng.Float64()*2*math.Pi, (0.4+0.6*s.rng.Float64())*burstSpeed)
		batch[i] = particle.NewAt(s.rng, c, vel)
	}
	evicted := s.particles.Push(batch...)
	s.bursts++
	if s.OnBurst != nil {
		s.OnBurst(count)
	}
	return evicted
}

// Step advances one frame with the sampled amplitude and describes what to
// draw. The order is fixed: level, theme, trigger, wash, ring, entities,
// flicker.
func (s *State) Step(level float64) Frame {
	if !utils.Finite(level) {
		level = 0
	}
	s.level = utils.Clamp(level, 0, 1)

	f := Frame{Index: s.frame, Level: s.level, W: s.w, H: s.h, Mode: s.params.Mode}

	if s.params.Mode == ModeDream {
		f.Wash = dreamWash
		s.stepShapes()
		f.Shapes = s.shapes.Items()
		s.frame++
		return f
	}

	if s.params.Themed && s.theme.Tick() {
		s.logger.Debugf("[SIM] Theme -> %s at frame %d", s.theme.Current().Name, s.frame)
	}

	if s.trigger.Step(s.level) {
		evicted := s.Burst(s.params.BurstSize)
		f.Flash = true
		s.logger.Debugf("[SIM] Burst at frame %d: level=%.3f added=%d evicted=%d", s.frame, s.level, s.params.BurstSize, evicted)
	}

	hue := s.hue()
	f.Wash = colour.New(hue, 0.5, 0.08, washAlpha)
	if f.Flash {
		f.Wash = colour.New(hue, 0.15, 1, 0.35)
	}

	s.ringR, s.ringV = s.ring.Update(s.ringR, s.ringV, ringBase+s.level*ringGain)
	f.Ring = Ring{
		X: s.w / 2, Y: s.h / 2, R: math.Max(0, s.ringR), Width: ringWidth,
		Colour: colour.New(hue, 0.4, 1, 0.15+s.level*0.6),
	}

	env := particle.Env{W: s.w, H: s.h, Frame: s.frame, Noise: s.noise}
	if s.params.Themed {
		env.Theme = s.theme
	}
	s.particles.Each(func(p *particle.Particle) { particle.Update(p, env, s.level) })
	f.Particles = s.particles.Items()

	f.Flickers = s.flicker(hue)
	s.frame++
	return f
}

func (s *State) stepShapes() {
	for i, n := 0, particle.TrickleCount(s.level); i < n; i++ {
		s.shapes.Push(particle.NewShape(s.rng, s.w, s.h, s.level))
	}
	s.shapes.Retain(func(sh *particle.Shape) bool {
		particle.UpdateShape(sh, s.h)
		return !sh.Expired()
	})
}

func (s *State) flicker(hue float64) []Flicker {
	s.flickers = s.flickers[:0]
	for i := 0; i < s.params.FlickerCount; i++ {
		size := (1 + s.rng.Float64()*2) * (1 + s.level*3)
		alpha := (20 + s.rng.Float64()*100) * (0.3 + s.level) / 255
		s.flickers = append(s.flickers, Flicker{
			X:      s.rng.Float64() * s.w,
			Y:      s.rng.Float64() * s.h,
			Size:   size,
			Colour: colour.New(hue, 0.1, 1, alpha),
		})
	}
	return s.flickers
}

func (s *State) hue() float64 {
	if !s.params.Themed {
		return particle.TagMist.Hue()
	}
	return s.theme.Hue(s.level)
}

func (s *State) Params() Params { return s.params }

func (s *State) Size() (w, h float64) { return s.w, s.h }

func (s *State) FrameIndex() int { return s.frame }

func (s *State) Level() float64 { return s.level }

// Population returns the live entity count for the active mode.
func (s *State) Population() int {
	if s.params.Mode == ModeDream {
		return s.shapes.Len()
	}
	return s.particles.Len()
}

func (s *State) Particles() []particle.Particle { return s.particles.Items() }

func (s *State) Shapes() []particle.Shape { return s.shapes.Items() }

func (s *State) TriggerState() trigger.State { return s.trigger.State() }

func (s *State) ThemeIndex() int { return s.theme.Index() }

// Bursts is the number of bursts fired since the last Reset.
func (s *State) Bursts() int { return s.bursts }
