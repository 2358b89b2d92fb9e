package particle

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aquilax/go-perlin"
)

type constNoise float64

func (c constNoise) Noise3D(_, _, _ float64) float64 { return float64(c) }

type fixedHue float64

func (f fixedHue) Hue(float64) float64 { return float64(f) }

func testRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func TestUpdateKeepsInvariants(t *testing.T) {
	rng := testRand(1)
	env := Env{W: 320, H: 200, Noise: perlin.NewPerlin(2, 2, 3, 7)}
	ps := make([]Particle, 64)
	for i := range ps {
		ps[i] = New(rng, env.W, env.H)
		ps[i].Vel = Vec{rng.Float64()*10 - 5, rng.Float64()*10 - 5}
	}
	for frame := 0; frame < 500; frame++ {
		env.Frame = frame
		vol := rng.Float64()
		for i := range ps {
			p := &ps[i]
			Update(p, env, vol)
			if s := p.Vel.Len(); s > MaxSpeed {
				t.Fatalf("frame %d particle %d speed %v > %v", frame, i, s, MaxSpeed)
			}
			if p.Pos.X < 0 || p.Pos.X >= env.W || p.Pos.Y < 0 || p.Pos.Y >= env.H {
				t.Fatalf("frame %d particle %d at %+v outside surface", frame, i, p.Pos)
			}
			if p.Acc != (Vec{}) {
				t.Fatalf("acceleration not reset: %+v", p.Acc)
			}
			if p.Alpha < AlphaMin || p.Alpha > AlphaMax {
				t.Fatalf("alpha %v outside [%v,%v]", p.Alpha, AlphaMin, AlphaMax)
			}
		}
	}
}

func TestWrapAcrossEachEdge(t *testing.T) {
	env := Env{W: 100, H: 50}
	cases := []struct {
		pos, vel Vec
		want     Vec
	}{
		{Vec{0.5, 10}, Vec{-1, 0}, Vec{99.5, 10}},
		{Vec{99.5, 10}, Vec{1, 0}, Vec{0.5, 10}},
		{Vec{10, 0.5}, Vec{0, -1}, Vec{10, 49.5}},
		{Vec{10, 49.5}, Vec{0, 1}, Vec{10, 0.5}},
	}
	for _, c := range cases {
		p := Particle{Pos: c.pos, Vel: c.vel}
		Update(&p, env, 0)
		if math.Abs(p.Pos.X-c.want.X) > 1e-9 || math.Abs(p.Pos.Y-c.want.Y) > 1e-9 {
			t.Fatalf("from %+v vel %+v got %+v want %+v", c.pos, c.vel, p.Pos, c.want)
		}
	}
}

func TestSizeEasesTowardVolumeTarget(t *testing.T) {
	p := Particle{Size: SizeBase}
	env := Env{W: 10, H: 10}
	Update(&p, env, 1)
	want := SizeBase + (SizeBase+SizeGain-SizeBase)*SizeEase
	if math.Abs(p.Size-want) > 1e-9 {
		t.Fatalf("size=%v want %v", p.Size, want)
	}
	for i := 0; i < 200; i++ {
		Update(&p, env, 1)
	}
	if math.Abs(p.Size-(SizeBase+SizeGain)) > 1e-6 {
		t.Fatalf("size did not converge: %v", p.Size)
	}
}

func TestAlphaFollowsSpeed(t *testing.T) {
	env := Env{W: 100, H: 100}
	still := Particle{Pos: Vec{50, 50}}
	Update(&still, env, 0)
	if still.Alpha != AlphaMin {
		t.Fatalf("still alpha=%v want %v", still.Alpha, AlphaMin)
	}
	fast := Particle{Pos: Vec{50, 50}, Vel: Vec{5, 0}}
	Update(&fast, env, 0)
	if math.Abs(fast.Alpha-AlphaMax) > 1e-6 {
		t.Fatalf("fast alpha=%v want %v", fast.Alpha, AlphaMax)
	}
}

func TestBuoyancyDirection(t *testing.T) {
	env := Env{W: 100, H: 100}
	up := Particle{Pos: Vec{50, 50}, Drift: 1}
	Update(&up, env, 1)
	if up.Vel.Y >= 0 {
		t.Fatalf("rising particle vel.y=%v want < 0", up.Vel.Y)
	}
	down := Particle{Pos: Vec{50, 50}, Drift: -1}
	Update(&down, env, 1)
	if down.Vel.Y <= 0 {
		t.Fatalf("sinking particle vel.y=%v want > 0", down.Vel.Y)
	}
}

func TestNonFiniteNoiseSkipsFlow(t *testing.T) {
	env := Env{W: 100, H: 100, Noise: constNoise(math.NaN())}
	p := Particle{Pos: Vec{50, 50}}
	Update(&p, env, 0)
	if p.Vel != (Vec{}) || p.Pos != (Vec{50, 50}) {
		t.Fatalf("NaN noise moved particle: vel=%+v pos=%+v", p.Vel, p.Pos)
	}

	env.Noise = constNoise(0)
	Update(&p, env, 0)
	if math.Abs(p.Vel.X-FlowForce) > 1e-12 || math.Abs(p.Vel.Y) > 1e-12 {
		t.Fatalf("zero noise should push +x by %v, got %+v", FlowForce, p.Vel)
	}
}

func TestHueEasesTowardTheme(t *testing.T) {
	env := Env{W: 10, H: 10, Theme: fixedHue(100)}
	p := Particle{Hue: 0}
	Update(&p, env, 0.5)
	if math.Abs(p.Hue-5) > 1e-9 {
		t.Fatalf("hue=%v want 5", p.Hue)
	}
	env.Theme = nil
	Update(&p, env, 0.5)
	if math.Abs(p.Hue-5) > 1e-9 {
		t.Fatalf("hue moved without theme: %v", p.Hue)
	}
}

func TestSeededTrajectoriesRepeat(t *testing.T) {
	trace := func() []Vec {
		rng := testRand(42)
		env := Env{W: 640, H: 480, Noise: perlin.NewPerlin(2, 2, 3, 99)}
		p := New(rng, env.W, env.H)
		var out []Vec
		for f := 0; f < 120; f++ {
			env.Frame = f
			Update(&p, env, 0.2)
			out = append(out, p.Pos)
		}
		return out
	}
	a, b := trace(), trace()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trajectories diverged at frame %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLimitNeverExceeds(t *testing.T) {
	rng := testRand(3)
	for i := 0; i < 10000; i++ {
		v := Vec{rng.NormFloat64() * 10, rng.NormFloat64() * 10}
		if l := v.Limit(MaxSpeed).Len(); l > MaxSpeed {
			t.Fatalf("Limit(%+v) len=%v", v, l)
		}
	}
}

func TestParticleLook(t *testing.T) {
	p := Particle{Size: 4, Hue: 120, Alpha: AlphaMax}
	rx, ry := p.Radii()
	if rx != 5 || ry != 2 {
		t.Fatalf("radii=(%v,%v) want (5,2)", rx, ry)
	}
	c := p.Colour()
	if c.H != 120 || c.A != 1 || c.S != Saturation {
		t.Fatalf("colour=%+v", c)
	}
	if TagGold.Hue() != 45 || Tag(200).Hue() != TagMist.Hue() {
		t.Fatalf("tag hues wrong")
	}
}
