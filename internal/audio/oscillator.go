package audio

import (
	"context"
	"math"
	"time"
)

// Oscillator is a synthetic source: a slow swell with a short loud pulse at a
// fixed period. It stands in for the microphone in demo runs.
type Oscillator struct {
	Base   float64       // floor level
	Swell  float64       // swell amplitude on top of Base
	Pulse  float64       // level during a pulse
	Period time.Duration // time between pulses
	Width  time.Duration // pulse length

	now   func() time.Time
	start time.Time
}

func NewOscillator() *Oscillator {
	return &Oscillator{
		Base:   0.02,
		Swell:  0.08,
		Pulse:  0.45,
		Period: 2 * time.Second,
		Width:  120 * time.Millisecond,
		now:    time.Now,
	}
}

func (o *Oscillator) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.start = o.now()
	return nil
}

func (o *Oscillator) Level() float64 {
	if o.start.IsZero() {
		return 0
	}
	el := o.now().Sub(o.start)
	swell := 0.5 + 0.5*math.Sin(2*math.Pi*el.Seconds()/8)
	level := o.Base + o.Swell*swell
	if o.Period > 0 && el%o.Period < o.Width {
		level = o.Pulse
	}
	return math.Min(math.Max(level, 0), 1)
}

func (o *Oscillator) Stop() error {
	o.start = time.Time{}
	return nil
}
