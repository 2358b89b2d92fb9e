package audio

import (
	"math"
	"sync/atomic"
)

// EnvelopeConfig shapes the level follower. Attack and Release are per-buffer
// smoothing factors in (0,1]; Gain scales raw RMS before clamping.
type EnvelopeConfig struct {
	Attack  float64
	Release float64
	Gain    float64
}

func DefaultEnvelopeConfig() EnvelopeConfig {
	return EnvelopeConfig{Attack: 0.5, Release: 0.1, Gain: 4}
}

// Envelope follows the RMS loudness of an audio stream. One goroutine (the
// audio callback) writes; any goroutine may read Level without locking.
type Envelope struct {
	cfg   EnvelopeConfig
	level atomic.Uint64 // float64 bits
}

func NewEnvelope(cfg EnvelopeConfig) *Envelope {
	return &Envelope{cfg: cfg}
}

// Process folds one buffer of samples into the envelope.
func (e *Envelope) Process(samples []float32) {
	if len(samples) == 0 {
		return
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	e.ProcessRMS(math.Sqrt(sum / float64(len(samples))))
}

// ProcessRMS folds an already computed RMS value into the envelope.
func (e *Envelope) ProcessRMS(rms float64) {
	if math.IsNaN(rms) || math.IsInf(rms, 0) {
		return
	}
	target := math.Min(math.Max(rms*e.cfg.Gain, 0), 1)
	cur := e.Level()
	k := e.cfg.Release
	if target > cur {
		k = e.cfg.Attack
	}
	next := cur + (target-cur)*k
	e.level.Store(math.Float64bits(math.Min(math.Max(next, 0), 1)))
}

func (e *Envelope) Level() float64 {
	return math.Float64frombits(e.level.Load())
}

func (e *Envelope) Reset() { e.level.Store(0) }
