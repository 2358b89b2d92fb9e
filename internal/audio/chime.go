package audio

import (
	"sync"

	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
)

// pentatonic steps used for burst chimes, in Hz.
var chimeScale = []float64{523.25, 587.33, 659.25, 783.99, 880.00}

// Chime plays a short arpeggio whenever a burst fires. The output device is
// opened on the first Ring; if it cannot be opened the chime goes quiet.
type Chime struct {
	Gain   float64
	logger *game_log.Logger

	once sync.Once
	mix  *mixer
	ok   bool
	next int
}

func NewChime(gain float64, logger *game_log.Logger) *Chime {
	return &Chime{Gain: gain, logger: logger, mix: &mixer{}}
}

func (c *Chime) open() {
	if err := openOutput(c.mix); err != nil {
		c.logger.Warnf("[CHIME] Audio output unavailable: %v", err)
		return
	}
	c.ok = true
	c.logger.Debugf("[CHIME] Output opened at %d Hz", sampleRate)
}

// Ring schedules notes for a burst of count particles. Larger bursts ring
// more notes, up to the length of the scale.
func (c *Chime) Ring(count int) {
	if c == nil || c.Gain <= 0 || count <= 0 {
		return
	}
	c.once.Do(c.open)
	if !c.ok {
		return
	}
	notes := 1 + count/30
	if notes > len(chimeScale) {
		notes = len(chimeScale)
	}
	for i := 0; i < notes; i++ {
		f := chimeScale[(c.next+i*2)%len(chimeScale)]
		c.mix.Schedule(Ping{Freq: f, Gain: c.Gain, Dur: 0.6}.NewVoice(sampleRate), i*sampleRate/12)
	}
	c.next = (c.next + 1) % len(chimeScale)
}
