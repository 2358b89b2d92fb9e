package audio

import (
	"math"
	"sync"
)

const (
	sampleRate          = 44100
	bufferSizeBytes10ms = sampleRate / 100 * 2 // 10ms of 16-bit mono audio
)

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// Ping is a short decaying sine, the sound of a burst.
type Ping struct {
	Freq float64 // Hz
	Gain float64 // peak amplitude
	Dur  float64 // seconds
}

func (p Ping) NewVoice(sampleRate int) Voice {
	n := int(float64(sampleRate) * p.Dur)
	return &pingVoice{n: n, sr: float64(sampleRate), freq: p.Freq, gain: p.Gain}
}

type pingVoice struct {
	i, n  int
	sr    float64
	freq  float64
	gain  float64
	phase float64
}

func (v *pingVoice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	t := float64(v.i) / float64(v.n)
	v.phase += 2 * math.Pi * v.freq / v.sr
	// Short linear attack keeps the onset click-free.
	att := math.Min(float64(v.i)/(v.sr*0.005), 1)
	out := math.Sin(v.phase) * v.gain * att * math.Exp(-6*t)
	v.i++
	return out, false
}

// maxVoices bounds the chime polyphony; the oldest note is cut first.
const maxVoices = 16

// mixer sums scheduled voices into one 16-bit mono stream. The sum passes
// through a tanh limiter so stacked chimes saturate smoothly instead of
// clipping.
type mixer struct {
	mu     sync.Mutex
	queue  []scheduled
	pos    int64
	render []float64
}

type scheduled struct {
	at int64 // absolute sample index of the first sample
	v  Voice
}

// Schedule adds a voice to start after delaySamples have elapsed.
func (m *mixer) Schedule(v Voice, delaySamples int) {
	if delaySamples < 0 {
		delaySamples = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) >= maxVoices {
		n := copy(m.queue, m.queue[1:])
		m.queue[n] = scheduled{}
		m.queue = m.queue[:n]
	}
	m.queue = append(m.queue, scheduled{at: m.pos + int64(delaySamples), v: v})
}

// Pending reports how many voices are queued or still sounding.
func (m *mixer) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Read implements io.Reader for oto.Player.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()

	if cap(m.render) < samples {
		m.render = make([]float64, samples)
	}
	buf := m.render[:samples]
	clear(buf)

	// Render voice by voice, keeping the ones still sounding in place.
	kept := m.queue[:0]
	for _, s := range m.queue {
		from := s.at - m.pos
		if from >= int64(samples) {
			kept = append(kept, s)
			continue
		}
		finished := false
		for i := max(from, 0); i < int64(samples); i++ {
			v, done := s.v.Sample()
			if done {
				finished = true
				break
			}
			buf[i] += v
		}
		if !finished {
			kept = append(kept, s)
		}
	}
	clear(m.queue[len(kept):])
	m.queue = kept

	for i, sum := range buf {
		v := int16(math.Tanh(sum) * math.MaxInt16)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	m.pos += int64(samples)
	return samples * 2, nil
}
