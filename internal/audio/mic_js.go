//go:build js && wasm && !test

package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"syscall/js"

	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
)

// Microphone reads the browser microphone through getUserMedia and an
// AnalyserNode. The envelope is fed lazily from Level, once per frame.
type Microphone struct {
	cfg    MicConfig
	env    *Envelope
	logger *game_log.Logger

	mu       sync.Mutex
	stream   js.Value
	audioCtx js.Value
	analyser js.Value
	buf      js.Value
	scratch  []byte
}

func NewMicrophone(cfg MicConfig, logger *game_log.Logger) *Microphone {
	return &Microphone{cfg: cfg, env: NewEnvelope(cfg.Envelope), logger: logger}
}

// await blocks until p settles or ctx is done. If ctx wins, late receives
// the value the promise eventually resolves to so it can be released.
func await(ctx context.Context, p js.Value, late func(js.Value)) (js.Value, error) {
	ch := make(chan settled[js.Value], 1)
	var onOK, onErr js.Func
	// A promise settles once; both callbacks go with it.
	release := func() {
		onOK.Release()
		onErr.Release()
	}
	onOK = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		ch <- settled[js.Value]{v: args[0]}
		return nil
	})
	onErr = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		ch <- settled[js.Value]{err: domError(args[0])}
		return nil
	})
	p.Call("then", onOK, onErr)
	return awaitSettled(ctx, ch, late)
}

func domError(v js.Value) error {
	if v.IsUndefined() || v.IsNull() {
		return classifyMediaError("", "")
	}
	return classifyMediaError(v.Get("name").String(), v.Get("message").String())
}

func (m *Microphone) Start(ctx context.Context) error {
	nav := js.Global().Get("navigator")
	if nav.IsUndefined() || nav.Get("mediaDevices").IsUndefined() {
		return fmt.Errorf("%w: mediaDevices unsupported", ErrNoDevice)
	}
	constraints := map[string]any{"audio": true, "video": false}
	// A grant that lands after cancellation must not leave the mic live.
	stream, err := await(ctx, nav.Get("mediaDevices").Call("getUserMedia", constraints), stopTracks)
	if err != nil {
		return err
	}

	ctor := js.Global().Get("AudioContext")
	if ctor.IsUndefined() {
		ctor = js.Global().Get("webkitAudioContext")
	}
	if ctor.IsUndefined() {
		stopTracks(stream)
		return fmt.Errorf("%w: AudioContext unsupported", ErrNoDevice)
	}
	ac := ctor.New()
	an := ac.Call("createAnalyser")
	size := 1
	for size < m.cfg.Buffer {
		size <<= 1
	}
	if size < 32 {
		size = 32
	}
	an.Set("fftSize", size)
	ac.Call("createMediaStreamSource", stream).Call("connect", an)
	if ac.Get("state").String() == "suspended" {
		ac.Call("resume")
	}

	m.mu.Lock()
	m.stream, m.audioCtx, m.analyser = stream, ac, an
	m.buf = js.Global().Get("Uint8Array").New(size)
	m.scratch = make([]byte, size)
	m.mu.Unlock()
	m.logger.Infof("[MIC] Browser microphone open (fft %d)", size)
	return nil
}

func (m *Microphone) Level() float64 {
	m.mu.Lock()
	if m.analyser.Truthy() {
		m.analyser.Call("getByteTimeDomainData", m.buf)
		n := js.CopyBytesToGo(m.scratch, m.buf)
		var sum float64
		for _, b := range m.scratch[:n] {
			v := (float64(b) - 128) / 128
			sum += v * v
		}
		if n > 0 {
			m.env.ProcessRMS(math.Sqrt(sum / float64(n)))
		}
	}
	m.mu.Unlock()
	return m.env.Level()
}

func stopTracks(stream js.Value) {
	tracks := stream.Call("getTracks")
	for i := 0; i < tracks.Length(); i++ {
		tracks.Index(i).Call("stop")
	}
}

func (m *Microphone) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream.Truthy() {
		stopTracks(m.stream)
	}
	if m.audioCtx.Truthy() {
		m.audioCtx.Call("close")
	}
	m.stream, m.audioCtx, m.analyser, m.buf = js.Value{}, js.Value{}, js.Value{}, js.Value{}
	m.env.Reset()
	return nil
}
