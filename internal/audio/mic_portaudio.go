//go:build !js && !test

package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
)

// Microphone captures the default input device through PortAudio and feeds
// an Envelope from the stream callback.
type Microphone struct {
	cfg    MicConfig
	env    *Envelope
	logger *game_log.Logger

	mu     sync.Mutex
	stream *portaudio.Stream
}

func NewMicrophone(cfg MicConfig, logger *game_log.Logger) *Microphone {
	return &Microphone{cfg: cfg, env: NewEnvelope(cfg.Envelope), logger: logger}
}

func (m *Microphone) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil || dev.MaxInputChannels < 1 {
		portaudio.Terminate()
		if err == nil {
			err = errors.New("default device has no input channels")
		}
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	m.logger.Infof("[MIC] Using input device %q (%d ch, %.0f Hz default)", dev.Name, dev.MaxInputChannels, dev.DefaultSampleRate)

	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.SampleRate = m.cfg.SampleRate
	params.FramesPerBuffer = m.cfg.Buffer

	stream, err := portaudio.OpenStream(params, func(in []float32) { m.env.Process(in) })
	if err != nil {
		portaudio.Terminate()
		return portaudioErrors.classify("open input stream", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return portaudioErrors.classify("start input stream", err)
	}
	// Stop may have been requested while the device was opening.
	if err := ctx.Err(); err != nil {
		stream.Stop()
		stream.Close()
		portaudio.Terminate()
		return err
	}
	m.stream = stream
	return nil
}

var portaudioErrors = hostErrors{
	noDevice: []error{portaudio.InvalidDevice},
	denied:   []error{portaudio.DeviceUnavailable},
}

func (m *Microphone) Level() float64 { return m.env.Level() }

func (m *Microphone) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream == nil {
		return nil
	}
	var errs []error
	if err := m.stream.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop input stream: %w", err))
	}
	if err := m.stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close input stream: %w", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("portaudio terminate: %w", err))
	}
	m.stream = nil
	m.env.Reset()
	m.logger.Infof("[MIC] Input stream released")
	return errors.Join(errs...)
}
