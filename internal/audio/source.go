package audio

import (
	"context"
	"errors"
)

// Microphone acquisition failures. Backends wrap these with %w so callers can
// test with errors.Is.
var (
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrNoDevice         = errors.New("no microphone available")
)

// Source is a continuously updated loudness level in [0,1].
//
// Start is the only call that may block; run it off the frame loop. Level is
// a cheap read safe to call once per frame. Stop releases the device and may
// be called any number of times.
type Source interface {
	Start(ctx context.Context) error
	Level() float64
	Stop() error
}

// MicConfig tunes microphone capture and envelope following.
type MicConfig struct {
	SampleRate float64
	Buffer     int // frames per callback
	Envelope   EnvelopeConfig
}

func DefaultMicConfig() MicConfig {
	return MicConfig{
		SampleRate: 44100,
		Buffer:     512,
		Envelope:   DefaultEnvelopeConfig(),
	}
}

// Silent is the zero-amplitude source used when no microphone can be had.
type Silent struct{}

func (Silent) Start(context.Context) error { return nil }

func (Silent) Level() float64 { return 0 }

func (Silent) Stop() error { return nil }
