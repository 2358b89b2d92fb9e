//go:build test

package audio

import (
	"context"
	"fmt"

	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
)

// Microphone under test builds never touches a device; Start reports that no
// microphone is present so callers exercise their fallback path.
type Microphone struct {
	env *Envelope
}

func NewMicrophone(cfg MicConfig, _ *game_log.Logger) *Microphone {
	return &Microphone{env: NewEnvelope(cfg.Envelope)}
}

func (m *Microphone) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: test build", ErrNoDevice)
}

func (m *Microphone) Level() float64 { return m.env.Level() }

func (m *Microphone) Stop() error {
	m.env.Reset()
	return nil
}
