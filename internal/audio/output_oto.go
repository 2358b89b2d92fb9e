//go:build !test

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func openOutput(m *mixer) error {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if otoErr != nil {
			return
		}
		// Browsers only finish readiness after a user gesture, so never block
		// the frame loop on it.
		go func() { <-ready }()
	})
	if otoErr != nil {
		return fmt.Errorf("oto context: %w", otoErr)
	}
	_ = otoCtx.Resume()
	p := otoCtx.NewPlayer(m)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	return nil
}
