package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jimin-park1013/delulu-dreams/core/sim"
	"github.com/Jimin-park1013/delulu-dreams/internal/audio"
	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
)

// Status is the controller lifecycle.
type Status int

const (
	// StatusIdle: no simulation, no microphone.
	StatusIdle Status = iota
	// StatusStarting: acquisition is in flight; frames are not stepped yet.
	StatusStarting
	// StatusRunning: frames step with the live (or silent) source.
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// SourceFactory builds a fresh amplitude source for each run.
type SourceFactory func() audio.Source

// Controller owns one run of the simulation: it creates the state and the
// source on Start and tears both down on Stop.
type Controller struct {
	params    sim.Params
	newSource SourceFactory
	logger    *game_log.Logger

	w, h float64

	status  Status
	state   *sim.State
	src     audio.Source
	cancel  context.CancelFunc
	result  chan error
	message string

	// OnBurst is handed to every new simulation.
	OnBurst func(count int)
}

func NewController(p sim.Params, newSource SourceFactory, logger *game_log.Logger) *Controller {
	if newSource == nil {
		newSource = func() audio.Source { return audio.Silent{} }
	}
	return &Controller{params: p, newSource: newSource, logger: logger, w: 1, h: 1}
}

// Start leaves Idle and begins acquiring the source off the frame loop. It is
// a no-op in any other state.
func (c *Controller) Start() {
	if c.status != StatusIdle {
		return
	}
	c.state = sim.New(c.params, c.w, c.h, c.logger)
	c.state.OnBurst = c.OnBurst
	c.src = c.newSource()
	c.message = ""

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	result := make(chan error, 1)
	c.result = result
	c.status = StatusStarting
	c.logger.Infof("[CTRL] Starting: mode=%s seed=%d", c.params.Mode, c.params.Seed)

	src := c.src
	go func() {
		err := src.Start(ctx)
		if err == nil && ctx.Err() != nil {
			// Stopped while the device was opening.
			_ = src.Stop()
			err = ctx.Err()
		}
		result <- err
	}()
}

// poll collects the acquisition result without blocking.
func (c *Controller) poll() {
	if c.status != StatusStarting {
		return
	}
	select {
	case err := <-c.result:
		c.result = nil
		if err != nil {
			c.degrade(err)
		} else {
			c.logger.Infof("[CTRL] Source ready")
		}
		c.status = StatusRunning
	default:
	}
}

func (c *Controller) degrade(err error) {
	switch {
	case errors.Is(err, audio.ErrPermissionDenied):
		c.message = "microphone permission denied - dreaming in silence"
	case errors.Is(err, audio.ErrNoDevice):
		c.message = "no microphone found - dreaming in silence"
	default:
		c.message = "microphone unavailable - dreaming in silence"
	}
	c.logger.Warnf("[CTRL] Source failed, falling back to silence: %v", err)
	c.src = audio.Silent{}
}

// Step advances one frame. ok is false while there is nothing to draw.
func (c *Controller) Step() (f sim.Frame, ok bool) {
	c.poll()
	if c.status != StatusRunning {
		return sim.Frame{}, false
	}
	return c.state.Step(c.src.Level()), true
}

// Stop releases the source and drops the simulation. Safe to call in any
// state, any number of times.
func (c *Controller) Stop() error {
	if c.status == StatusIdle {
		return nil
	}
	var err error
	if c.status == StatusStarting {
		c.cancel()
		// Acquisition may already have succeeded with its result still
		// unread; whoever finishes second releases the source.
		go func(src audio.Source, result <-chan error) {
			if err := <-result; err == nil {
				_ = src.Stop()
			}
		}(c.src, c.result)
	} else {
		c.cancel()
		if serr := c.src.Stop(); serr != nil {
			err = fmt.Errorf("stop source: %w", serr)
		}
	}
	c.logger.Infof("[CTRL] Stopped after %d frames", c.state.FrameIndex())
	c.status = StatusIdle
	c.state = nil
	c.src = nil
	c.cancel = nil
	c.result = nil
	c.message = ""
	return err
}

// Resize forwards a surface change to the running simulation.
func (c *Controller) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.w, c.h = w, h
	if c.state != nil {
		c.state.Resize(w, h)
	}
}

func (c *Controller) Status() Status { return c.status }

// Message is the user-facing note left by a failed acquisition, if any.
func (c *Controller) Message() string { return c.message }

// State is the live simulation, nil when idle.
func (c *Controller) State() *sim.State { return c.state }

func (c *Controller) Params() sim.Params { return c.params }
