package sim

import (
	"fmt"

	"github.com/Jimin-park1013/delulu-dreams/core/theme"
	"github.com/Jimin-park1013/delulu-dreams/core/trigger"
)

// Mode selects which population the simulation runs. The two are never mixed
// in one run.
type Mode string

const (
	// ModeFlow runs noise-driven particles with bursts, themes, ring and flicker.
	ModeFlow Mode = "flow"
	// ModeDream runs the simple shape variant: trickle spawn and fade-out.
	ModeDream Mode = "dream"
)

const (
	DefaultFlowCapacity  = 150
	DefaultDreamCapacity = 50
	DefaultInitial       = 100
	DefaultBurstSize     = 80
	DefaultFlickerCount  = 30
)

// Params are the tunables of a run. Surface size comes from Resize.
type Params struct {
	Mode          Mode
	Capacity      int
	Initial       int
	BurstSize     int
	Threshold     float64
	Cooldown      int
	ThemeDuration int
	Themed        bool
	FlickerCount  int
	Seed          uint64
}

func DefaultParams() Params {
	return Params{
		Mode:          ModeFlow,
		Capacity:      DefaultFlowCapacity,
		Initial:       DefaultInitial,
		BurstSize:     DefaultBurstSize,
		Threshold:     trigger.DefaultThreshold,
		Cooldown:      trigger.DefaultCooldown,
		ThemeDuration: theme.DefaultDuration,
		Themed:        true,
		FlickerCount:  DefaultFlickerCount,
		Seed:          1,
	}
}

func (p Params) Validate() error {
	switch p.Mode {
	case ModeFlow, ModeDream:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", p.Mode, ModeFlow, ModeDream)
	}
	if p.Capacity < 1 {
		return fmt.Errorf("capacity must be >= 1, got %d", p.Capacity)
	}
	if p.Initial < 0 || p.BurstSize < 0 || p.FlickerCount < 0 {
		return fmt.Errorf("initial, burst and flicker counts must be >= 0")
	}
	if p.Threshold <= 0 || p.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0,1), got %v", p.Threshold)
	}
	if p.Cooldown < 1 {
		return fmt.Errorf("cooldown must be >= 1 frame, got %d", p.Cooldown)
	}
	if p.ThemeDuration < 1 {
		return fmt.Errorf("theme duration must be >= 1 frame, got %d", p.ThemeDuration)
	}
	return nil
}
