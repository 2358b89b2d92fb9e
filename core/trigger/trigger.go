package trigger

const (
	DefaultThreshold = 0.12
	DefaultCooldown  = 10
)

type State int

const (
	Idle State = iota
	Cooldown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Cooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Detector is a debounced rising-edge comparator over the amplitude signal.
// It fires at most once per cooldown window.
type Detector struct {
	Threshold float64
	Frames    int // cooldown length in frames

	cooldown int

	// OnFire, if set, runs whenever the detector fires.
	OnFire func(level float64)
}

func NewDetector(threshold float64, cooldownFrames int) *Detector {
	if cooldownFrames < 1 {
		cooldownFrames = 1
	}
	return &Detector{Threshold: threshold, Frames: cooldownFrames}
}

// Step evaluates one frame and reports whether a burst fired.
func (d *Detector) Step(level float64) bool {
	if d.cooldown > 0 {
		d.cooldown--
		return false
	}
	if level <= d.Threshold {
		return false
	}
	// Armed is transient: fire and drop straight into cooldown.
	d.cooldown = d.Frames
	if d.OnFire != nil {
		d.OnFire(level)
	}
	return true
}

func (d *Detector) State() State {
	if d.cooldown > 0 {
		return Cooldown
	}
	return Idle
}

// Remaining returns the cooldown frames left.
func (d *Detector) Remaining() int { return d.cooldown }

func (d *Detector) Reset() { d.cooldown = 0 }
