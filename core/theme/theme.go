package theme

import "github.com/Jimin-park1013/delulu-dreams/internal/utils"

// DefaultDuration is ~10s at 60 fps.
const DefaultDuration = 600

// volumeSpan is the loudness at which a palette reaches its end hue.
const volumeSpan = 0.3

// Palette is a hue interval in degrees. End may be below Start.
type Palette struct {
	Name     string
	HueStart float64
	HueEnd   float64
}

var palettes = [...]Palette{
	{Name: "cold-hot", HueStart: 200, HueEnd: 0},
	{Name: "yellow-violet", HueStart: 60, HueEnd: 280},
	{Name: "red-green", HueStart: 0, HueEnd: 120},
}

// Palettes returns the compiled-in palettes in cycling order.
func Palettes() []Palette {
	return append([]Palette(nil), palettes[:]...)
}

// Cycler rotates through the palettes, one step every Duration ticks.
type Cycler struct {
	index    int
	frames   int
	duration int
}

func NewCycler(duration int) *Cycler {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Cycler{duration: duration}
}

// Tick advances one frame and reports whether the palette changed.
func (c *Cycler) Tick() bool {
	c.frames++
	if c.frames < c.duration {
		return false
	}
	c.frames = 0
	c.index = (c.index + 1) % len(palettes)
	return true
}

func (c *Cycler) Index() int { return c.index }

func (c *Cycler) Frames() int { return c.frames }

func (c *Cycler) Current() Palette { return palettes[c.index] }

// Hue maps volume into the active palette's hue interval.
func (c *Cycler) Hue(volume float64) float64 {
	p := palettes[c.index]
	t := utils.Clamp(volume/volumeSpan, 0, 1)
	return utils.Lerp(p.HueStart, p.HueEnd, t)
}

func (c *Cycler) Reset() {
	c.index = 0
	c.frames = 0
}
