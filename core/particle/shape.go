package particle

import (
	"math"
	"math/rand/v2"

	"github.com/Jimin-park1013/delulu-dreams/core/colour"
	"github.com/Jimin-park1013/delulu-dreams/internal/utils"
)

type ShapeKind uint8

const (
	Circle ShapeKind = iota
	Star
	Triangle
	Diamond
	shapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Star:
		return "star"
	case Triangle:
		return "triangle"
	case Diamond:
		return "diamond"
	default:
		return "unknown"
	}
}

const (
	shapeStartAlpha = 200.0
	shapeFade       = 0.5
	shapeStayMin    = 180 // frames
	shapeStayMax    = 300
	trickleSpan     = 0.3 // volume at which trickle and sizing saturate
	trickleMax      = 10
)

// ShapeColour is the fixed pale-blue fill of the shape variant.
var ShapeColour = colour.New(222, 0.41, 1, 1)

// Shape is an entity of the simple variant: it falls (or rises) to an edge,
// rests there for a few seconds, then fades out.
type Shape struct {
	Pos     Vec
	Size    float64
	Kind    ShapeKind
	Dir     float64 // 1 falls, -1 rises
	SpeedY  float64
	Angle   float64
	Spin    float64
	Alpha   float64 // 0..255
	Stopped bool
	Stay    int
	StayFor int
}

// TrickleCount is how many shapes to add this frame for a given volume.
func TrickleCount(volume float64) int {
	return int(math.Floor(utils.Map(volume, 0, trickleSpan, 0, trickleMax, true)))
}

// NewShape creates a shape just beyond the top or bottom edge of a w×h surface.
func NewShape(rng *rand.Rand, w, h, volume float64) Shape {
	size := (20 + rng.Float64()*50) * utils.Map(volume, 0, trickleSpan, 0.3, 1.5, false)
	dir := 1.0
	y := -size
	if rng.Float64() >= 0.5 {
		dir = -1
		y = h + size
	}
	return Shape{
		Pos:     Vec{rng.Float64() * w, y},
		Size:    size,
		Kind:    ShapeKind(rng.IntN(int(shapeKindCount))),
		Dir:     dir,
		SpeedY:  (1 + rng.Float64()*2) * dir,
		Angle:   rng.Float64() * 2 * math.Pi,
		Spin:    (rng.Float64()*2 - 1) * 0.02,
		Alpha:   shapeStartAlpha,
		StayFor: shapeStayMin + rng.IntN(shapeStayMax-shapeStayMin),
	}
}

// UpdateShape advances s by one frame on a surface of height h.
func UpdateShape(s *Shape, h float64) {
	if !s.Stopped {
		s.Pos.Y += s.SpeedY
		half := s.Size / 2
		switch {
		case s.Dir > 0 && s.Pos.Y >= h-half:
			s.Pos.Y = h - half
			s.Stopped = true
		case s.Dir < 0 && s.Pos.Y <= half:
			s.Pos.Y = half
			s.Stopped = true
		}
		if s.Stopped {
			s.SpeedY = 0
		}
	} else {
		s.Stay++
		if s.Stay > s.StayFor {
			s.Alpha -= shapeFade
		}
	}
	s.Angle += s.Spin
}

// Expired reports whether the shape has faded out.
func (s *Shape) Expired() bool { return s.Alpha <= 0 }

func (s *Shape) Colour() colour.HSBA {
	return ShapeColour.WithAlpha(s.Alpha / AlphaMax)
}
