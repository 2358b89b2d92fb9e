package particle

import "math"

type Vec struct{ X, Y float64 }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Limit scales v down so its length does not exceed max.
func (v Vec) Limit(max float64) Vec {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	s := max / l
	r := v.Scale(s)
	// Rounding can leave r a ulp above max.
	for r.Len() > max {
		s = math.Nextafter(s, 0)
		r = v.Scale(s)
	}
	return r
}

// FromAngle returns a vector of length mag pointing at angle (radians).
func FromAngle(angle, mag float64) Vec {
	return Vec{math.Cos(angle) * mag, math.Sin(angle) * mag}
}
