package utils

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Map linearly rescales v from [inLo, inHi] to [outLo, outHi]. When clamp is
// set the result is limited to the output range.
func Map(v, inLo, inHi, outLo, outHi float64, clamp bool) float64 {
	if inHi == inLo {
		return outLo
	}
	out := outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
	if !clamp {
		return out
	}
	if outLo < outHi {
		return Clamp(out, outLo, outHi)
	}
	return Clamp(out, outHi, outLo)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Ease moves cur toward target by rate (exponential smoothing).
func Ease(cur, target, rate float64) float64 { return cur + (target-cur)*rate }

// Wrap folds v into [0, size). Values far outside the range wrap as many
// times as needed, so a shrunk surface never leaves a point stranded.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// math.Mod can round a tiny negative up to size.
	if v >= size {
		v = 0
	}
	return v
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
