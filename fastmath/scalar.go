// Package fastmath provides the arithmetic used by layout and painting. Trigonometry and
// square roots are computed here rather than by the math package so that results are
// bit-reproducible on every platform.
package fastmath

import "math"

const (
	Pi    = math.Pi
	TwoPi = 2 * math.Pi
)

// PiTimes returns π·v.
func PiTimes(v float64) float64 {
	return math.Pi * v
}

// Modulo returns n mod m with the sign of m. Unlike a Euclidean remainder it keeps the
// historical result when both arguments are negative.
func Modulo(n, m float64) float64 {
	return math.Mod(math.Mod(n, m)+m, m)
}

// Clamp restricts v to [lo, hi]. NaN passes through.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rescale clamps value to [oldMin, oldMax] and maps it linearly onto [newMin, newMax].
func Rescale(value, oldMin, oldMax, newMin, newMax float64) float64 {
	clamped := Clamp(value, oldMin, oldMax)
	oldSpread := oldMax - oldMin
	newSpread := newMax - newMin
	return newMin + (clamped-oldMin)*(newSpread/oldSpread)
}

// FloorIndex converts a non-negative float to an index. Negative and NaN inputs become 0.
func FloorIndex(v float64) int {
	v = math.Floor(v)
	if !(v > 0) {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
