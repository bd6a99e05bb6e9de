package fastmath

import "math"

const (
	sqrtMaxIterations = 1000
	sqrtEpsilon       = 1e-14
	sqrtTarget        = 1e-7
)

// Sqrt approximates math.Sqrt with Newton's method and fixed convergence parameters.
// Panics on negative input.
func Sqrt(value float64) float64 {
	if value < 0 {
		panic("fastmath: Sqrt of negative value")
	}

	guess := value
	for range sqrtMaxIterations {
		err := guess*guess - value
		if math.Abs(err) < sqrtTarget {
			return guess
		}
		divisor := 2 * guess
		if divisor <= sqrtEpsilon {
			return guess
		}
		guess -= err / divisor
	}
	return guess
}

// Dist returns the distance between (x1, y1) and (x2, y2).
func Dist(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return Sqrt(dx*dx + dy*dy)
}

// DistLowerBound is an octagonal approximation that never exceeds Dist.
func DistLowerBound(x1, y1, x2, y2 float64) float64 {
	dx := math.Abs(x1 - x2)
	dy := math.Abs(y1 - y2)
	mn := min(dx, dy)
	mx := max(dx, dy)

	const (
		alpha = 1007.0 / 1110.0
		beta  = 441.0 / 1110.0
	)
	return alpha*mx + beta*mn
}

// DistUpperBound is an octagonal approximation that is never below Dist.
func DistUpperBound(x1, y1, x2, y2 float64) float64 {
	dx := math.Abs(x1 - x2)
	dy := math.Abs(y1 - y2)
	mn := min(dx, dy)
	mx := max(dx, dy)

	const beta = 441.0 / 1024.0
	return mx + beta*mn
}

// Angle returns the direction from (x1, y1) to (x2, y2) in [0, 2π). Coincident points give NaN.
func Angle(x1, y1, x2, y2 float64) float64 {
	return Modulo(atan2(y2-y1, x2-x1), TwoPi)
}

// AddPolarOffset moves (x, y) by r in direction theta.
func AddPolarOffset(x, y, theta, r float64) (float64, float64) {
	return x + r*Cos(theta), y + r*Sin(theta)
}
