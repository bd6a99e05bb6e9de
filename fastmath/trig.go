package fastmath

import "math"

// Tables sample one period at 50 evenly spaced points, both ends included.
var cosTable = [...]float64{
	1.0, 0.99179, 0.96729, 0.92692, 0.87132, 0.80141, 0.71835, 0.62349, 0.51839, 0.40478,
	0.28453, 0.1596, 0.03205, -0.09602, -0.22252, -0.34537, -0.46254, -0.57212, -0.6723,
	-0.76145, -0.83809, -0.90097, -0.94906, -0.98156, -0.99795, -0.99795, -0.98156, -0.94906,
	-0.90097, -0.83809, -0.76145, -0.6723, -0.57212, -0.46254, -0.34537, -0.22252, -0.09602,
	0.03205, 0.1596, 0.28453, 0.40478, 0.51839, 0.62349, 0.71835, 0.80141, 0.87132, 0.92692,
	0.96729, 0.99179, 1.0,
}

var sinTable = [...]float64{
	0.0, 0.12788, 0.25365, 0.37527, 0.49072, 0.59811, 0.69568, 0.78183, 0.85514, 0.91441,
	0.95867, 0.98718, 0.99949, 0.99538, 0.97493, 0.93847, 0.8866, 0.82017, 0.74028, 0.64823,
	0.54553, 0.43388, 0.31511, 0.19116, 0.06407, -0.06407, -0.19116, -0.31511, -0.43388,
	-0.54553, -0.64823, -0.74028, -0.82017, -0.8866, -0.93847, -0.97493, -0.99538, -0.99949,
	-0.98718, -0.95867, -0.91441, -0.85514, -0.78183, -0.69568, -0.59811, -0.49072, -0.37527,
	-0.25365, -0.12788, -0.0,
}

// interpolate approximates f(z) given table = f(linspace(lo, hi, len(table))) for a function
// whose period divides hi-lo.
func interpolate(table []float64, lo, hi, z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	value := Modulo(z-lo, hi-lo) + lo

	rescaled := Rescale(value, lo, hi, 0, float64(len(table)-1))
	index := FloorIndex(rescaled)
	if index > len(table)-2 {
		index = len(table) - 2
	}
	fraction := rescaled - float64(index)

	start := table[index]
	end := table[index+1]
	return start + (end-start)*fraction
}

// Cos is a piecewise-linear approximation of math.Cos.
func Cos(z float64) float64 {
	return interpolate(cosTable[:], 0, TwoPi, z)
}

// Sin is a piecewise-linear approximation of math.Sin.
func Sin(z float64) float64 {
	return interpolate(sinTable[:], 0, TwoPi, z)
}

// atan2 is a minimax polynomial approximation of math.Atan2.
func atan2(y, x float64) float64 {
	ax := math.Abs(x)
	ay := math.Abs(y)
	mx := max(ay, ax)
	mn := min(ay, ax)
	a := mn / mx

	s := a * a
	c := s * a
	q := s * s
	r := 0.024840285*q + 0.18681418
	t := -0.094097948*q - 0.33213072
	r = r*s + t
	r = r*c + a

	if ay > ax {
		r = 1.57079637 - r
	}
	if x < 0 {
		r = 3.14159274 - r
	}
	if y < 0 {
		r = -r
	}
	return r
}
