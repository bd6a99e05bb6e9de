package fastmath

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func approxEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tolerance
}

func TestSinCos(t *testing.T) {
	tests := []struct {
		z        float64
		sin, cos float64
	}{
		{0, 0, 1},
		{0.1, 0.09972839720069836, 0.9935973557943562},
		{1.0, 0.8403747950252756, 0.5395579585710483},
		{math.Pi / 2, 0.9984625, 3.250000000000475e-05},
		{2.0, 0.9074940439786922, -0.41534209884358286},
		{math.Pi, 0, -0.99795},
		{2 * math.Pi, 0, 1},
		{10, -0.5439582041429563, -0.8389752174069942},
		{-0.1, -0.09972839720069898, 0.993597355794356},
		{-1, -0.8403747950252756, 0.5395579585710483},
		{math.NaN(), math.NaN(), math.NaN()},
	}

	for _, tc := range tests {
		if got := Sin(tc.z); !approxEqual(got, tc.sin) {
			t.Errorf("Sin(%v) = %v, want %v", tc.z, got, tc.sin)
		}
		if got := Cos(tc.z); !approxEqual(got, tc.cos) {
			t.Errorf("Cos(%v) = %v, want %v", tc.z, got, tc.cos)
		}
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.1, 0.3162277665175675},
		{1, 1},
		{2, 1.4142135623746899},
		{3456.789, 58.79446402511048},
		{math.NaN(), math.NaN()},
	}

	for _, tc := range tests {
		if got := Sqrt(tc.in); !approxEqual(got, tc.want) {
			t.Errorf("Sqrt(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSqrtNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative input")
		}
	}()
	Sqrt(-1)
}

func TestDistAndBounds(t *testing.T) {
	tests := []struct {
		x1, y1, x2, y2     float64
		lower, exact, upper float64
	}{
		{0, 0, 3, 4, 4.82072072072072, 5.000000000053723, 5.2919921875},
		{1, 2, 3, 4, 2.609009009009009, 2.8284271250498643, 2.861328125},
		{10, 20, 15, 32, 12.872972972972972, 13.0, 14.1533203125},
	}

	for _, tc := range tests {
		lo := DistLowerBound(tc.x1, tc.y1, tc.x2, tc.y2)
		d := Dist(tc.x1, tc.y1, tc.x2, tc.y2)
		hi := DistUpperBound(tc.x1, tc.y1, tc.x2, tc.y2)
		if !approxEqual(lo, tc.lower) || !approxEqual(d, tc.exact) || !approxEqual(hi, tc.upper) {
			t.Errorf("(%v,%v)-(%v,%v): got %v/%v/%v, want %v/%v/%v",
				tc.x1, tc.y1, tc.x2, tc.y2, lo, d, hi, tc.lower, tc.exact, tc.upper)
		}
		if lo > d || d > hi {
			t.Errorf("bounds out of order: %v <= %v <= %v", lo, d, hi)
		}
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		x2, y2 float64
		want   float64
	}{
		{3, 5, 0.9827989414909313},
		{3, -5, 4.990698112028704},
		{-3, 5, 2.4980739417195164},
		{-3, -5, 4.19326091952823},
	}

	for _, tc := range tests {
		got := Angle(1, 2, tc.x2, tc.y2)
		if !approxEqual(got, tc.want) {
			t.Errorf("Angle(1,2,%v,%v) = %v, want %v", tc.x2, tc.y2, got, tc.want)
		}
		if got < 0 || got >= TwoPi {
			t.Errorf("Angle(1,2,%v,%v) = %v outside [0, 2π)", tc.x2, tc.y2, got)
		}
	}

	if got := Angle(1, 2, 1, 2); !math.IsNaN(got) {
		t.Errorf("Angle of coincident points = %v, want NaN", got)
	}
}

func TestScalarHelpers(t *testing.T) {
	if got := Rescale(2.0625, 1.0625, 5.0625, 10, 20); got != 12.5 {
		t.Errorf("Rescale = %v, want 12.5", got)
	}
	if got := Rescale(-100, 0, 1, 10, 20); got != 10 {
		t.Errorf("Rescale below range = %v, want 10", got)
	}
	if got := Modulo(4, 3); got != 1 {
		t.Errorf("Modulo(4, 3) = %v, want 1", got)
	}
	if got := Modulo(4, -3); got != -2 {
		t.Errorf("Modulo(4, -3) = %v, want -2", got)
	}
	if got := Modulo(-1, 360); got != 359 {
		t.Errorf("Modulo(-1, 360) = %v, want 359", got)
	}

	x, y := AddPolarOffset(10, 20, math.Pi/6, 1)
	if !approxEqual(x, 10.865494166666666) || !approxEqual(y, 20.499669166666667) {
		t.Errorf("AddPolarOffset = (%v, %v)", x, y)
	}

	for _, tc := range []struct {
		in   float64
		want int
	}{{-3, 0}, {math.NaN(), 0}, {2.9, 2}, {0, 0}} {
		if got := FloorIndex(tc.in); got != tc.want {
			t.Errorf("FloorIndex(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
