package systems

import (
	"math"

	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/traits"
)

// FlowKind distinguishes the two base flow field families.
type FlowKind uint8

const (
	FlowLinear FlowKind = iota
	FlowRadial
)

// FlowFieldSpec is the randomized description of a base flow field.
type FlowFieldSpec struct {
	Kind FlowKind
	// DefaultTheta is the linear angle, and the fixed heading for groups that ignore the field.
	DefaultTheta float64

	// Radial only
	Circularity float64
	Inward      bool
	Clockwise   bool
}

var radialDefaultThetas = []rng.Weighted[float64]{
	rng.W(fastmath.PiTimes(0), 1),
	rng.W(fastmath.PiTimes(0.25), 1),
	rng.W(fastmath.PiTimes(0.5), 1),
}

// NewFlowFieldSpec draws a flow field description for the trait's family.
func NewFlowFieldSpec(t traits.Traits, r *rng.Rng) FlowFieldSpec {
	linear := func(theta float64) FlowFieldSpec {
		if r.Odds(0.5) {
			theta = fastmath.Pi - theta // left-right
		}
		if r.Odds(0.5) {
			theta += fastmath.Pi // up-down
		}
		return FlowFieldSpec{Kind: FlowLinear, DefaultTheta: fastmath.Modulo(theta, fastmath.TwoPi)}
	}
	radial := func(circularity float64) FlowFieldSpec {
		inward := r.Odds(0.5)
		ccw := r.Odds(0.5)
		return FlowFieldSpec{
			Kind:         FlowRadial,
			Circularity:  circularity,
			Inward:       inward,
			Clockwise:    !ccw,
			DefaultTheta: rng.WeightedChoice(r, radialDefaultThetas),
		}
	}

	switch t.FlowField {
	case traits.Horizontal:
		return linear(0)
	case traits.Diagonal:
		return linear(fastmath.PiTimes(0.25))
	case traits.Vertical:
		return linear(fastmath.PiTimes(0.5))
	case traits.RandomLinear:
		return linear(r.Uniform(0, fastmath.PiTimes(0.5)))
	case traits.Explosive:
		return radial(r.Uniform(0.2, 0.4))
	case traits.Spiral:
		return radial(r.Uniform(0.4, 0.75))
	case traits.Circular:
		return radial(min(r.Uniform(0.75, 1.02), 1))
	case traits.RandomRadial:
		return radial(fastmath.Clamp(r.Uniform(-0.01, 1.01), 0, 1))
	}
	panic("systems: unknown flow field trait")
}

// FlowField is a column-major grid of angles over the extended canvas.
type FlowField struct {
	angles []float64
}

func newConstantField(theta float64) *FlowField {
	f := &FlowField{angles: make([]float64, components.FieldCols*components.FieldRows)}
	for i := range f.angles {
		f.angles[i] = theta
	}
	return f
}

// At returns the angle stored for column i, row j.
func (f *FlowField) At(i, j int) float64 {
	return f.angles[i*components.FieldRows+j]
}

// Lookup returns the angle of the cell containing (x, y). The point must be inside the field.
func (f *FlowField) Lookup(x, y float64) float64 {
	i := fastmath.FloorIndex((x - components.FieldLeft) / components.FieldSpacing)
	j := fastmath.FloorIndex((y - components.FieldTop) / components.FieldSpacing)
	return f.At(i, j)
}

// Contains reports whether (x, y) is inside the field bounds.
func Contains(x, y float64) bool {
	return x >= components.FieldLeft && x < components.FieldRight &&
		y >= components.FieldTop && y < components.FieldBottom
}

// BuildFlowField synthesizes the base field and applies the trait's disturbances.
func BuildFlowField(spec FlowFieldSpec, t traits.Traits, r *rng.Rng) *FlowField {
	var f *FlowField
	switch spec.Kind {
	case FlowLinear:
		f = newConstantField(spec.DefaultTheta)
	default:
		f = buildRadialField(spec, t.Version, r)
	}
	f.Adjust(BuildDisturbances(t, r))
	return f
}

func buildRadialField(spec FlowFieldSpec, version traits.Version, r *rng.Rng) *FlowField {
	rot := spec.Circularity / 2
	if !spec.Inward {
		rot = 1 - rot
	}
	if spec.Clockwise {
		rot = 2 - rot
	}
	rot = fastmath.PiTimes(rot)

	w, h := components.W, components.H

	first := r.Uniform(w(0), w(1))
	cx := rng.WeightedChoice(r, []rng.Weighted[float64]{
		rng.W(first, 2),
		rng.W(w(-2.0/3), 0.5),
		rng.W(w(-1.0/3), 1),
		rng.W(w(0), 1),
		rng.W(w(1.0/3), 1.5),
		rng.W(w(1.0/2), 1.5),
		rng.W(w(2.0/3), 1.5),
		rng.W(w(1), 1.5),
		rng.W(w(4.0/3), 1),
		rng.W(w(5.0/3), 0.5),
	})

	// Seeds minted before V1 carry a NaN weight here, which forces the last candidate.
	fixedWeight := math.NaN()
	if version == traits.V1 {
		fixedWeight = 0.5
	}
	first = r.Uniform(h(0), h(1))
	cy := rng.WeightedChoice(r, []rng.Weighted[float64]{
		rng.W(first, 2),
		rng.W(h(-2.0/3), fixedWeight),
		rng.W(h(-1.0/3), 1),
		rng.W(h(0), 1),
		rng.W(h(1.0/3), 1.5),
		rng.W(h(1.0/2), 1.5),
		rng.W(h(2.0/3), 1.5),
		rng.W(h(1), 1),
		rng.W(h(4.0/3), 1),
		rng.W(h(5.0/3), 0.5),
	})

	f := newConstantField(0)
	x := components.FieldLeft
	for i := 0; i < components.FieldCols; i++ {
		y := components.FieldTop
		col := f.angles[i*components.FieldRows : (i+1)*components.FieldRows]
		for j := range col {
			a := fastmath.Angle(x, y, cx, cy)
			if math.IsNaN(a) {
				a = 0
			}
			col[j] = a + rot
			y += components.FieldSpacing
		}
		x += components.FieldSpacing
	}
	return f
}

// Disturbance bends the field around a center, fading linearly to nothing at Radius.
type Disturbance struct {
	Center components.Position
	Theta  float64
	Radius float64
}

var (
	lowDisturbanceCounts  = []rng.Weighted[int]{rng.W(10, 2), rng.W(15, 3), rng.W(20, 2), rng.W(30, 1)}
	highDisturbanceCounts = []rng.Weighted[int]{rng.W(20, 1), rng.W(30, 2), rng.W(40, 3), rng.W(50, 2), rng.W(60, 1)}
	lowDisturbanceThetas  = []rng.Weighted[float64]{rng.W(fastmath.PiTimes(0.005), 1), rng.W(fastmath.PiTimes(0.01), 1)}
	highDisturbanceThetas = []rng.Weighted[float64]{
		rng.W(fastmath.PiTimes(0.05), 1), rng.W(fastmath.PiTimes(0.1), 1), rng.W(fastmath.PiTimes(0.15), 1),
	}
)

// BuildDisturbances draws the disturbances for the turbulence trait.
func BuildDisturbances(t traits.Traits, r *rng.Rng) []Disturbance {
	var num int
	var thetaVariance float64
	switch t.Turbulence {
	case traits.TurbulenceLow:
		num = rng.WeightedChoice(r, lowDisturbanceCounts)
		thetaVariance = rng.WeightedChoice(r, lowDisturbanceThetas)
	case traits.TurbulenceHigh:
		num = rng.WeightedChoice(r, highDisturbanceCounts)
		thetaVariance = rng.WeightedChoice(r, highDisturbanceThetas)
	}

	out := make([]Disturbance, 0, num)
	for range num {
		x := r.Uniform(components.FieldLeft, components.FieldRight)
		y := r.Uniform(components.FieldTop, components.FieldBottom)
		theta := r.Gauss(0, thetaVariance)
		radius := max(math.Abs(r.Gauss(components.W(0.35), components.W(0.35))), components.W(0.1))
		out = append(out, Disturbance{Center: components.Position{X: x, Y: y}, Theta: theta, Radius: radius})
	}
	return out
}

// ceilIndex is the ceiling counterpart of fastmath.FloorIndex.
func ceilIndex(v float64) int {
	return fastmath.FloorIndex(math.Ceil(v))
}

// Adjust adds each disturbance to the cells within its radius, in order.
func (f *FlowField) Adjust(ds []Disturbance) {
	for _, d := range ds {
		cx, cy := d.Center.X, d.Center.Y
		minI := fastmath.FloorIndex((cx - d.Radius - components.FieldLeft) / components.FieldSpacing)
		maxI := min(components.FieldCols-1, ceilIndex((cx+d.Radius-components.FieldLeft)/components.FieldSpacing))
		minJ := fastmath.FloorIndex((cy - d.Radius - components.FieldTop) / components.FieldSpacing)
		maxJ := min(components.FieldRows-1, ceilIndex((cy+d.Radius-components.FieldTop)/components.FieldSpacing))

		for i := minI; i <= maxI; i++ {
			x := components.FieldLeft + components.FieldSpacing*float64(i)
			for j := minJ; j <= maxJ; j++ {
				y := components.FieldTop + components.FieldSpacing*float64(j)
				dist := fastmath.Dist(cx, cy, x, y)
				f.angles[i*components.FieldRows+j] += fastmath.Rescale(dist, 0, d.Radius, d.Theta, 0)
			}
		}
	}
}

// IgnoreFlowField gives the odds that a whole group walks in a straight line instead of
// following the field.
type IgnoreFlowField struct {
	Odds         float64
	DefaultTheta float64
}

var ignoreFlowFieldOdds = []rng.Weighted[float64]{rng.W(0.0, 10), rng.W(0.5, 2), rng.W(0.8, 1), rng.W(0.9, 1)}

// NewIgnoreFlowField draws the ignore odds.
func NewIgnoreFlowField(spec FlowFieldSpec, r *rng.Rng) IgnoreFlowField {
	return IgnoreFlowField{
		Odds:         rng.WeightedChoice(r, ignoreFlowFieldOdds),
		DefaultTheta: spec.DefaultTheta,
	}
}
