package systems

import (
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/traits"
)

// StartGroups are the seed positions of flow lines, grouped so that a whole group shares a
// color step and a flow-field decision.
type StartGroups [][]components.Position

// BuildStartGroups lays out start points for the structure trait.
func BuildStartGroups(s traits.Structure, r *rng.Rng) StartGroups {
	switch s {
	case traits.Orbital:
		return orbital(r)
	case traits.Shadows:
		return shadows(r)
	case traits.Formation:
		return formation(r)
	}
	panic("systems: unknown structure trait")
}

var (
	orbitalBaseSteps = []rng.Weighted[float64]{
		rng.W(w(0.01), 3), rng.W(w(0.02), 2), rng.W(w(0.04), 1), rng.W(w(0.06), 1), rng.W(w(0.08), 1),
		rng.W(w(0.16), 0.5),
	}
	orbitalGroupSteps = []rng.Weighted[float64]{rng.W(w(0.07), 0.333), rng.W(w(0.15), 0.333), rng.W(w(0.3), 0.333)}

	gridSteps = []rng.Weighted[float64]{
		rng.W(w(0.0075), 0.37), rng.W(w(0.01), 0.35), rng.W(w(0.02), 0.25), rng.W(w(0.04), 0.02),
		rng.W(w(0.08), 0.01),
	}
)

func orbitalCenters(f func(float64) float64) []rng.Weighted[float64] {
	return []rng.Weighted[float64]{
		rng.W(f(0.5), 0.3), rng.W(f(0.333), 0.2), rng.W(f(0.666), 0.2), rng.W(f(-0.333), 0.1),
		rng.W(f(1.333), 0.1), rng.W(f(-1.6), 0.05), rng.W(f(1.6), 0.05),
	}
}

// orbital places concentric arcs around a center, split into one to three sectors per band.
func orbital(r *rng.Rng) StartGroups {
	baseStep := rng.WeightedChoice(r, orbitalBaseSteps)
	radialStep := baseStep * 0.5
	groupStep := rng.WeightedChoice(r, orbitalGroupSteps)

	cx := rng.WeightedChoice(r, orbitalCenters(components.W))
	cy := rng.WeightedChoice(r, orbitalCenters(components.H))

	var (
		left   = w(-1.0 / 3)
		right  = w(4.0 / 3)
		top    = components.H(-1.0 / 3)
		bottom = components.H(4.0 / 3)
	)
	inBounds := func(x, y float64) bool {
		return x > left && x < right && y > top && y < bottom
	}

	farthest := 0.0
	for _, corner := range [][2]float64{{0, 0}, {w(1), 0}, {w(1), components.H(1)}, {0, components.H(1)}} {
		farthest = max(farthest, fastmath.Dist(cx, cy, corner[0], corner[1]))
	}
	maxRadius := w(0.05) + farthest
	splitOffset := r.Uniform(0, fastmath.TwoPi)

	var groups StartGroups
	for groupRadius := w(0.001); groupRadius < maxRadius; groupRadius += groupStep {
		numSplits := rng.Choice(r, []int{1, 2, 3})
		splitLen := fastmath.TwoPi / float64(numSplits)

		for theta := splitOffset; theta < splitOffset+fastmath.TwoPi; theta += splitLen {
			var group []components.Position
			for radius := groupRadius; radius < groupRadius+groupStep; radius += radialStep {
				stepsWanted := radius * fastmath.TwoPi / baseStep
				thetaStep := max(fastmath.PiTimes(0.005), fastmath.TwoPi/stepsWanted)
				for inner := theta; inner < theta+splitLen; inner += thetaStep {
					x, y := fastmath.AddPolarOffset(cx, cy, inner, radius)
					if inBounds(x, y) {
						group = append(group, components.Position{X: x, Y: y})
					}
				}
			}
			groups = append(groups, group)
		}
	}
	return groups
}

type circle struct {
	center components.Position
	radius float64
}

func (c circle) collides(o circle) bool {
	return fastmath.Dist(c.center.X, c.center.Y, o.center.X, o.center.Y) < c.radius+o.radius
}

// shadows packs non-overlapping circles and fills each one, either with rings or a grid.
func shadows(r *rng.Rng) StartGroups {
	numCircles := rng.Choice(r, []int{5, 7, 10, 20, 30, 60})
	pSquare := rng.Choice(r, []float64{0, 0.5, 1})
	columnar := r.Odds(0.5)
	outward := r.Odds(0.5)

	radialFill := func(c circle) []components.Position {
		const (
			radiusStep        = components.VirtualW * 0.02
			circumferenceStep = components.VirtualW * 0.01
		)
		var group []components.Position
		for radius := c.radius; radius > 0; radius -= radiusStep {
			thetaStep := fastmath.TwoPi / (radius * fastmath.TwoPi / circumferenceStep)
			for theta := 0.0; theta < fastmath.PiTimes(2.01); theta += thetaStep {
				x, y := fastmath.AddPolarOffset(c.center.X, c.center.Y, theta, radius)
				group = append(group, components.Position{X: x, Y: y})
			}
		}
		if outward {
			for i, j := 0, len(group)-1; i < j; i, j = i+1, j-1 {
				group[i], group[j] = group[j], group[i]
			}
		}
		if r.Odds(0.05) {
			group = rng.Shuffle(r, group)
		}
		return group
	}

	squareFill := func(c circle) []components.Position {
		step := rng.WeightedChoice(r, gridSteps)
		r2 := c.radius * c.radius
		var group []components.Position
		for a := -c.radius; a < c.radius; a += step {
			for b := -c.radius; b < c.radius; b += step {
				x, y := c.center.X+b, c.center.Y+a
				if columnar {
					x, y = c.center.X+a, c.center.Y+b
				}
				dx := c.center.X - x
				dy := c.center.Y - y
				if dx*dx+dy*dy < r2 {
					group = append(group, components.Position{X: x, Y: y})
				}
			}
		}
		return group
	}

	circles := make([]circle, 0, numCircles)
	for iter := 0; len(circles) < numCircles && iter < 1000; iter++ {
		c := circle{
			center: components.Position{X: r.Uniform(0, w(1)), Y: r.Uniform(0, components.H(1))},
			radius: r.Uniform(w(0.05), w(0.5)),
		}
		ok := true
		for _, o := range circles {
			if c.collides(o) {
				ok = false
				break
			}
		}
		if ok {
			circles = append(circles, c)
		}
	}

	groups := make(StartGroups, 0, len(circles))
	for _, c := range circles {
		if r.Odds(pSquare) {
			groups = append(groups, squareFill(c))
		} else {
			groups = append(groups, radialFill(c))
		}
	}
	return groups
}

var (
	formationColumns = []rng.Weighted[int]{
		rng.W(1, 0.7), rng.W(2, 0.35), rng.W(3, 0.25), rng.W(4, 0.1), rng.W(5, 0.05), rng.W(7, 0.05),
	}
	formationRows = []rng.Weighted[int]{
		rng.W(1, 0.4), rng.W(2, 0.35), rng.W(3, 0.25), rng.W(4, 0.1), rng.W(5, 0.05), rng.W(7, 0.05),
	}
	formationSkipOdds = []rng.Weighted[float64]{rng.W(0.0, 0.5), rng.W(0.1, 0.3), rng.W(0.2, 0.15), rng.W(0.5, 0.05)}
)

// formation tiles the canvas into rectangular blocks of grid points, shuffles the blocks,
// and drops some of them. The first block after shuffling always survives.
func formation(r *rng.Rng) StartGroups {
	step := rng.WeightedChoice(r, gridSteps)
	cols := rng.WeightedChoice(r, formationColumns)
	rows := rng.WeightedChoice(r, formationRows)
	blockW := w(1.2) / float64(cols)
	blockH := components.H(1.2) / float64(rows)
	skipOdds := rng.WeightedChoice(r, formationSkipOdds)

	starts := make([]components.Position, 0, cols*rows)
	for x := w(-0.1); x < w(1.1); x += blockW {
		for y := components.H(-0.1); y < components.H(1.1); y += blockH {
			starts = append(starts, components.Position{X: x, Y: y})
		}
	}
	starts = rng.Shuffle(r, starts)

	var groups StartGroups
	for i, s := range starts {
		if i != 0 && r.Odds(skipOdds) {
			continue
		}
		var group []components.Position
		for y := s.Y; y < s.Y+blockH; y += step {
			for x := s.X; x < s.X+blockW; x += step {
				group = append(group, components.Position{X: x, Y: y})
			}
		}
		groups = append(groups, group)
	}
	return groups
}
