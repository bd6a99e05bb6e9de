package systems

import (
	"math"

	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/traits"
)

var w = components.W

// SpacingSpec sets the exclusion radius around a point: scale*Multiplier + Constant.
type SpacingSpec struct {
	Multiplier float64
	Constant   float64
}

// NewSpacingSpec draws the spacing for the trait. Medium and sparse spacing pick between a
// mostly proportional, a mostly constant, and a mixed regime.
func NewSpacingSpec(t traits.Traits, r *rng.Rng) SpacingSpec {
	switch t.Spacing {
	case traits.SpacingDense:
		return SpacingSpec{
			Multiplier: max(r.Gauss(1, 0.04), 0.98),
			Constant:   w(max(r.Gauss(0, 0.002), 0)),
		}
	case traits.SpacingMedium:
		switch {
		case r.Odds(0.333):
			return SpacingSpec{
				Multiplier: 1.15 + max(r.Gauss(0, 0.2), 0),
				Constant:   w(max(r.Gauss(0, 0.001), 0)),
			}
		case r.Odds(0.5):
			return SpacingSpec{
				Multiplier: r.Uniform(1, 1.03),
				Constant:   w(0.003) + w(max(r.Gauss(0, 0.005), 0)),
			}
		default:
			return SpacingSpec{
				Multiplier: 1.05 + max(r.Gauss(0, 0.1), 0),
				Constant:   w(0.002) + w(max(r.Gauss(0, 0.0015), 0)),
			}
		}
	case traits.SpacingSparse:
		switch {
		case r.Odds(0.333):
			return SpacingSpec{
				Multiplier: 1.25 + max(r.Gauss(0, 0.5), 0),
				Constant:   w(max(r.Gauss(0, 0.002), 0)),
			}
		case r.Odds(0.5):
			return SpacingSpec{
				Multiplier: r.Uniform(1.01, 1.08),
				Constant:   w(0.008) + w(max(r.Gauss(0, 0.02), 0)),
			}
		default:
			return SpacingSpec{
				Multiplier: 1.15 + max(r.Gauss(0, 0.3), 0),
				Constant:   w(0.005) + w(max(r.Gauss(0, 0.006), 0)),
			}
		}
	}
	panic("systems: unknown spacing trait")
}

// Radius returns the exclusion radius for a point of the given scale.
func (s SpacingSpec) Radius(scale float64) float64 {
	mult := s.Multiplier
	if scale > w(0.015) {
		mult = max(mult, 1.02)
	}
	return max(scale*mult+s.Constant, scale*0.75)
}

// ColorChangeOdds holds the probabilities of stepping to a new color at each group and at
// each flow line. Both are in [0, 1].
type ColorChangeOdds struct {
	Group float64
	Line  float64
}

// NewColorChangeOdds draws the change odds for the structure and variety, then scales them
// by ring size and spacing.
func NewColorChangeOdds(t traits.Traits, r *rng.Rng) ColorChangeOdds {
	var group, line float64
	switch t.Structure {
	case traits.Shadows:
		switch t.ColorVariety {
		case traits.VarietyLow:
			group, line = r.Gauss(0.15, 0.15), r.Uniform(-0.004, 0.002)
		case traits.VarietyMedium:
			group, line = r.Gauss(0.55, 0.2), r.Uniform(0.01, 0.01)
		default:
			group, line = r.Gauss(0.9, 0.1), r.Uniform(-0.1, 0.2)
		}
	case traits.Formation:
		switch t.ColorVariety {
		case traits.VarietyLow:
			group, line = r.Gauss(0.5, 0.2), r.Uniform(-0.002, 0.003)
		case traits.VarietyMedium:
			group, line = r.Gauss(0.75, 0.2), r.Uniform(-0.005, 0.01)
		default:
			group, line = r.Gauss(0.9, 0.1), r.Uniform(-0.1, 0.2)
		}
	default:
		switch t.ColorVariety {
		case traits.VarietyLow:
			group, line = r.Gauss(0.11, 0.08), r.Uniform(-0.002, 0.0015)
		case traits.VarietyMedium:
			group, line = r.Gauss(0.25, 0.1), r.Uniform(-0.01, 0.01)
		default:
			group, line = r.Gauss(0.7, 0.2), r.Uniform(-0.1, 0.2)
		}
	}

	// Calibrated for medium rings at dense spacing.
	mult := 1.0
	switch t.RingSize {
	case traits.RingSmall:
		mult = 0.5
	case traits.RingLarge:
		mult = 1.1
	}
	switch t.Spacing {
	case traits.SpacingMedium:
		mult *= 1.1
	case traits.SpacingSparse:
		mult *= 2
	}

	return ColorChangeOdds{
		Group: fastmath.Clamp(group*mult, 0, 1),
		Line:  fastmath.Clamp(line*mult, 0, 1),
	}
}

// ScaleKind selects how a ScaleGenerator drifts.
type ScaleKind uint8

const (
	ScaleConstant ScaleKind = iota
	ScaleVariable
	ScaleWild
)

// Reference dot radii, in virtual units.
var (
	scaleXS = [...]float64{w(0.0018), w(0.0025)}
	scaleS  = [...]float64{w(0.003), w(0.004), w(0.006)}
	scaleM  = [...]float64{w(0.012), w(0.017), w(0.023), w(0.048)}
	scaleL  = [...]float64{w(0.1), w(0.15), w(0.2), w(0.3)}
)

type scaleTable = []rng.Weighted[float64]

var (
	constantScales = [...]scaleTable{
		traits.RingSmall:  {rng.W(scaleXS[1], 2), rng.W(scaleS[0], 3), rng.W(scaleS[1], 2), rng.W(scaleS[2], 1)},
		traits.RingMedium: {rng.W(scaleM[0], 2), rng.W(scaleM[1], 3), rng.W(scaleM[2], 2), rng.W(scaleM[3], 1)},
		traits.RingLarge:  {rng.W(scaleL[0], 3), rng.W(scaleL[1], 2), rng.W(scaleL[2], 1)},
	}
	variableScales = [...]scaleTable{
		traits.RingSmall: {
			rng.W(scaleXS[1], 1.3), rng.W(scaleS[0], 2), rng.W(scaleS[1], 5), rng.W(scaleS[2], 8), rng.W(scaleM[0], 3),
		},
		traits.RingMedium: {
			rng.W(scaleS[2], 2), rng.W(scaleM[0], 8), rng.W(scaleM[1], 8), rng.W(scaleM[2], 13), rng.W(scaleM[3], 8),
			rng.W(scaleL[0], 5),
		},
		traits.RingLarge: {
			rng.W(scaleM[1], 0.5), rng.W(scaleM[2], 2), rng.W(scaleM[3], 2), rng.W(scaleL[0], 5), rng.W(scaleL[1], 8),
			rng.W(scaleL[2], 8), rng.W(scaleL[3], 4),
		},
	}
	wildStarts = [...][]float64{
		traits.RingSmall:  {scaleS[1], scaleS[2], scaleM[0], scaleM[1], scaleM[2]},
		traits.RingMedium: {scaleS[2], scaleM[0], scaleM[1], scaleM[2], scaleM[3], scaleL[0], scaleL[1]},
		traits.RingLarge:  {scaleL[0], scaleL[1], scaleL[2], scaleL[3]},
	}
	wildScales = [...]scaleTable{
		traits.RingSmall: {
			rng.W(scaleXS[0], 3), rng.W(scaleXS[1], 3), rng.W(scaleS[0], 3), rng.W(scaleS[1], 4), rng.W(scaleS[2], 4),
			rng.W(scaleM[0], 3), rng.W(scaleM[1], 3), rng.W(scaleM[2], 3),
		},
		traits.RingMedium: {
			rng.W(scaleXS[0], 1), rng.W(scaleXS[1], 1), rng.W(scaleS[0], 1), rng.W(scaleS[1], 1), rng.W(scaleS[2], 2),
			rng.W(scaleM[0], 3), rng.W(scaleM[1], 3), rng.W(scaleM[2], 3), rng.W(scaleM[3], 3), rng.W(scaleL[0], 2),
			rng.W(scaleL[1], 2), rng.W(scaleL[2], 1),
		},
		traits.RingLarge: {
			rng.W(scaleXS[0], 1), rng.W(scaleXS[1], 1), rng.W(scaleS[0], 1), rng.W(scaleS[1], 1), rng.W(scaleS[2], 1),
			rng.W(scaleM[0], 1), rng.W(scaleM[1], 1), rng.W(scaleM[2], 1), rng.W(scaleL[0], 2), rng.W(scaleL[1], 5),
			rng.W(scaleL[2], 5), rng.W(scaleL[3], 5),
		},
	}
)

// ScaleGenerator produces dot radii around a drifting mean.
type ScaleGenerator struct {
	Kind    ScaleKind
	Mean    float64
	choices scaleTable
}

// NewScaleGenerator draws the starting mean for the size variety and ring size.
func NewScaleGenerator(t traits.Traits, r *rng.Rng) *ScaleGenerator {
	switch t.SizeVariety {
	case traits.Constant:
		mean := rng.WeightedChoice(r, constantScales[t.RingSize])
		if math.IsNaN(mean) || mean == 0 {
			panic("systems: bad scale")
		}
		return &ScaleGenerator{Kind: ScaleConstant, Mean: mean}
	case traits.Variable:
		choices := variableScales[t.RingSize]
		return &ScaleGenerator{Kind: ScaleVariable, Mean: rng.WeightedChoice(r, choices), choices: choices}
	case traits.Wild:
		return &ScaleGenerator{
			Kind:    ScaleWild,
			Mean:    rng.Choice(r, wildStarts[t.RingSize]),
			choices: wildScales[t.RingSize],
		}
	}
	panic("systems: unknown size variety trait")
}

// Next draws a scale around the current mean.
func (g *ScaleGenerator) Next(r *rng.Rng) float64 {
	switch g.Kind {
	case ScaleConstant:
		return r.Gauss(g.Mean, min(w(0.01), g.Mean*0.05))
	case ScaleVariable:
		return r.Gauss(g.Mean, min(w(0.035), g.Mean*0.15))
	default:
		return r.Gauss(g.Mean, g.Mean*0.3)
	}
}

// Change moves the mean to a new reference size. Constant generators never change.
func (g *ScaleGenerator) Change(r *rng.Rng) {
	var spread float64
	switch g.Kind {
	case ScaleConstant:
		return
	case ScaleVariable:
		spread = 0.1
	default:
		spread = 0.3
	}
	g.Mean = rng.WeightedChoice(r, g.choices)
	g.Mean = r.Gauss(g.Mean, g.Mean*spread)
}

// BullseyeGenerator draws ring counts and fill densities.
type BullseyeGenerator struct {
	DensityMean     float64
	DensityVariance float64
	RingOptions     []rng.Weighted[components.RingCount]
}

// NewBullseyeGenerator builds the weighted ring options enabled by the trait flags. Weights
// decay geometrically; higher density variance makes the first options dominate.
func NewBullseyeGenerator(t traits.Traits, r *rng.Rng) *BullseyeGenerator {
	counts := make([]components.RingCount, 0, 3)
	if t.BullseyeRings.One {
		counts = append(counts, 1)
	}
	if t.BullseyeRings.Three {
		counts = append(counts, 3)
	}
	if t.BullseyeRings.Seven {
		counts = append(counts, 7)
	}
	if len(counts) == 0 {
		counts = append(counts, 2)
	}

	var mean, variance float64
	switch t.RingThickness {
	case traits.Thin:
		mean, variance = 0.85, 0.15
	case traits.Thick:
		mean, variance = 0.28, 0.1
	default:
		mean, variance = 0.7, 1.0
	}
	dropoff := fastmath.Rescale(variance, 0, 1, 1, 0.35)

	n := len(counts) * 2
	options := make([]rng.Weighted[components.RingCount], 0, n)
	for weight := 1.0; n > 0 && weight > 0.001; weight *= dropoff {
		options = append(options, rng.W(rng.Choice(r, counts), weight))
		n--
	}

	return &BullseyeGenerator{DensityMean: mean, DensityVariance: variance, RingOptions: options}
}

// Next draws a bullseye.
func (g *BullseyeGenerator) Next(r *rng.Rng) components.Bullseye {
	density := fastmath.Clamp(r.Gauss(g.DensityMean, g.DensityVariance/2), 0.17, 0.93)
	rings := rng.WeightedChoice(r, g.RingOptions)
	return components.Bullseye{Rings: rings, Density: density}
}

// MarginChecker rejects points whose exclusion circle reaches into the margin.
type MarginChecker struct {
	Margin       float64
	BottomMargin float64
}

// NewMarginChecker returns the margins for the trait. The none margin is negative so dots
// may bleed off the canvas.
func NewMarginChecker(t traits.Traits) MarginChecker {
	switch t.Margin {
	case traits.MarginCrisp:
		return MarginChecker{Margin: w(0.003), BottomMargin: w(0.003)}
	case traits.MarginWide:
		return MarginChecker{Margin: w(0.07), BottomMargin: w(0.08)}
	default:
		return MarginChecker{Margin: w(-0.05), BottomMargin: w(-0.05)}
	}
}

// InBounds reports whether a circle of the given radius at p stays inside the margins.
func (m MarginChecker) InBounds(p components.Position, radius float64) bool {
	return !(p.X-radius < m.Margin ||
		p.X+radius >= components.VirtualW-m.Margin ||
		p.Y-radius < m.Margin ||
		p.Y+radius > components.VirtualH-m.BottomMargin)
}

// StackOffset is the shift of the shadow copy drawn under each dot in stacked mode.
type StackOffset struct {
	DX, DY float64
	Active bool
}

// NewStackOffset draws an offset for stacked pieces and consumes nothing otherwise. The
// shadow always falls downward.
func NewStackOffset(t traits.Traits, r *rng.Rng) StackOffset {
	if t.ColorMode != traits.ModeStacked {
		return StackOffset{}
	}
	dx := r.Gauss(0, w(0.0013))
	dy := math.Abs(r.Gauss(0, w(0.0013)))
	return StackOffset{DX: dx, DY: dy, Active: true}
}
