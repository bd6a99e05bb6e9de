package systems

import (
	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/traits"
)

// PointBuilder turns flow lines into placed points. It owns the mutable generators and the
// collision grid for one layout pass.
type PointBuilder struct {
	DB        *color.DB
	Scheme    *ColorScheme
	Odds      ColorChangeOdds
	Spacing   SpacingSpec
	Margins   MarginChecker
	Bullseyes *BullseyeGenerator
	Scales    *ScaleGenerator
	Sectors   *Sectors
	Used      *color.Used
}

// Build places points along every line, in order. It returns the points and, for each
// group, how many of them the group contributed.
func (b *PointBuilder) Build(groups []FlowLineGroup, r *rng.Rng) ([]components.Point, []int) {
	primaryIdx := int(r.Uniform(0, float64(len(b.Scheme.PrimarySeq))))
	secondaryIdx := int(r.Uniform(0, float64(len(b.Scheme.SecondarySeq))))
	bullseye := b.Bullseyes.Next(r)

	var points []components.Point
	sizes := make([]int, 0, len(groups))
	for _, g := range groups {
		if r.Odds(b.Odds.Group) {
			primaryIdx = PickNextColor(len(b.Scheme.PrimarySeq), primaryIdx, r)
			secondaryIdx = PickNextColor(len(b.Scheme.SecondarySeq), secondaryIdx, r)
			bullseye = b.Bullseyes.Next(r)
		}
		before := len(points)
		points = b.buildGroup(points, g, primaryIdx, secondaryIdx, bullseye, r)
		sizes = append(sizes, len(points)-before)
	}
	return points, sizes
}

// buildGroup appends the points of one group. Color indices and the bullseye are local to
// the group: line-level changes do not carry over to the next group.
func (b *PointBuilder) buildGroup(dst []components.Point, g FlowLineGroup, primaryIdx, secondaryIdx int,
	bullseye components.Bullseye, r *rng.Rng) []components.Point {
	if r.Odds(b.Odds.Line) {
		b.Scales.Change(r)
	}
	scale := b.Scales.Next(r)

	primaryKey := b.Scheme.PrimarySeq[primaryIdx]
	primarySpec := b.DB.MustColor(primaryKey)
	primary := SpecToColor(primaryKey, primarySpec, b.Used, r)

	secondaryKey := b.Scheme.SecondarySeq[secondaryIdx]
	secondarySpec := b.DB.MustColor(secondaryKey)
	secondary := SpecToColor(secondaryKey, secondarySpec, b.Used, r)

	for _, line := range g {
		for _, pos := range line {
			radius := b.Spacing.Radius(scale)
			if !b.Margins.InBounds(pos, radius) {
				continue
			}
			if !b.Sectors.TestAndAdd(components.Collider{Position: pos, Radius: radius}) {
				continue
			}
			primary = PerturbColor(primary, primarySpec, r)
			secondary = PerturbColor(secondary, secondarySpec, r)
			dst = append(dst, components.Point{
				Position:  pos,
				Scale:     scale,
				Primary:   primary,
				Secondary: secondary,
				Bullseye:  bullseye,
			})
		}

		// The scale drawn for this group stays in use; only the mean moves.
		b.Scales.Change(r)
		if r.Odds(b.Odds.Line) {
			primaryIdx = PickNextColor(len(b.Scheme.PrimarySeq), primaryIdx, r)
			primarySpec = b.DB.MustColor(b.Scheme.PrimarySeq[primaryIdx])
			bullseye = b.Bullseyes.Next(r)
		}
		if r.Odds(b.Odds.Line) {
			secondaryIdx = PickNextColor(len(b.Scheme.SecondarySeq), secondaryIdx, r)
			secondarySpec = b.DB.MustColor(b.Scheme.SecondarySeq[secondaryIdx])
		}
	}
	return dst
}

var colorSteps = []rng.Weighted[int]{rng.W(1, 0.64), rng.W(2, 0.24), rng.W(3, 0.1), rng.W(4, 0.02)}

// PickNextColor steps a few places forward or back through a sequence of length n,
// wrapping at both ends.
func PickNextColor(n, current int, r *rng.Rng) int {
	step := rng.WeightedChoice(r, colorSteps)
	if r.Odds(0.5) {
		step = -step
	}
	return ((current+step)%n + n) % n
}

// SpecToColor records key as used and returns a perturbed copy of its base color.
func SpecToColor(key color.Key, spec *color.Spec, used *color.Used, r *rng.Rng) color.Hsb {
	used.Insert(key)
	return PerturbColor(spec.Base(), spec, r)
}

// PerturbColor draws a color near c within the spec's bounds. Hue is clamped before it
// wraps into [0, 360).
func PerturbColor(c color.Hsb, spec *color.Spec, r *rng.Rng) color.Hsb {
	hue := fastmath.Modulo(fastmath.Clamp(r.Gauss(c.H, spec.HueVariance), spec.HueMin, spec.HueMax), 360)
	sat := fastmath.Clamp(r.Gauss(c.S, spec.SatVariance), spec.SatMin, spec.SatMax)
	bright := fastmath.Clamp(r.Gauss(c.B, spec.BrightVariance), spec.BrightMin, spec.BrightMax)
	return color.Hsb{H: hue, S: sat, B: bright}
}

// minDrawRadius is the floor applied by AdjustDrawRadius.
const minDrawRadius = components.VirtualW * 0.00041

// AdjustDrawRadius raises tiny or negative scales so every point leaves a mark.
func AdjustDrawRadius(inflate bool, points []components.Point) {
	if !inflate {
		return
	}
	for i := range points {
		points[i].Scale = max(points[i].Scale, minDrawRadius)
	}
}

// Layout is everything the paint stage needs from layout.
type Layout struct {
	Traits     traits.Traits
	Scheme     *ColorScheme
	Points     []components.Point
	GroupSizes []int
	Used       *color.Used
	// RingCounts maps drawn ring counts to how many points use them.
	RingCounts map[components.RingCount]int
}

// BuildLayout runs the layout pipeline for a seed's traits. The draw order is fixed; any
// change to it changes every render.
func BuildLayout(t traits.Traits, db *color.DB, fastCollisions bool, r *rng.Rng) *Layout {
	flowSpec := NewFlowFieldSpec(t, r)
	spacing := NewSpacingSpec(t, r)
	odds := NewColorChangeOdds(t, r)
	scales := NewScaleGenerator(t, r)
	bullseyes := NewBullseyeGenerator(t, r)
	scheme := NewColorScheme(t, db, r)

	field := BuildFlowField(flowSpec, t, r)
	ignore := NewIgnoreFlowField(flowSpec, r)
	starts := BuildStartGroups(t.Structure, r)
	lines := TraceFlowLines(field, ignore, starts, r)

	b := &PointBuilder{
		DB:        db,
		Scheme:    scheme,
		Odds:      odds,
		Spacing:   spacing,
		Margins:   NewMarginChecker(t),
		Bullseyes: bullseyes,
		Scales:    scales,
		Sectors:   NewCanvasSectors(fastCollisions),
		Used:      color.NewUsed(),
	}
	points, sizes := b.Build(lines, r)

	rings := make(map[components.RingCount]int)
	for _, p := range points {
		rings[p.DrawnRings()]++
	}
	return &Layout{
		Traits:     t,
		Scheme:     scheme,
		Points:     points,
		GroupSizes: sizes,
		Used:       b.Used,
		RingCounts: rings,
	}
}
