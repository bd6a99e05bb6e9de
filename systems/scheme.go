package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/traits"
)

// ColorScheme is the palette slice a render paints with.
type ColorScheme struct {
	Background      color.Key
	PrimarySeq      []color.Key
	SecondarySeq    []color.Key
	SplatterOdds    float64
	SplatterCenter  components.Position
	SplatterChoices []color.Key
}

var (
	splatterOddsLow = []rng.Weighted[float64]{rng.W(0.0, 4), rng.W(0.001, 2), rng.W(0.002, 2), rng.W(0.005, 2)}
	splatterOddsMed = []rng.Weighted[float64]{
		rng.W(0.0, 3), rng.W(0.002, 2), rng.W(0.005, 2), rng.W(0.01, 1), rng.W(0.03, 1),
	}
	splatterOddsHigh = append(append([]rng.Weighted[float64]{}, splatterOddsMed...), rng.W(0.08, 1), rng.W(0.5, 0.05))

	colorCountsLow  = []rng.Weighted[int]{rng.W(1, 1), rng.W(2, 3), rng.W(3, 4), rng.W(4, 5), rng.W(5, 3)}
	colorCountsMed  = []rng.Weighted[int]{rng.W(5, 1), rng.W(6, 2), rng.W(7, 3), rng.W(8, 5), rng.W(10, 3), rng.W(15, 2)}
	colorCountsHigh = []rng.Weighted[int]{rng.W(10, 3), rng.W(12, 4), rng.W(15, 5), rng.W(20, 3), rng.W(25, 3)}
)

// NewColorScheme picks a background, applies its substitutions, and narrows the palette
// sequence to the primary and secondary subsets. Panics if db has no data for the palette.
func NewColorScheme(t traits.Traits, db *color.DB, r *rng.Rng) *ColorScheme {
	palette := db.Palette(t.ColorPalette)
	if palette == nil {
		panic(fmt.Sprintf("systems: missing color data for palette %v", t.ColorPalette))
	}

	bgOpts := make([]rng.Weighted[*color.Background], len(palette.BackgroundColors))
	for i, b := range palette.BackgroundColors {
		bgOpts[i] = rng.W(b.Background, b.Weight)
	}
	bg := rng.WeightedChoice(r, bgOpts)

	seq := make([]color.Key, 0, len(palette.ColorSeq))
	for _, c := range palette.ColorSeq {
		if k, ok := bg.Substitute(c); ok {
			seq = append(seq, k)
		}
	}

	splatterOpts := make([]rng.Weighted[color.Key], 0, len(palette.SplatterColors))
	for _, sc := range palette.SplatterColors {
		if k, ok := bg.Substitute(sc.Color); ok {
			splatterOpts = append(splatterOpts, rng.W(k, sc.Weight))
		}
	}
	// Negative draws round to zero before the floor of one applies.
	numSplatter := max(1, int(max(math.Round(r.Gauss(1.5, 2)), 0)))
	splatterChoices := make([]color.Key, numSplatter)
	for i := range splatterChoices {
		splatterChoices[i] = rng.WeightedChoice(r, splatterOpts)
	}

	var oddsTable []rng.Weighted[float64]
	var countTable []rng.Weighted[int]
	switch t.ColorVariety {
	case traits.VarietyLow:
		oddsTable, countTable = splatterOddsLow, colorCountsLow
	case traits.VarietyMedium:
		oddsTable, countTable = splatterOddsMed, colorCountsMed
	default:
		oddsTable, countTable = splatterOddsHigh, colorCountsHigh
	}

	primary := rng.Winnow(r, seq, rng.WeightedChoice(r, countTable))
	secondary := rng.Winnow(r, seq, rng.WeightedChoice(r, countTable))

	center := components.Position{
		X: r.Uniform(w(-0.1), w(1.1)),
		Y: r.Uniform(components.H(-0.1), components.H(1.1)),
	}
	odds := rng.WeightedChoice(r, oddsTable)

	return &ColorScheme{
		Background:      bg.Color,
		PrimarySeq:      primary,
		SecondarySeq:    secondary,
		SplatterOdds:    odds,
		SplatterCenter:  center,
		SplatterChoices: splatterChoices,
	}
}
