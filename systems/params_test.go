package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/traits"
)

func TestSpacingSpecRanges(t *testing.T) {
	for _, sp := range []traits.Spacing{traits.SpacingDense, traits.SpacingMedium, traits.SpacingSparse} {
		r := rng.New([]byte(sp.String()))
		for range 200 {
			s := NewSpacingSpec(traits.Traits{Spacing: sp}, r)
			if s.Multiplier < 0.98 || s.Constant < 0 {
				t.Fatalf("%v: %+v", sp, s)
			}
		}
	}
}

func TestSpacingRadius(t *testing.T) {
	tests := []struct {
		name  string
		spec  SpacingSpec
		scale float64
		want  float64
	}{
		{"proportional", SpacingSpec{Multiplier: 1.1, Constant: 2}, 10, 13},
		{"large dots get a minimum multiplier", SpacingSpec{Multiplier: 1, Constant: 0}, 40, 40.8},
		{"floor at three quarters", SpacingSpec{Multiplier: 1, Constant: -100}, 20, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.spec.Radius(tc.scale); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Radius(%v) = %v, want %v", tc.scale, got, tc.want)
			}
		})
	}
}

func TestColorChangeOddsClamped(t *testing.T) {
	r := rng.New([]byte("odds"))
	for _, s := range []traits.Structure{traits.Orbital, traits.Formation, traits.Shadows} {
		for _, v := range []traits.ColorVariety{traits.VarietyLow, traits.VarietyMedium, traits.VarietyHigh} {
			for _, sp := range []traits.Spacing{traits.SpacingDense, traits.SpacingSparse} {
				tr := traits.Traits{Structure: s, ColorVariety: v, Spacing: sp, RingSize: traits.RingLarge}
				for range 50 {
					o := NewColorChangeOdds(tr, r)
					if o.Group < 0 || o.Group > 1 || o.Line < 0 || o.Line > 1 {
						t.Fatalf("%+v: odds %+v out of range", tr, o)
					}
				}
			}
		}
	}
}

func TestScaleGenerator(t *testing.T) {
	t.Run("constant never changes", func(t *testing.T) {
		r := rng.New([]byte("constant"))
		g := NewScaleGenerator(traits.Traits{SizeVariety: traits.Constant, RingSize: traits.RingMedium}, r)
		mean, state := g.Mean, r.State()
		g.Change(r)
		if g.Mean != mean || r.State() != state {
			t.Error("Change on a constant generator should be a no-op")
		}
	})

	t.Run("wild starts from a start choice", func(t *testing.T) {
		r := rng.New([]byte("wild"))
		for range 50 {
			g := NewScaleGenerator(traits.Traits{SizeVariety: traits.Wild, RingSize: traits.RingLarge}, r)
			found := false
			for _, v := range scaleL {
				found = found || g.Mean == v
			}
			if !found {
				t.Fatalf("wild large mean %v is not a large scale", g.Mean)
			}
		}
	})

	t.Run("variable drifts", func(t *testing.T) {
		r := rng.New([]byte("variable"))
		g := NewScaleGenerator(traits.Traits{SizeVariety: traits.Variable, RingSize: traits.RingSmall}, r)
		means := map[float64]bool{g.Mean: true}
		for range 20 {
			g.Change(r)
			means[g.Mean] = true
			if v := g.Next(r); math.IsNaN(v) {
				t.Fatal("Next returned NaN")
			}
		}
		if len(means) < 10 {
			t.Errorf("only %d distinct means after 20 changes", len(means))
		}
	})
}

func TestBullseyeGenerator(t *testing.T) {
	tests := []struct {
		name      string
		rings     traits.BullseyeRings
		thickness traits.RingThickness
		options   int
		allowed   []components.RingCount
	}{
		{"none enabled means two", traits.BullseyeRings{}, traits.Thin, 2, []components.RingCount{2}},
		{"one and seven", traits.BullseyeRings{One: true, Seven: true}, traits.Thick, 4, []components.RingCount{1, 7}},
		{"all, mixed", traits.BullseyeRings{One: true, Three: true, Seven: true}, traits.MixedThickness, 6,
			[]components.RingCount{1, 3, 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := rng.New([]byte(tc.name))
			g := NewBullseyeGenerator(traits.Traits{BullseyeRings: tc.rings, RingThickness: tc.thickness}, r)
			if len(g.RingOptions) != tc.options {
				t.Fatalf("got %d options, want %d", len(g.RingOptions), tc.options)
			}
			if g.RingOptions[0].Weight != 1 {
				t.Errorf("first weight = %v", g.RingOptions[0].Weight)
			}
			for range 100 {
				b := g.Next(r)
				if b.Density < 0.17 || b.Density > 0.93 {
					t.Fatalf("density %v out of range", b.Density)
				}
				ok := false
				for _, a := range tc.allowed {
					ok = ok || b.Rings == a
				}
				if !ok {
					t.Fatalf("rings %d not allowed", b.Rings)
				}
			}
		})
	}
}

func TestMarginChecker(t *testing.T) {
	tests := []struct {
		margin traits.Margin
		pos    components.Position
		radius float64
		want   bool
	}{
		{traits.MarginNone, components.Position{X: -50, Y: 1000}, 10, true},
		{traits.MarginNone, components.Position{X: -95, Y: 1000}, 10, false},
		{traits.MarginCrisp, components.Position{X: 10, Y: 1000}, 3, true},
		{traits.MarginCrisp, components.Position{X: 8, Y: 1000}, 3, false},
		{traits.MarginWide, components.Position{X: 1000, Y: 2300}, 10, true},
		{traits.MarginWide, components.Position{X: 1000, Y: 2335}, 10, false},
		// The right edge is exclusive, the bottom edge inclusive.
		{traits.MarginCrisp, components.Position{X: 1984, Y: 1000}, 10, false},
		{traits.MarginCrisp, components.Position{X: 1000, Y: 2484}, 10, true},
	}
	for _, tc := range tests {
		m := NewMarginChecker(traits.Traits{Margin: tc.margin})
		if got := m.InBounds(tc.pos, tc.radius); got != tc.want {
			t.Errorf("%v InBounds(%+v, %v) = %v, want %v", tc.margin, tc.pos, tc.radius, got, tc.want)
		}
	}
}

func TestStackOffset(t *testing.T) {
	r := rng.New([]byte("stack"))
	state := r.State()
	if o := NewStackOffset(traits.Traits{ColorMode: traits.ModeZebra}, r); o.Active || r.State() != state {
		t.Error("non-stacked modes draw nothing")
	}
	for range 50 {
		o := NewStackOffset(traits.Traits{ColorMode: traits.ModeStacked}, r)
		if !o.Active || o.DY < 0 {
			t.Fatalf("offset %+v", o)
		}
	}
}
