package systems

import (
	"testing"

	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
)

func collider(x, y, r float64) components.Collider {
	return components.Collider{Position: components.Position{X: x, Y: y}, Radius: r}
}

func TestSectorsTestAndAdd(t *testing.T) {
	tests := []struct {
		name   string
		placed []components.Collider
		probe  components.Collider
		want   bool
	}{
		{"empty grid", nil, collider(100, 100, 10), true},
		{"far apart", []components.Collider{collider(100, 100, 10)}, collider(500, 500, 10), true},
		{"overlapping", []components.Collider{collider(100, 100, 10)}, collider(115, 100, 10), false},
		{"just apart", []components.Collider{collider(100, 100, 10)}, collider(121, 100, 10), true},
		{"diagonal near miss", []components.Collider{collider(100, 100, 10)}, collider(115, 115, 10), true},
		{"diagonal overlap", []components.Collider{collider(100, 100, 10)}, collider(113, 113, 10), false},
		{"across bucket edge", []components.Collider{collider(74, 500, 5)}, collider(79, 500, 5), false},
		{"negative radius skips checks", []components.Collider{collider(100, 100, 50)}, collider(100, 100, -200), true},
	}

	for _, fast := range []bool{false, true} {
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				s := NewCanvasSectors(fast)
				for _, c := range tc.placed {
					if !s.TestAndAdd(c) {
						t.Fatalf("setup collider %+v rejected", c)
					}
				}
				if got := s.TestAndAdd(tc.probe); got != tc.want {
					t.Errorf("fast=%v: TestAndAdd(%+v) = %v, want %v", fast, tc.probe, got, tc.want)
				}
			})
		}
	}
}

func TestSectorsNegativeRadiusNotStored(t *testing.T) {
	s := NewCanvasSectors(false)
	if !s.TestAndAdd(collider(100, 100, -200)) {
		t.Fatal("negative radius should be accepted")
	}
	// Nothing was stored, so an overlapping collider is still accepted.
	if !s.TestAndAdd(collider(100, 100, 5)) {
		t.Error("collider overlapping an unstored one should be accepted")
	}
}

// No two accepted colliders may overlap, in either mode.
func TestSectorsInvariant(t *testing.T) {
	for _, fast := range []bool{false, true} {
		r := rng.New([]byte("sectors"))
		s := NewCanvasSectors(fast)
		var accepted []components.Collider
		for range 3000 {
			c := collider(r.Uniform(-50, 2050), r.Uniform(-50, 2550), r.Uniform(1, 60))
			if s.TestAndAdd(c) {
				accepted = append(accepted, c)
			}
		}
		if s.Len() != len(accepted) {
			t.Fatalf("Len() = %d, want %d", s.Len(), len(accepted))
		}
		for i := range accepted {
			for j := i + 1; j < len(accepted); j++ {
				a, b := accepted[i], accepted[j]
				d := fastmath.Dist(a.Position.X, a.Position.Y, b.Position.X, b.Position.Y)
				// The bounded sqrt is within 1e-7 of the true distance.
				if d < a.Radius+b.Radius-1e-6 {
					t.Fatalf("fast=%v: %+v and %+v overlap (d=%v)", fast, a, b, d)
				}
			}
		}
	}
}

func TestIndexerClamps(t *testing.T) {
	ix := newIndexer(-100, 2100)
	tests := []struct {
		v    float64
		want int
	}{
		{-1e9, 0},
		{-100, 0},
		{-56, 1},
		{2099, NumSectors - 1},
		{1e9, NumSectors - 1},
	}
	for _, tc := range tests {
		if got := ix.index(tc.v); got != tc.want {
			t.Errorf("index(%v) = %d, want %d", tc.v, got, tc.want)
		}
	}
}
