package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/qql/components"
)

func pointsWith(scales, densities []float64) []components.Point {
	pts := make([]components.Point, len(scales))
	for i := range pts {
		pts[i].Scale = scales[i]
		pts[i].Bullseye.Density = densities[i]
	}
	return pts
}

func TestComputeLayoutStats(t *testing.T) {
	scales := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	densities := []float64{2, 4, 4, 4, 5, 5, 7, 9, 5, 5}
	s := ComputeLayoutStats(pointsWith(scales, densities))

	tests := []struct {
		name      string
		got, want float64
	}{
		{"scale mean", s.ScaleMean, 5.5},
		{"scale std", s.ScaleStd, math.Sqrt(82.5 / 9)},
		{"scale p10", s.ScaleP10, 1},
		{"scale p50", s.ScaleP50, 5},
		{"scale p90", s.ScaleP90, 9},
		{"density mean", s.DensityMean, 5},
		{"density std", s.DensityStd, math.Sqrt(32.0 / 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
	if s.Points != 10 {
		t.Errorf("Points = %d, want 10", s.Points)
	}
	if scales[0] != 10 {
		t.Error("ComputeLayoutStats reordered its input")
	}
}

func TestComputeLayoutStatsEmpty(t *testing.T) {
	if s := ComputeLayoutStats(nil); s != (LayoutStats{}) {
		t.Errorf("ComputeLayoutStats(nil) = %+v, want zero", s)
	}
}

func TestRenderStatsSetLayout(t *testing.T) {
	var r RenderStats
	r.SetLayout(LayoutStats{Points: 3, ScaleMean: 2, ScaleP90: 4, DensityStd: 0.5})
	if r.Points != 3 || r.ScaleMean != 2 || r.ScaleP90 != 4 || r.DensityStd != 0.5 {
		t.Errorf("SetLayout gave %+v", r)
	}
}
