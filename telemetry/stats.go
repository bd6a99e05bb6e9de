package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/qql/components"
)

// LayoutStats summarizes the size and density distribution of laid-out points.
type LayoutStats struct {
	Points int

	ScaleMean float64
	ScaleStd  float64
	ScaleP10  float64
	ScaleP50  float64
	ScaleP90  float64

	DensityMean float64
	DensityStd  float64
}

// ComputeLayoutStats computes scale and density statistics. Quantiles are empirical; the
// standard deviation is the sample one.
func ComputeLayoutStats(points []components.Point) LayoutStats {
	n := len(points)
	if n == 0 {
		return LayoutStats{}
	}
	scales := make([]float64, n)
	densities := make([]float64, n)
	for i, p := range points {
		scales[i] = p.Scale
		densities[i] = p.Bullseye.Density
	}

	s := LayoutStats{Points: n}
	s.ScaleMean, s.ScaleStd = stat.MeanStdDev(scales, nil)
	s.DensityMean, s.DensityStd = stat.MeanStdDev(densities, nil)

	slices.Sort(scales)
	s.ScaleP10 = stat.Quantile(0.10, stat.Empirical, scales, nil)
	s.ScaleP50 = stat.Quantile(0.50, stat.Empirical, scales, nil)
	s.ScaleP90 = stat.Quantile(0.90, stat.Empirical, scales, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s LayoutStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("points", s.Points),
		slog.Float64("scale_mean", s.ScaleMean),
		slog.Float64("scale_std", s.ScaleStd),
		slog.Float64("scale_p10", s.ScaleP10),
		slog.Float64("scale_p50", s.ScaleP50),
		slog.Float64("scale_p90", s.ScaleP90),
		slog.Float64("density_mean", s.DensityMean),
		slog.Float64("density_std", s.DensityStd),
	)
}

// RenderStats is the one-row summary written to render.csv.
type RenderStats struct {
	Seed      string `csv:"seed"`
	Width     int    `csv:"width"`
	Height    int    `csv:"height"`
	Chunks    string `csv:"chunks"`
	Animation string `csv:"animation"`

	FlowField string `csv:"flow_field"`
	Structure string `csv:"structure"`
	ColorMode string `csv:"color_mode"`
	Palette   string `csv:"palette"`

	Points int `csv:"points"`
	Frames int `csv:"frames"`
	Colors int `csv:"colors"`

	ScaleMean   float64 `csv:"scale_mean"`
	ScaleStd    float64 `csv:"scale_std"`
	ScaleP10    float64 `csv:"scale_p10"`
	ScaleP50    float64 `csv:"scale_p50"`
	ScaleP90    float64 `csv:"scale_p90"`
	DensityMean float64 `csv:"density_mean"`
	DensityStd  float64 `csv:"density_std"`

	ElapsedMS int64 `csv:"elapsed_ms"`
}

// SetLayout copies layout statistics into the row.
func (s *RenderStats) SetLayout(l LayoutStats) {
	s.Points = l.Points
	s.ScaleMean = l.ScaleMean
	s.ScaleStd = l.ScaleStd
	s.ScaleP10 = l.ScaleP10
	s.ScaleP50 = l.ScaleP50
	s.ScaleP90 = l.ScaleP90
	s.DensityMean = l.DensityMean
	s.DensityStd = l.DensityStd
}

// LogStats logs the render summary using slog.
func (s RenderStats) LogStats() {
	slog.Info("render",
		"seed", s.Seed,
		"width", s.Width,
		"height", s.Height,
		"chunks", s.Chunks,
		"animation", s.Animation,
		"points", s.Points,
		"frames", s.Frames,
		"colors", s.Colors,
		"scale_mean", s.ScaleMean,
		"scale_p50", s.ScaleP50,
		"density_mean", s.DensityMean,
		"elapsed_ms", s.ElapsedMS,
	)
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame     int    `csv:"frame"`
	Animated  bool   `csv:"animated"`
	Path      string `csv:"path"`
	ElapsedMS int64  `csv:"elapsed_ms"` // since the draw started
}

// RingRecord is one bar of the ring count histogram in rings.csv.
type RingRecord struct {
	Rings uint32 `csv:"rings"`
	Count int    `csv:"count"`
}
