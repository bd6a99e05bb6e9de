// Package art turns a seed into a finished piece: it decodes traits, lays out points, and
// paints them, either in one pass or as a sequence of animation frames.
package art

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/config"
	"github.com/pthm-cable/qql/renderer"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/systems"
	"github.com/pthm-cable/qql/telemetry"
	"github.com/pthm-cable/qql/traits"
)

// Frame is one emitted image. Canvas is reused by later frames; copy or encode it before
// returning from the callback.
type Frame struct {
	Canvas   *renderer.Canvas
	Number   int
	Animated bool
}

// FrameFunc receives each frame in order. A non-nil error stops the draw.
type FrameFunc func(Frame) error

// RingCountBin is one bar of the ring count histogram.
type RingCountBin struct {
	Rings components.RingCount
	Count int
}

// RenderData summarizes a finished draw.
type RenderData struct {
	Canvas     *renderer.Canvas
	Traits     traits.Traits
	Points     []components.Point
	NumPoints  int
	NumFrames  int
	ColorsUsed *color.Used
	RingCounts []RingCountBin
}

type drawOptions struct {
	perf *telemetry.PerfCollector
}

// Option configures Draw.
type Option func(*drawOptions)

// WithPerf times each frame's phases into p.
func WithPerf(p *telemetry.PerfCollector) Option {
	return func(o *drawOptions) { o.perf = p }
}

// Draw renders seed at the given output width. onFrame, if non-nil, is called once for a
// still render and once per frame when cfg animates.
func Draw(seed traits.Seed, db *color.DB, cfg *config.Config, width int, onFrame FrameFunc, opts ...Option) (*RenderData, error) {
	var o drawOptions
	for _, opt := range opts {
		opt(&o)
	}
	if onFrame == nil {
		onFrame = func(Frame) error { return nil }
	}
	perf := o.perf

	t := traits.FromSeed(seed)
	slog.Debug("initialized traits", "seed", seed.String(), "traits", t)

	perf.StartTick()
	perf.StartPhase(telemetry.PhaseLayout)
	r := rng.New(seed[:])
	layout := systems.BuildLayout(t, db, cfg.Render.FastCollisions, r)
	points := layout.Points
	systems.AdjustDrawRadius(cfg.Render.InflateDrawRadius, points)
	stack := systems.NewStackOffset(t, r)
	slog.Debug("laid out points", "points", len(points), "groups", len(layout.GroupSizes))

	rd := &renderer.Renderer{
		DB:              db,
		Scheme:          layout.Scheme,
		Stack:           stack,
		Zebra:           t.ColorMode == traits.ModeZebra,
		Viewport:        cfg.Derived.Viewport,
		Chunks:          cfg.Derived.Chunks,
		Width:           width,
		MinCircleSteps:  cfg.MinCircleSteps(),
		VerifySplatters: cfg.Render.VerifySplatters,
	}
	d := &drawer{
		rd:      rd,
		used:    layout.Used,
		rng:     r,
		perf:    perf,
		onFrame: onFrame,
	}

	anim := cfg.Derived.Animation
	var (
		canvas *renderer.Canvas
		err    error
	)
	if anim.Kind == config.AnimateNone {
		canvas, err = d.still(points)
	} else {
		batches := batchPoints(points, anim, layout.GroupSizes)
		canvas, err = d.animate(batches, cfg.Render.SplatterImmediately)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("drew points", "points", len(points), "frames", d.frame, "colors", d.used.Len())

	return &RenderData{
		Canvas:     canvas,
		Traits:     t,
		Points:     points,
		NumPoints:  len(points),
		NumFrames:  d.frame,
		ColorsUsed: d.used,
		RingCounts: ringHistogram(layout.RingCounts),
	}, nil
}

type drawer struct {
	rd      *renderer.Renderer
	used    *color.Used
	rng     *rng.Rng
	perf    *telemetry.PerfCollector
	onFrame FrameFunc
	frame   int
}

func (d *drawer) emit(c *renderer.Canvas, animated bool) error {
	d.perf.StartPhase(telemetry.PhaseEmit)
	err := d.onFrame(Frame{Canvas: c, Number: d.frame, Animated: animated})
	d.perf.EndTick()
	if err != nil {
		return fmt.Errorf("frame %d: %w", d.frame, err)
	}
	d.frame++
	d.perf.StartTick()
	return nil
}

func (d *drawer) still(points []components.Point) (*renderer.Canvas, error) {
	d.perf.StartPhase(telemetry.PhasePaint)
	canvas, _ := d.rd.Render(renderer.Job{
		Mode:       renderer.Paint,
		Background: renderer.Opaque,
		Sink:       renderer.SplatterImmediate,
		Points:     points,
	}, d.used, d.rng)
	if err := d.emit(canvas, false); err != nil {
		canvas.Close()
		return nil, err
	}
	return canvas, nil
}

// animate paints batches onto a persistent frame buffer, one frame per batch after a
// background-only frame 0. Either way the rng ends where a still render would leave it.
func (d *drawer) animate(batches [][]components.Point, eager bool) (*renderer.Canvas, error) {
	d.perf.StartPhase(telemetry.PhasePaint)
	before := d.rng.Clone()
	fb, _ := d.rd.Render(renderer.Job{Mode: renderer.Paint, Background: renderer.Opaque}, d.used, d.rng)
	if !d.rng.Equal(before) {
		panic("art: painting background changed rng")
	}
	if err := d.emit(fb, true); err != nil {
		fb.Close()
		return nil, err
	}

	var err error
	if eager {
		err = d.animateEager(fb, batches)
	} else {
		err = d.animateDeferred(fb, batches)
	}
	if err != nil {
		fb.Close()
		return nil, err
	}
	return fb, nil
}

// animateDeferred holds back every splatter and paints them all in a last frame.
func (d *drawer) animateDeferred(fb *renderer.Canvas, batches [][]components.Point) error {
	var splatters []components.Point
	for _, batch := range batches {
		d.perf.StartPhase(telemetry.PhasePaint)
		layer, these := d.rd.Render(renderer.Job{
			Mode:       renderer.Paint,
			Background: renderer.Transparent,
			Sink:       renderer.SplatterDeferred,
			Points:     batch,
		}, d.used, d.rng)
		splatters = append(splatters, these...)

		d.perf.StartPhase(telemetry.PhaseComposite)
		fb.Superimpose(layer, 0, 0)
		layer.Close()
		if err := d.emit(fb, true); err != nil {
			return err
		}
	}

	d.perf.StartPhase(telemetry.PhaseSplatters)
	layer, _ := d.rd.Render(renderer.Job{
		Mode:       renderer.Paint,
		Background: renderer.Transparent,
		Splatters:  splatters,
	}, d.used, d.rng)
	d.perf.StartPhase(telemetry.PhaseComposite)
	fb.Superimpose(layer, 0, 0)
	layer.Close()
	slog.Debug("painted deferred splatters", "splatters", len(splatters))
	return d.emit(fb, true)
}

// animateEager shows each batch's splatters as soon as the batch lands. A skip render of
// every normal point first seeks the rng to where a still render would start painting
// splatters; that trail then feeds a splatter layer kept on top of the frame buffer. The
// splatters show only in emitted frames: fb is left holding the normal points.
func (d *drawer) animateEager(fb *renderer.Canvas, batches [][]components.Point) error {
	var all []components.Point
	for _, b := range batches {
		all = append(all, b...)
	}
	d.perf.StartPhase(telemetry.PhaseSplatters)
	splatterRng := d.rng.Clone()
	d.rd.Render(renderer.Job{Mode: renderer.Skip, Sink: renderer.SplatterIgnored, Points: all}, color.NewUsed(), splatterRng)

	w, h := d.rd.Size()
	splatterLayer := renderer.NewCanvas(w, h)
	defer splatterLayer.Close()
	out := renderer.NewCanvas(w, h)
	defer out.Close()
	splatterUsed := color.NewUsed()

	for _, batch := range batches {
		d.perf.StartPhase(telemetry.PhasePaint)
		layer, these := d.rd.Render(renderer.Job{
			Mode:       renderer.Paint,
			Background: renderer.Transparent,
			Sink:       renderer.SplatterDeferred,
			Points:     batch,
		}, d.used, d.rng)

		d.perf.StartPhase(telemetry.PhaseSplatters)
		splats, _ := d.rd.Render(renderer.Job{
			Mode:       renderer.Paint,
			Background: renderer.Transparent,
			Splatters:  these,
		}, splatterUsed, splatterRng)

		d.perf.StartPhase(telemetry.PhaseComposite)
		splatterLayer.Superimpose(splats, 0, 0)
		splats.Close()
		fb.Superimpose(layer, 0, 0)
		layer.Close()
		out.CopyFrom(fb)
		out.Superimpose(splatterLayer, 0, 0)
		if err := d.emit(out, true); err != nil {
			return err
		}
	}

	d.used.Extend(splatterUsed)
	d.rng.CopyFrom(splatterRng)
	return nil
}

// batchPoints slices points into animation batches: one per group, or runs of a fixed size
// with a shorter final run.
func batchPoints(points []components.Point, anim config.Animation, groupSizes []int) [][]components.Point {
	var sizes []int
	switch anim.Kind {
	case config.AnimateGroups:
		sizes = groupSizes
	case config.AnimatePoints:
		for n := len(points); n > 0; n -= anim.Step {
			sizes = append(sizes, min(n, anim.Step))
		}
	default:
		return [][]components.Point{points}
	}

	batches := make([][]components.Point, 0, len(sizes))
	start := 0
	for _, n := range sizes {
		batches = append(batches, points[start:start+n])
		start += n
	}
	if start != len(points) {
		panic(fmt.Sprintf("art: batches cover %d of %d points", start, len(points)))
	}
	return batches
}

func ringHistogram(counts map[components.RingCount]int) []RingCountBin {
	bins := make([]RingCountBin, 0, len(counts))
	for _, rings := range slices.Sorted(maps.Keys(counts)) {
		bins = append(bins, RingCountBin{Rings: rings, Count: counts[rings]})
	}
	return bins
}
