package renderer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/pthm-cable/qql/camera"
	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/systems"
)

// Background selects what a chunk canvas starts as.
type Background int

const (
	Transparent Background = iota
	Opaque
)

// SplatterSink decides what happens to splatters spawned while painting normal points.
type SplatterSink int

const (
	// SplatterImmediate paints splatters inside the same render, on top of the points.
	SplatterImmediate SplatterSink = iota
	// SplatterDeferred returns splatters to the caller for a later render.
	SplatterDeferred
	// SplatterIgnored drops them. The odds draw still happens.
	SplatterIgnored
)

func (s SplatterSink) String() string {
	switch s {
	case SplatterImmediate:
		return "immediate"
	case SplatterDeferred:
		return "deferred"
	case SplatterIgnored:
		return "ignored"
	}
	return fmt.Sprintf("SplatterSink(%d)", int(s))
}

// Job is one call to Render.
type Job struct {
	Mode       Mode
	Background Background
	Sink       SplatterSink
	// Points are painted in their own colors; Splatters are repainted in splatter colors
	// after them.
	Points    []components.Point
	Splatters []components.Point
}

// Renderer holds what stays fixed across the renders of one piece.
type Renderer struct {
	DB     *color.DB
	Scheme *systems.ColorScheme
	Stack  systems.StackOffset
	// Zebra keeps each point's secondary color; otherwise dots are painted single-colored.
	Zebra bool

	Viewport       camera.FractionalViewport
	Chunks         camera.Grid
	Width          int
	MinCircleSteps float64
	// VerifySplatters compares the splatters spawned in every chunk, not only the rng.
	VerifySplatters bool
}

// Size returns the full output size in pixels.
func (rd *Renderer) Size() (w, h int) {
	return camera.CanvasDimensions(rd.Viewport, rd.Width)
}

type chunkOutput struct {
	index     int
	chunk     camera.Chunk
	canvas    *Canvas
	used      *color.Used
	splatters []components.Point
	rng       *rng.Rng
}

// Render paints a job and advances r exactly as a single-threaded render would. With more
// than one chunk every chunk replays the same draws on its own clone of r; all clones must
// finish in the same state. A chunk strokes only the circles that reach its region, in the
// same full-canvas pixel coordinates as an unchunked render, so its region comes out
// identical. The returned canvas is nil in skip
// mode. The returned splatters are non-nil only for SplatterDeferred.
func (rd *Renderer) Render(job Job, used *color.Used, r *rng.Rng) (*Canvas, []components.Point) {
	w, h := rd.Size()
	grid := camera.Grid{W: 1, H: 1}
	if job.Mode.respectChunks() {
		grid = rd.Chunks
	}
	chunks := grid.Chunks(w, h)

	var bg color.Rgb
	if job.Background == Opaque {
		bg = rd.DB.MustColor(rd.Scheme.Background).Base().ToRgb()
	}

	var splatters []components.Point
	collect := func(out chunkOutput) {
		if job.Sink == SplatterDeferred {
			splatters = append(splatters, out.splatters...)
		}
	}

	if len(chunks) == 1 {
		out := rd.renderChunk(job, chunks[0], w, h, bg, r)
		r.CopyFrom(out.rng)
		used.Extend(out.used)
		collect(out)
		return out.canvas, splatters
	}

	results := make(chan chunkOutput, len(chunks))
	for i, c := range chunks {
		go func(i int, c camera.Chunk, r *rng.Rng) {
			out := rd.renderChunk(job, c, w, h, bg, r)
			out.index = i
			results <- out
		}(i, c, r.Clone())
	}

	outputs := make([]chunkOutput, len(chunks))
	var first *chunkOutput
	for range chunks {
		out := <-results
		outputs[out.index] = out
		if first == nil {
			first = &outputs[out.index]
			r.CopyFrom(out.rng)
			collect(out)
			continue
		}
		if !out.rng.Equal(first.rng) {
			panic("renderer: rng state mismatch between chunks")
		}
		if rd.VerifySplatters && !slices.Equal(out.splatters, first.splatters) {
			panic("renderer: new splatter points mismatch between chunks")
		}
	}

	var full *Canvas
	if job.Mode.respectChunks() {
		full = job.Mode.newCanvas(w, h)
	}
	composited := 0
	for _, out := range outputs {
		if out.used == nil {
			continue
		}
		used.Extend(out.used)
		if full != nil && out.canvas != nil {
			full.CopyRect(out.canvas, out.chunk.Rect())
			out.canvas.Close()
		}
		composited++
	}
	if composited != len(chunks) {
		panic("renderer: missing some chunks")
	}
	return full, splatters
}

// renderChunk paints onto a full-size canvas; only c's region of it is meaningful.
func (rd *Renderer) renderChunk(job Job, c camera.Chunk, w, h int, bg color.Rgb, r *rng.Rng) chunkOutput {
	slog.Debug("painting chunk",
		"x", c.X, "y", c.Y,
		"width", c.Width, "height", c.Height,
		"left", c.Left, "top", c.Top,
		"mode", job.Mode.String(), "points", len(job.Points))
	canvas := job.Mode.newCanvas(w, h)
	if canvas != nil && job.Background == Opaque {
		canvas.Fill(bg)
	}
	p := newPainter(canvas, camera.NewProjection(rd.Viewport, rd.Width, c), rd.MinCircleSteps)
	used := color.NewUsed()

	spawned := rd.paintNormal(p, job.Points, r)
	if job.Sink == SplatterImmediate {
		rd.paintSplatter(p, spawned, used, r)
		spawned = nil
	}
	rd.paintSplatter(p, job.Splatters, used, r)
	if p.err != nil {
		panic(fmt.Sprintf("renderer: stroke failed in chunk %v,%v: %v", c.X, c.Y, p.err))
	}

	return chunkOutput{
		chunk:     c,
		canvas:    canvas,
		used:      used,
		splatters: spawned,
		rng:       r,
	}
}
