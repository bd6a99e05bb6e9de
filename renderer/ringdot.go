package renderer

import (
	"math"

	"github.com/pthm-cable/qql/camera"
	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
)

var w = components.W

// painter carries the per-chunk drawing state. canvas is nil in skip mode.
type painter struct {
	canvas   *Canvas
	proj     camera.Projection
	cull     camera.VirtualViewport
	minSteps float64
	path     []float64
	err      error
}

func newPainter(canvas *Canvas, proj camera.Projection, minSteps float64) *painter {
	return &painter{
		canvas: canvas,
		proj:   proj,
		// Two extra pixels keep anti-aliased edges of circles that only graze the chunk.
		cull:     proj.Visible.Pad(2 / proj.Ratio),
		minSteps: minSteps,
	}
}

// drawRingDot paints a point as concentric bands, alternating primary and secondary colors
// from the outside in.
func (p *painter) drawRingDot(pt components.Point, r *rng.Rng) {
	numRings := pt.DrawnRings()
	bandStep := pt.Scale / float64(numRings)
	density := pt.Bullseye.Density

	// Lower density makes thicker bands.
	bandThickness := max(w(0.0004), bandStep*(1-density))

	// More rings leave less room to shift them around.
	varianceAdjust := fastmath.Rescale(density, 0.1, 1, 0.5, 1.2)
	var positionVariance float64
	if numRings >= 7 {
		positionVariance = varianceAdjust * fastmath.Rescale(float64(numRings), 7, 9, 0.008, 0.005)
	} else {
		positionVariance = varianceAdjust * fastmath.Rescale(float64(numRings), 1, 7, 0.022, 0.008)
	}

	band := 0
	for radius := pt.Scale; radius > w(0.0004); radius -= bandStep {
		c := pt.Primary
		if band%2 == 1 {
			c = pt.Secondary
		}
		band++

		cx := r.Gauss(pt.Position.X, min(w(0.0005), radius*positionVariance))
		cy := r.Gauss(pt.Position.Y, min(w(0.0005), radius*positionVariance))

		thicknessVariance := fastmath.Rescale(density, 0.1, 1, 0.01, 0.13)
		thickness := r.Gauss(bandThickness, bandThickness*thicknessVariance)
		if radius < w(0.002) && numRings == 1 {
			thickness = fastmath.Rescale(density, 0, 1, radius, radius*0.25)
		}

		// Cap the width of large single-band donuts.
		if numRings == 1 && pt.Scale > w(0.02) {
			thickness = fastmath.Rescale(thickness, w(0.003), w(0.08), w(0.003), w(0.05))
			thickness = min(thickness, fastmath.Rescale(pt.Scale, 0, w(0.1), w(0.003), w(0.04)), w(0.04))
		}

		p.drawMessyCircle(cx, cy, radius, thickness, varianceAdjust, c, r)
	}
}

// drawMessyCircle builds a thick band from many thin jittered circles.
func (p *painter) drawMessyCircle(x, y, radius, thickness, varianceAdjust float64, c color.Hsb, r *rng.Rng) {
	rgb := c.ToRgb()

	var divisor float64
	switch {
	case thickness > w(0.02):
		divisor = fastmath.Rescale(thickness, w(0.02), w(0.04), w(0.00021), w(0.00022))
	case thickness > w(0.006):
		divisor = fastmath.Rescale(thickness, w(0.006), w(0.02), w(0.00015), w(0.00021))
	case thickness > w(0.003):
		divisor = fastmath.Rescale(thickness, w(0.003), w(0.006), w(0.00012), w(0.00015))
	default:
		divisor = fastmath.Rescale(thickness, 0, w(0.006), w(0.00016), w(0.00012))
	}
	rounds := int(math.Ceil(max(thickness/divisor, 1)))

	varianceRatio := varianceAdjust * fastmath.Rescale(thickness, w(0.001), w(0.04), 0.08, 0.03)
	var meanThickness float64
	switch {
	case thickness > w(0.02):
		meanThickness = fastmath.Rescale(thickness, w(0.02), w(0.04), w(0.0007), w(0.00073))
	case thickness > w(0.006):
		meanThickness = fastmath.Rescale(thickness, w(0.006), w(0.02), w(0.0005), w(0.0007))
	default:
		meanThickness = fastmath.Rescale(thickness, w(0.001), w(0.006), w(0.0001), w(0.0005))
	}

	for i := range rounds {
		ri := fastmath.Rescale(float64(i), 0, float64(rounds), radius, radius-thickness)
		posVariance := varianceAdjust * min(w(0.0015), thickness*varianceRatio)
		thicknessMult := 1.0
		// The first few circles wander more.
		if i < 5 {
			posVariance *= 1.5
			thicknessMult = 2
		}
		xi := r.Gauss(x, posVariance)
		yi := r.Gauss(y, posVariance)

		lineVariance := meanThickness * thicknessMult * fastmath.Rescale(thickness, w(0.001), w(0.04), 0.25, 1.1)
		if ri < w(0.002) {
			lineVariance = meanThickness * 0.1
		}
		line := max(r.Gauss(meanThickness, lineVariance), w(0.0002))
		p.drawCleanCircle(xi, yi, ri, line, 0.007, rgb, r)
	}
}

// drawCleanCircle strokes one slightly elliptical circle. All rng draws happen before the
// visibility check.
func (p *painter) drawCleanCircle(x, y, radius, thickness, eccentricity float64, rgb color.Rgb, r *rng.Rng) {
	radius = max(radius-thickness*0.5, w(0.0002))
	strokeWeight := thickness * 0.95

	variance := min(w(0.0015), radius*eccentricity)
	rx := r.Gauss(radius, variance)
	ry := r.Gauss(radius, variance)

	// Starting angle, unused but part of the draw sequence.
	r.Rnd()

	if p.canvas == nil || p.err != nil {
		return
	}
	// A whole stroke width of margin covers the miter joins.
	if p.cull.Disjoint(x, y, rx+strokeWeight, ry+strokeWeight) {
		return
	}

	steps := max(radius*fastmath.TwoPi/w(0.0005), p.minSteps)
	step := fastmath.TwoPi / steps

	p.path = p.path[:0]
	for theta := 0.0; theta < fastmath.TwoPi; theta += step {
		px, py := p.proj.ToRaster(x+rx*math.Cos(theta), y+ry*math.Sin(theta))
		p.path = append(p.path, px, py)
	}
	p.err = p.canvas.StrokeClosed(p.path, p.proj.Length(strokeWeight), rgb)
}
