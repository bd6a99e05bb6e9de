package renderer

import (
	"math"

	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
	"github.com/pthm-cable/qql/systems"
)

// paintNormal paints points in order and returns the splatters they spawn. Splatter odds
// fall off with distance from the scheme's splatter center.
func (rd *Renderer) paintNormal(p *painter, points []components.Point, r *rng.Rng) []components.Point {
	var splatters []components.Point
	center := rd.Scheme.SplatterCenter
	zebra := rd.Zebra
	for _, pt := range points {
		d := fastmath.Dist(pt.Position.X, pt.Position.Y, center.X, center.Y)
		falloff := math.Pow(fastmath.Rescale(d, 0, w(1.4), 1, 0), 2.5)
		if r.Odds(rd.Scheme.SplatterOdds * falloff) {
			splatters = append(splatters, pt)
		}

		if rd.Stack.Active {
			shadow := pt
			shadow.Position.X += rd.Stack.DX
			shadow.Position.Y += rd.Stack.DY
			shadow.Primary = pt.Secondary
			shadow.Bullseye.Density = pt.Bullseye.Density * r.Gauss(0.99, 0.03)
			p.drawRingDot(shadow, r)
		}

		if !zebra {
			pt.Secondary = pt.Primary
		}
		p.drawRingDot(pt, r)
	}
	return splatters
}

// paintSplatter repaints points in a splatter color at reduced density.
func (rd *Renderer) paintSplatter(p *painter, points []components.Point, used *color.Used, r *rng.Rng) {
	for _, pt := range points {
		key := rng.Choice(r, rd.Scheme.SplatterChoices)
		c := systems.SpecToColor(key, rd.DB.MustColor(key), used, r)
		pt.Primary = c
		pt.Secondary = c
		pt.Bullseye.Density = max(0.17, pt.Bullseye.Density*0.7)
		p.drawRingDot(pt, r)
	}
}
