// Package components defines the plain data types passed between layout and paint stages.
package components

import (
	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/fastmath"
)

// Position is a location in virtual canvas units.
type Position struct {
	X, Y float64
}

// RingCount is the number of concentric bands in a bullseye (1, 2, 3 or 7 before capping).
type RingCount = uint32

// Bullseye describes how a point is banded.
type Bullseye struct {
	Rings   RingCount
	Density float64 // fill density in [0.17, 0.93]
}

// Point is a single placed ring dot. Points are immutable once laid out; paint stages work on
// copies.
type Point struct {
	Position  Position
	Scale     float64
	Primary   color.Hsb
	Secondary color.Hsb
	Bullseye  Bullseye
}

// DrawnRings caps the configured ring count by the point's scale: small dots cannot carry
// many bands.
func (p Point) DrawnRings() RingCount {
	n := p.Bullseye.Rings
	d := p.Bullseye.Density
	switch {
	case p.Scale < fastmath.Rescale(d, 0.15, 1, W(0.0039), W(0.001)):
		return min(n, 1)
	case p.Scale < fastmath.Rescale(d, 0.15, 1, W(0.0072), W(0.0029)):
		return min(n, 2)
	case p.Scale < W(0.01):
		return min(n, 3)
	case p.Scale < W(0.012):
		return min(n, 4)
	case p.Scale < W(0.014):
		return min(n, 5)
	case p.Scale < W(0.017):
		return min(n, 6)
	case p.Scale < W(0.02):
		return min(n, 7)
	case p.Scale < W(0.023):
		return min(n, 8)
	default:
		return n
	}
}
