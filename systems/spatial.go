// Package systems builds the layout of a render: flow field, start points, flow lines, and
// the collision-checked point list, plus the per-run parameter generators they draw from.
package systems

import (
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
)

// NumSectors is the number of buckets along each axis of the collision grid.
const NumSectors = 50

// CheckMargin pads the collision region beyond the canvas on every side, as a fraction of
// the canvas size.
const CheckMargin = 0.05

// indexer maps a coordinate to a bucket along one axis.
type indexer struct {
	start  float64
	length float64
}

func newIndexer(start, stop float64) indexer {
	return indexer{start: start, length: (stop - start) / NumSectors}
}

// index floors to a bucket and clamps to the grid. NaN maps to bucket 0.
func (ix indexer) index(v float64) int {
	return min(fastmath.FloorIndex((v-ix.start)/ix.length), NumSectors-1)
}

// Sectors is a fixed grid of collider buckets used to reject overlapping points. A collider
// is stored in every bucket its bounding square touches, so a query only has to scan the
// buckets the candidate itself touches.
type Sectors struct {
	ix, iy  indexer
	buckets [][]components.Collider // flat NumSectors*NumSectors grid, column-major
	fast    bool
	count   int
}

// NewSectors creates a grid over the given region. With fast set, overlap tests compare
// squared distances instead of going through the bounded sqrt path.
func NewSectors(left, right, top, bottom float64, fast bool) *Sectors {
	return &Sectors{
		ix:      newIndexer(min(left, right), max(left, right)),
		iy:      newIndexer(min(top, bottom), max(top, bottom)),
		buckets: make([][]components.Collider, NumSectors*NumSectors),
		fast:    fast,
	}
}

// NewCanvasSectors creates the grid used for layout: the virtual canvas padded by
// CheckMargin on each side.
func NewCanvasSectors(fast bool) *Sectors {
	const (
		left   = -components.VirtualW * CheckMargin
		right  = components.VirtualW + components.VirtualW*CheckMargin
		top    = -components.VirtualH * CheckMargin
		bottom = components.VirtualH + components.VirtualH*CheckMargin
	)
	return NewSectors(left, right, top, bottom, fast)
}

// Len returns the number of accepted colliders.
func (s *Sectors) Len() int {
	return s.count
}

// bucketRange returns the inclusive bucket bounds touched by a square of half-size margin
// around (x, y). The range is empty when min > max on either axis.
func (s *Sectors) bucketRange(x, y, margin float64) (xMin, xMax, yMin, yMax int) {
	return s.ix.index(x - margin), s.ix.index(x + margin), s.iy.index(y - margin), s.iy.index(y + margin)
}

// TestAndAdd inserts c unless it overlaps a previously accepted collider, and reports
// whether it was inserted. A collider whose bucket range is empty is accepted without
// being checked or stored.
func (s *Sectors) TestAndAdd(c components.Collider) bool {
	x, y := c.Position.X, c.Position.Y
	xMin, xMax, yMin, yMax := s.bucketRange(x, y, c.Radius)

	for i := xMin; i <= xMax; i++ {
		for j := yMin; j <= yMax; j++ {
			for _, other := range s.buckets[i*NumSectors+j] {
				if s.collides(c, other) {
					return false
				}
			}
		}
	}

	for i := xMin; i <= xMax; i++ {
		for j := yMin; j <= yMax; j++ {
			idx := i*NumSectors + j
			s.buckets[idx] = append(s.buckets[idx], c)
		}
	}
	s.count++
	return true
}

func (s *Sectors) collides(a, b components.Collider) bool {
	ax, ay := a.Position.X, a.Position.Y
	bx, by := b.Position.X, b.Position.Y
	sum := a.Radius + b.Radius

	if s.fast {
		dx := ax - bx
		dy := ay - by
		return dx*dx+dy*dy < sum*sum
	}

	if fastmath.DistLowerBound(ax, ay, bx, by) > sum {
		return false
	}
	if fastmath.DistUpperBound(ax, ay, bx, by) < sum {
		return true
	}
	return fastmath.Dist(ax, ay, bx, by) < sum
}
