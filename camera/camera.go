// Package camera maps between the virtual layout canvas and raster pixels, including the
// crops used for viewports and render chunks.
package camera

import (
	"fmt"
	"image"
	"math"

	"github.com/pthm-cable/qql/components"
)

// FractionalViewport is a crop of the virtual canvas expressed as fractions of its size.
// The full canvas is {Width: 1, Height: 1, Left: 0, Top: 0}.
type FractionalViewport struct {
	Width  float64
	Height float64
	Left   float64
	Top    float64
}

// Full returns the viewport covering the whole canvas.
func Full() FractionalViewport {
	return FractionalViewport{Width: 1, Height: 1}
}

func (v FractionalViewport) Right() float64  { return v.Left + v.Width }
func (v FractionalViewport) Bottom() float64 { return v.Top + v.Height }

// Validate reports whether the viewport is non-empty and inside the unit square.
func (v FractionalViewport) Validate() error {
	if !(v.Width > 0 && v.Height > 0) {
		return fmt.Errorf("viewport %s has no area", v)
	}
	if v.Left < 0 || v.Top < 0 || v.Right() > 1 || v.Bottom() > 1 {
		return fmt.Errorf("viewport %s extends past the canvas", v)
	}
	return nil
}

// String formats the viewport as WxH+L+T.
func (v FractionalViewport) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", v.Width, v.Height, v.Left, v.Top)
}

// Virtual converts the viewport to virtual canvas units.
func (v FractionalViewport) Virtual() VirtualViewport {
	return VirtualViewport{
		Left:   v.Left * components.VirtualW,
		Right:  v.Right() * components.VirtualW,
		Top:    v.Top * components.VirtualH,
		Bottom: v.Bottom() * components.VirtualH,
	}
}

// VirtualViewport is a crop in virtual canvas units.
type VirtualViewport struct {
	Left, Right, Top, Bottom float64
}

// Pad grows the viewport by d on every side.
func (v VirtualViewport) Pad(d float64) VirtualViewport {
	return VirtualViewport{v.Left - d, v.Right + d, v.Top - d, v.Bottom + d}
}

// Disjoint reports whether the box centered at (x, y) with the given half extents lies
// entirely outside the viewport.
func (v VirtualViewport) Disjoint(x, y, halfW, halfH float64) bool {
	return x+halfW < v.Left || x-halfW > v.Right || y+halfH < v.Top || y-halfH > v.Bottom
}

// CanvasDimensions returns the pixel size of a viewport's output when the full canvas is
// fullWidth pixels wide. The full canvas keeps a 4:5 aspect ratio.
func CanvasDimensions(v FractionalViewport, fullWidth int) (w, h int) {
	fullHeight := fullWidth * 5 / 4
	w = int(math.Round(float64(fullWidth) * v.Width))
	h = int(math.Round(float64(fullHeight) * v.Height))
	return w, h
}

// ScaleRatio is the number of pixels per virtual unit at the given full canvas width.
func ScaleRatio(fullWidth int) float64 {
	return float64(fullWidth) / components.VirtualW
}

// Grid is a chunk layout of W columns and H rows.
type Grid struct {
	W, H int
}

// Count returns the number of chunks.
func (g Grid) Count() int {
	return g.W * g.H
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.W, g.H)
}

// Chunk is one cell of a Grid in output pixel space.
type Chunk struct {
	X, Y          int // grid cell
	Left, Top     int
	Width, Height int
}

// Rect returns the chunk in output pixels.
func (c Chunk) Rect() image.Rectangle {
	return image.Rect(c.Left, c.Top, c.Left+c.Width, c.Top+c.Height)
}

// ChunkOrigin returns the rounded pixel origin of grid cell (cx, cy) on a w×h canvas.
func ChunkOrigin(w, h int, g Grid, cx, cy int) (x, y int) {
	fx := float64(w) * (float64(cx) / float64(g.W))
	fy := float64(h) * (float64(cy) / float64(g.H))
	return int(math.Round(fx)), int(math.Round(fy))
}

// Chunks partitions a w×h canvas. Adjacent chunks share edges exactly, so the chunks tile
// the canvas with no gaps or overlaps. Cells are listed column by column.
func (g Grid) Chunks(w, h int) []Chunk {
	chunks := make([]Chunk, 0, g.Count())
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			left, top := ChunkOrigin(w, h, g, x, y)
			right, bottom := ChunkOrigin(w, h, g, x+1, y+1)
			chunks = append(chunks, Chunk{
				X: x, Y: y,
				Left: left, Top: top,
				Width: right - left, Height: bottom - top,
			})
		}
	}
	return chunks
}

// Projection maps virtual coordinates onto the pixels of the full output canvas. Every
// chunk shares the same mapping; only Visible differs, so a chunk produces the same path
// coordinates as an unchunked render.
type Projection struct {
	// Canvas is the viewport of the full output canvas.
	Canvas VirtualViewport
	// Visible is the part of the virtual canvas covered by the chunk.
	Visible VirtualViewport
	Ratio   float64
	// Bounds is the chunk in output pixels.
	Bounds image.Rectangle
}

// NewProjection builds the projection for a chunk of the output described by v at fullWidth.
// Pass a chunk covering the whole output for unchunked rendering.
func NewProjection(v FractionalViewport, fullWidth int, c Chunk) Projection {
	canvas := v.Virtual()
	ratio := ScaleRatio(fullWidth)
	visible := VirtualViewport{
		Left:   canvas.Left + float64(c.Left)/ratio,
		Right:  canvas.Left + float64(c.Left+c.Width)/ratio,
		Top:    canvas.Top + float64(c.Top)/ratio,
		Bottom: canvas.Top + float64(c.Top+c.Height)/ratio,
	}
	return Projection{
		Canvas:  canvas,
		Visible: visible,
		Ratio:   ratio,
		Bounds:  c.Rect(),
	}
}

// ToRaster converts a virtual point to output pixels. The result does not depend on the
// chunk.
func (p Projection) ToRaster(x, y float64) (float64, float64) {
	return (x - p.Canvas.Left) * p.Ratio, (y - p.Canvas.Top) * p.Ratio
}

// Length converts a virtual distance to pixels.
func (p Projection) Length(d float64) float64 {
	return d * p.Ratio
}
