// Package renderer paints laid-out points onto raster canvases, optionally split into
// chunks that render concurrently and composite into one image.
package renderer

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/pthm-cable/qql/color"
)

// Canvas is a premultiplied RGBA raster with a gg drawing context bound to it.
type Canvas struct {
	pm  *gg.Pixmap
	ctx *gg.Context
	img *image.RGBA // shares pm's pixels
}

// NewCanvas allocates a transparent canvas.
func NewCanvas(w, h int) *Canvas {
	pm := gg.NewPixmap(w, h)
	return &Canvas{
		pm:  pm,
		ctx: gg.NewContext(w, h, gg.WithPixmap(pm)),
		img: &image.RGBA{Pix: pm.Data(), Stride: w * 4, Rect: image.Rect(0, 0, w, h)},
	}
}

func (c *Canvas) Width() int  { return c.pm.Width() }
func (c *Canvas) Height() int { return c.pm.Height() }

// Image exposes the pixels without copying. Later drawing shows through.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Fill paints every pixel opaque rgb.
func (c *Canvas) Fill(rgb color.Rgb) {
	c.ctx.ClearWithColor(toRGBA(rgb))
}

// toRGBA quantizes to bytes first. The half step keeps gg's truncating conversion back to
// bytes from landing one below.
func toRGBA(rgb color.Rgb) gg.RGBA {
	r, g, b := rgb.Bytes()
	return gg.RGBA{
		R: (float64(r) + 0.5) / 255,
		G: (float64(g) + 0.5) / 255,
		B: (float64(b) + 0.5) / 255,
		A: 1,
	}
}

// StrokeClosed strokes the closed polyline through xy (x0, y0, x1, y1, ...) in pixel space.
func (c *Canvas) StrokeClosed(xy []float64, width float64, rgb color.Rgb) error {
	if len(xy) < 4 {
		return nil
	}
	col := toRGBA(rgb)
	c.ctx.SetRGBA(col.R, col.G, col.B, col.A)
	c.ctx.SetLineWidth(width)
	c.ctx.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		c.ctx.LineTo(xy[i], xy[i+1])
	}
	c.ctx.ClosePath()
	if err := c.ctx.Stroke(); err != nil {
		return fmt.Errorf("stroking circle: %w", err)
	}
	return nil
}

// Superimpose composites src over c with its top-left corner at (x, y).
func (c *Canvas) Superimpose(src *Canvas, x, y int) {
	r := src.img.Bounds().Add(image.Pt(x, y))
	draw.Draw(c.img, r, src.img, image.Point{}, draw.Over)
}

// CopyRect overwrites the pixels of c inside r with the same pixels of src, which must be
// the same size.
func (c *Canvas) CopyRect(src *Canvas, r image.Rectangle) {
	if src.Width() != c.Width() || src.Height() != c.Height() {
		panic(fmt.Sprintf("renderer: copy from %dx%d onto %dx%d", src.Width(), src.Height(), c.Width(), c.Height()))
	}
	draw.Draw(c.img, r, src.img, r.Min, draw.Src)
}

// CopyFrom overwrites c with the pixels of src, which must be the same size.
func (c *Canvas) CopyFrom(src *Canvas) {
	if src.Width() != c.Width() || src.Height() != c.Height() {
		panic(fmt.Sprintf("renderer: copy from %dx%d onto %dx%d", src.Width(), src.Height(), c.Width(), c.Height()))
	}
	copy(c.img.Pix, src.img.Pix)
}

// EncodePNG writes the canvas as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.ctx.EncodePNG(w)
}

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.ctx.Close()
}
