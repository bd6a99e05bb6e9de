package camera

import (
	"math"
	"testing"
)

func TestCanvasDimensions(t *testing.T) {
	tests := []struct {
		name      string
		vp        FractionalViewport
		fullWidth int
		wantW     int
		wantH     int
	}{
		{"full", Full(), 2400, 2400, 3000},
		{"odd width", Full(), 801, 801, 1001},
		{"quarter", FractionalViewport{0.25, 0.5, 0.1, 0.2}, 1000, 250, 625},
		{"rounds", FractionalViewport{1.0 / 3, 1, 0, 0}, 1000, 333, 1250},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := CanvasDimensions(tc.vp, tc.fullWidth)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("CanvasDimensions = %dx%d, want %dx%d", w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestChunksTileCanvas(t *testing.T) {
	grids := []Grid{{1, 1}, {2, 2}, {3, 1}, {4, 3}, {7, 5}}
	for _, g := range grids {
		t.Run(g.String(), func(t *testing.T) {
			const w, h = 803, 1003
			covered := make([]int, w*h)
			chunks := g.Chunks(w, h)
			if len(chunks) != g.Count() {
				t.Fatalf("got %d chunks, want %d", len(chunks), g.Count())
			}
			for _, c := range chunks {
				for y := c.Top; y < c.Top+c.Height; y++ {
					for x := c.Left; x < c.Left+c.Width; x++ {
						covered[y*w+x]++
					}
				}
			}
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("pixel (%d, %d) covered %d times", i%w, i/w, n)
				}
			}
		})
	}
}

func TestProjectionSharedAcrossChunks(t *testing.T) {
	vp := Full()
	const fullWidth = 800
	w, h := CanvasDimensions(vp, fullWidth)
	whole := NewProjection(vp, fullWidth, Chunk{Width: w, Height: h})

	for _, c := range (Grid{3, 2}).Chunks(w, h) {
		p := NewProjection(vp, fullWidth, c)
		if p.Bounds != c.Rect() {
			t.Errorf("chunk %d,%d: Bounds = %v, want %v", c.X, c.Y, p.Bounds, c.Rect())
		}
		for _, pt := range [][2]float64{{0, 0}, {1234.5, 987.25}, {-17, 2600}, {1999.999, 0.1}} {
			fx, fy := whole.ToRaster(pt[0], pt[1])
			cx, cy := p.ToRaster(pt[0], pt[1])
			if cx != fx || cy != fy {
				t.Errorf("chunk %d,%d: (%v,%v) != (%v,%v)", c.X, c.Y, cx, cy, fx, fy)
			}
		}
	}
}

func TestProjectionVisible(t *testing.T) {
	vp := FractionalViewport{0.5, 0.5, 0.25, 0.25}
	w, h := CanvasDimensions(vp, 1000)
	p := NewProjection(vp, 1000, Chunk{Width: w, Height: h})

	want := VirtualViewport{500, 1500, 625, 1875}
	got := p.Visible
	if math.Abs(got.Left-want.Left) > 1e-9 || math.Abs(got.Right-want.Right) > 1e-9 ||
		math.Abs(got.Top-want.Top) > 1e-9 || math.Abs(got.Bottom-want.Bottom) > 1e-9 {
		t.Errorf("Visible = %+v, want %+v", got, want)
	}
	if x, y := p.ToRaster(500, 625); x != 0 || y != 0 {
		t.Errorf("viewport corner maps to (%v, %v)", x, y)
	}
	if !p.Visible.Disjoint(400, 1000, 50, 50) {
		t.Error("circle left of viewport should be disjoint")
	}
	if p.Visible.Disjoint(460, 1000, 50, 50) {
		t.Error("circle overlapping left edge should not be disjoint")
	}
}

func TestViewportValidate(t *testing.T) {
	tests := []struct {
		vp      FractionalViewport
		wantErr bool
	}{
		{Full(), false},
		{FractionalViewport{0.5, 0.5, 0.5, 0.5}, false},
		{FractionalViewport{0, 1, 0, 0}, true},
		{FractionalViewport{0.6, 1, 0.5, 0}, true},
		{FractionalViewport{0.5, 0.5, -0.1, 0}, true},
	}
	for _, tc := range tests {
		if err := tc.vp.Validate(); (err != nil) != tc.wantErr {
			t.Errorf("Validate(%s) = %v, wantErr %v", tc.vp, err, tc.wantErr)
		}
	}
}
