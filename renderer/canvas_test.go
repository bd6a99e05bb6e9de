package renderer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/pthm-cable/qql/color"
)

func TestFillExact(t *testing.T) {
	c := NewCanvas(4, 3)
	defer c.Close()
	// Fractional channels truncate.
	c.Fill(color.Rgb{R: 12.9, G: 200, B: 254.99})
	img := c.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		got := [4]uint8(img.Pix[i : i+4])
		if want := [4]uint8{12, 200, 254, 255}; got != want {
			t.Fatalf("pixel %d = %v, want %v", i/4, got, want)
		}
	}
}

func TestSuperimpose(t *testing.T) {
	dst := NewCanvas(4, 4)
	defer dst.Close()
	dst.Fill(color.Rgb{R: 255})

	src := NewCanvas(2, 2)
	defer src.Close()
	src.Fill(color.Rgb{B: 255})

	// Transparent sources leave the destination alone.
	empty := NewCanvas(4, 4)
	defer empty.Close()
	dst.Superimpose(empty, 0, 0)
	dst.Superimpose(src, 2, 1)

	img := dst.Image()
	tests := []struct {
		x, y int
		want [4]uint8
	}{
		{0, 0, [4]uint8{255, 0, 0, 255}},
		{2, 1, [4]uint8{0, 0, 255, 255}},
		{3, 2, [4]uint8{0, 0, 255, 255}},
		{3, 3, [4]uint8{255, 0, 0, 255}},
		{1, 1, [4]uint8{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		i := img.PixOffset(tt.x, tt.y)
		if got := [4]uint8(img.Pix[i : i+4]); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCopyFromSizeMismatch(t *testing.T) {
	a, b := NewCanvas(2, 2), NewCanvas(3, 2)
	defer a.Close()
	defer b.Close()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on size mismatch")
		}
	}()
	a.CopyFrom(b)
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(5, 7)
	defer c.Close()
	c.Fill(color.Rgb{R: 10, G: 20, B: 30})
	if err := c.StrokeClosed([]float64{1, 1, 4, 1, 4, 6}, 1, color.Rgb{R: 255, G: 255, B: 255}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("decoded size %v, want 5x7", b)
	}
	r, g, b, a := img.At(0, 6).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("corner = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}
