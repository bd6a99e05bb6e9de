package components

import "testing"

func TestDrawnRings(t *testing.T) {
	tests := []struct {
		scale   float64
		rings   RingCount
		density float64
		want    RingCount
	}{
		{5, 7, 0.15, 1},
		{10, 7, 0.15, 2},
		{15, 7, 0.15, 3},
		{21, 7, 0.15, 4},
		{25, 7, 0.15, 5},
		{30, 7, 0.15, 6},
		{35, 7, 0.15, 7},
		{45, 7, 0.15, 7},
		{50, 7, 0.15, 7},
		{30, 3, 0.15, 3},
		{50, 1, 0.5, 1},
		{3, 7, 1, 2},
		{1.5, 7, 1, 1},
		{-1, 3, 0.5, 1},
	}
	for _, tt := range tests {
		p := Point{Scale: tt.scale, Bullseye: Bullseye{Rings: tt.rings, Density: tt.density}}
		if got := p.DrawnRings(); got != tt.want {
			t.Errorf("DrawnRings(scale %v, rings %d, density %v) = %d, want %d",
				tt.scale, tt.rings, tt.density, got, tt.want)
		}
	}
}

func TestFieldGrid(t *testing.T) {
	if got := (FieldRight - FieldLeft) / FieldSpacing; got != FieldCols {
		t.Errorf("columns = %v, want %d", got, FieldCols)
	}
	if got := (FieldBottom - FieldTop) / FieldSpacing; got != FieldRows {
		t.Errorf("rows = %v, want %d", got, FieldRows)
	}
	if W(0.5) != 1000 || H(0.5) != 1250 {
		t.Errorf("W(0.5), H(0.5) = %v, %v", W(0.5), H(0.5))
	}
}
