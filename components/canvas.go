package components

// All layout happens on a fixed virtual canvas so that the output is independent of the
// raster size; the renderer scales virtual units to pixels at paint time.
const (
	VirtualW = 2000.0
	VirtualH = 2500.0
)

// Flow field extents: the virtual canvas extended by 20% on each side.
const (
	FieldLeft   = VirtualW * -0.2
	FieldRight  = VirtualW * 1.2
	FieldTop    = VirtualH * -0.2
	FieldBottom = VirtualH * 1.2

	// FieldSpacing is the distance between flow field samples on each axis.
	FieldSpacing = 5.0
	FieldCols    = 560
	FieldRows    = 700
)

// W converts a fraction of the virtual canvas width to virtual units.
func W(v float64) float64 {
	return VirtualW * v
}

// H converts a fraction of the virtual canvas height to virtual units.
func H(v float64) float64 {
	return VirtualH * v
}
