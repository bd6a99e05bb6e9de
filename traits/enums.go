package traits

// Option pairs a trait value with its rarity weight as published for the collection.
type Option[T any] struct {
	Value  T
	Weight int
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// Version distinguishes seeds minted before and after algorithm revisions.
type Version uint8

const (
	Unversioned Version = iota
	V0
	V1
)

func (v Version) String() string {
	return enumName([]string{"unversioned", "v0", "v1"}, int(v))
}

// FlowField selects the base flow field family.
type FlowField uint8

const (
	Horizontal FlowField = iota
	Diagonal
	Vertical
	RandomLinear
	Explosive
	Spiral
	Circular
	RandomRadial
)

var flowFieldOptions = []Option[FlowField]{
	{Horizontal, 3}, {Diagonal, 1}, {Vertical, 3}, {RandomLinear, 1},
	{Explosive, 1}, {Spiral, 4}, {Circular, 2}, {RandomRadial, 1},
}

// FlowFieldOptions lists every flow field value with its weight.
func FlowFieldOptions() []Option[FlowField] { return flowFieldOptions }

func (f FlowField) String() string {
	return enumName([]string{"horizontal", "diagonal", "vertical", "random_linear",
		"explosive", "spiral", "circular", "random_radial"}, int(f))
}

// Turbulence controls how many disturbances perturb the flow field.
type Turbulence uint8

const (
	TurbulenceNone Turbulence = iota
	TurbulenceLow
	TurbulenceHigh
)

var turbulenceOptions = []Option[Turbulence]{{TurbulenceNone, 0}, {TurbulenceLow, 3}, {TurbulenceHigh, 1}}

func TurbulenceOptions() []Option[Turbulence] { return turbulenceOptions }

func (t Turbulence) String() string {
	return enumName([]string{"none", "low", "high"}, int(t))
}

// Margin controls the empty border around the composition.
type Margin uint8

const (
	MarginNone Margin = iota
	MarginCrisp
	MarginWide
)

var marginOptions = []Option[Margin]{{MarginNone, 1}, {MarginCrisp, 1}, {MarginWide, 2}}

func MarginOptions() []Option[Margin] { return marginOptions }

func (m Margin) String() string {
	return enumName([]string{"none", "crisp", "wide"}, int(m))
}

type ColorVariety uint8

const (
	VarietyLow ColorVariety = iota
	VarietyMedium
	VarietyHigh
)

var colorVarietyOptions = []Option[ColorVariety]{{VarietyLow, 2}, {VarietyMedium, 4}, {VarietyHigh, 3}}

func ColorVarietyOptions() []Option[ColorVariety] { return colorVarietyOptions }

func (c ColorVariety) String() string {
	return enumName([]string{"low", "medium", "high"}, int(c))
}

type ColorMode uint8

const (
	ModeSimple ColorMode = iota
	ModeStacked
	ModeZebra
)

var colorModeOptions = []Option[ColorMode]{{ModeSimple, 2}, {ModeStacked, 3}, {ModeZebra, 1}}

func ColorModeOptions() []Option[ColorMode] { return colorModeOptions }

func (c ColorMode) String() string {
	return enumName([]string{"simple", "stacked", "zebra"}, int(c))
}

// Structure selects the start point layout family.
type Structure uint8

const (
	Orbital Structure = iota
	Formation
	Shadows
)

var structureOptions = []Option[Structure]{{Orbital, 1}, {Formation, 1}, {Shadows, 1}}

func StructureOptions() []Option[Structure] { return structureOptions }

func (s Structure) String() string {
	return enumName([]string{"orbital", "formation", "shadows"}, int(s))
}

type RingThickness uint8

const (
	Thin RingThickness = iota
	Thick
	MixedThickness
)

var ringThicknessOptions = []Option[RingThickness]{{Thin, 1}, {Thick, 2}, {MixedThickness, 2}}

func RingThicknessOptions() []Option[RingThickness] { return ringThicknessOptions }

func (r RingThickness) String() string {
	return enumName([]string{"thin", "thick", "mixed"}, int(r))
}

type SizeVariety uint8

const (
	Constant SizeVariety = iota
	Variable
	Wild
)

var sizeVarietyOptions = []Option[SizeVariety]{{Constant, 1}, {Variable, 3}, {Wild, 1}}

func SizeVarietyOptions() []Option[SizeVariety] { return sizeVarietyOptions }

func (s SizeVariety) String() string {
	return enumName([]string{"constant", "variable", "wild"}, int(s))
}

type RingSize uint8

const (
	RingSmall RingSize = iota
	RingMedium
	RingLarge
)

var ringSizeOptions = []Option[RingSize]{{RingSmall, 4}, {RingMedium, 3}, {RingLarge, 1}}

func RingSizeOptions() []Option[RingSize] { return ringSizeOptions }

func (r RingSize) String() string {
	return enumName([]string{"small", "medium", "large"}, int(r))
}

// ColorPalette names the palette in the color database.
type ColorPalette uint8

const (
	Austin ColorPalette = iota
	Berlin
	Edinburgh
	Fidenza
	Miami
	Seattle
	Seoul
)

var colorPaletteOptions = []Option[ColorPalette]{
	{Austin, 1}, {Berlin, 1}, {Edinburgh, 2}, {Fidenza, 2}, {Miami, 1}, {Seattle, 1}, {Seoul, 2},
}

func ColorPaletteOptions() []Option[ColorPalette] { return colorPaletteOptions }

// String is also the palette's key in the color database.
func (c ColorPalette) String() string {
	return enumName([]string{"austin", "berlin", "edinburgh", "fidenza", "miami", "seattle", "seoul"}, int(c))
}

type Spacing uint8

const (
	SpacingDense Spacing = iota
	SpacingMedium
	SpacingSparse
)

var spacingOptions = []Option[Spacing]{{SpacingDense, 2}, {SpacingMedium, 1}, {SpacingSparse, 1}}

func SpacingOptions() []Option[Spacing] { return spacingOptions }

func (s Spacing) String() string {
	return enumName([]string{"dense", "medium", "sparse"}, int(s))
}
