// Package color holds the palette database and the HSB color model used for painting.
package color

import (
	"math"
)

// Key indexes a color in a DB.
type Key = uint32

// Hsb is a color with hue in degrees and saturation and brightness in percent.
type Hsb struct {
	H, S, B float64
}

// Rgb holds channels on a 0..255 scale, unrounded.
type Rgb struct {
	R, G, B float64
}

// ToRgb converts by sextant.
func (c Hsb) ToRgb() Rgb {
	s := c.S / 100
	v := c.B / 100
	chroma := s * v * 255
	h := c.H / 60
	secondary := chroma * (1 - math.Abs(math.Mod(h, 2)-1))

	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = chroma, secondary, 0
	case h < 2:
		r, g, b = secondary, chroma, 0
	case h < 3:
		r, g, b = 0, chroma, secondary
	case h < 4:
		r, g, b = 0, secondary, chroma
	case h < 5:
		r, g, b = secondary, 0, chroma
	default:
		r, g, b = chroma, 0, secondary
	}
	m := v*255 - chroma
	return Rgb{r + m, g + m, b + m}
}

// Bytes truncates each channel to a byte, saturating at 0 and 255. NaN becomes 0.
func (c Rgb) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Spec describes a named color and the bounds of its random perturbation.
type Spec struct {
	Name           string  `yaml:"name"`
	Hue            float64 `yaml:"hue"`
	HueMin         float64 `yaml:"hueMin"`
	HueMax         float64 `yaml:"hueMax"`
	HueVariance    float64 `yaml:"hueVariance"`
	Sat            float64 `yaml:"sat"`
	SatMin         float64 `yaml:"satMin"`
	SatMax         float64 `yaml:"satMax"`
	SatVariance    float64 `yaml:"satVariance"`
	Bright         float64 `yaml:"bright"`
	BrightMin      float64 `yaml:"brightMin"`
	BrightMax      float64 `yaml:"brightMax"`
	BrightVariance float64 `yaml:"brightVariance"`
}

// Base is the unperturbed color.
func (s *Spec) Base() Hsb {
	return Hsb{s.Hue, s.Sat, s.Bright}
}

// Used records which colors a render touched, in first-use order.
type Used struct {
	order []Key
	seen  map[Key]struct{}
}

// NewUsed returns an empty set.
func NewUsed() *Used {
	return &Used{seen: make(map[Key]struct{})}
}

// Insert adds key if it is not already present.
func (u *Used) Insert(key Key) {
	if _, ok := u.seen[key]; ok {
		return
	}
	u.seen[key] = struct{}{}
	u.order = append(u.order, key)
}

// Extend inserts every key of other in its order.
func (u *Used) Extend(other *Used) {
	if other == nil {
		return
	}
	for _, k := range other.order {
		u.Insert(k)
	}
}

// Contains reports whether key has been inserted.
func (u *Used) Contains(key Key) bool {
	_, ok := u.seen[key]
	return ok
}

// Len returns the number of distinct keys.
func (u *Used) Len() int {
	return len(u.order)
}

// Slice returns the keys in insertion order. The caller must not modify it.
func (u *Used) Slice() []Key {
	return u.order
}

// Clone returns an independent copy.
func (u *Used) Clone() *Used {
	c := NewUsed()
	c.Extend(u)
	return c
}
