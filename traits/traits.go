// Package traits decodes the categorical parameters that a seed fixes for a render.
package traits

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"strings"
)

// SeedLen is the length of a raw seed in bytes.
const SeedLen = 32

// ErrSeedLength is returned when a seed does not decode to exactly SeedLen bytes.
var ErrSeedLength = errors.New("seed must be 32 bytes")

// Seed is a raw 256-bit seed.
type Seed [SeedLen]byte

// ParseSeed accepts 64 hex digits with an optional 0x prefix.
func ParseSeed(s string) (Seed, error) {
	var seed Seed
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("parsing seed: %w", err)
	}
	if len(raw) != SeedLen {
		return seed, fmt.Errorf("parsing seed: got %d bytes: %w", len(raw), ErrSeedLength)
	}
	copy(seed[:], raw)
	return seed, nil
}

// String formats the seed as 0x-prefixed hex.
func (s Seed) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Traits is the full set of seed-derived parameters.
type Traits struct {
	FlowField     FlowField
	Turbulence    Turbulence
	Margin        Margin
	ColorVariety  ColorVariety
	ColorMode     ColorMode
	Structure     Structure
	BullseyeRings BullseyeRings
	RingThickness RingThickness
	RingSize      RingSize
	SizeVariety   SizeVariety
	ColorPalette  ColorPalette
	Spacing       Spacing
	Version       Version
}

// BullseyeRings records which ring counts a seed enables.
type BullseyeRings struct {
	One   bool
	Three bool
	Seven bool
}

// bitReader pulls fixed-width fields off the low end of a word.
type bitReader struct {
	remaining uint32
}

// pluck consumes enough bits to index n options and returns the selected index. Index
// values past n wrap around, so option weights play no part in decoding.
func (b *bitReader) pluck(n int) int {
	if n <= 0 {
		panic("traits: no options")
	}
	width := bits.Len(uint(n - 1))
	mask := uint32(1)<<width - 1
	index := b.remaining & mask
	b.remaining >>= width
	return int(index % uint32(n))
}

// FromSeed decodes traits from the last four bytes of a seed, with the format version
// carried by bytes 26 to 28.
func FromSeed(seed Seed) Traits {
	r := &bitReader{remaining: binary.BigEndian.Uint32(seed[28:32])}

	var t Traits
	t.FlowField = FlowField(r.pluck(len(flowFieldOptions)))
	t.Turbulence = Turbulence(r.pluck(len(turbulenceOptions)))
	t.Margin = Margin(r.pluck(len(marginOptions)))
	t.ColorVariety = ColorVariety(r.pluck(len(colorVarietyOptions)))
	t.ColorMode = ColorMode(r.pluck(len(colorModeOptions)))
	t.Structure = Structure(r.pluck(len(structureOptions)))
	t.BullseyeRings = BullseyeRings{
		One:   r.pluck(2) == 0,
		Three: r.pluck(2) == 0,
		Seven: r.pluck(2) == 0,
	}
	t.RingThickness = RingThickness(r.pluck(len(ringThicknessOptions)))
	t.RingSize = RingSize(r.pluck(len(ringSizeOptions)))
	t.SizeVariety = SizeVariety(r.pluck(len(sizeVarietyOptions)))
	t.ColorPalette = ColorPalette(r.pluck(len(colorPaletteOptions)))
	t.Spacing = Spacing(r.pluck(len(spacingOptions)))
	t.Version = versionOf(seed)
	return t
}

func versionOf(seed Seed) Version {
	if seed[26] != 0xff || seed[27] != 0xff {
		return Unversioned
	}
	switch seed[28] >> 4 {
	case 0:
		return V0
	case 1:
		return V1
	}
	return Unversioned
}

// LogValue implements slog.LogValuer.
func (t Traits) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("flow_field", t.FlowField.String()),
		slog.String("turbulence", t.Turbulence.String()),
		slog.String("margin", t.Margin.String()),
		slog.String("color_variety", t.ColorVariety.String()),
		slog.String("color_mode", t.ColorMode.String()),
		slog.String("structure", t.Structure.String()),
		slog.Bool("rings_one", t.BullseyeRings.One),
		slog.Bool("rings_three", t.BullseyeRings.Three),
		slog.Bool("rings_seven", t.BullseyeRings.Seven),
		slog.String("ring_thickness", t.RingThickness.String()),
		slog.String("ring_size", t.RingSize.String()),
		slog.String("size_variety", t.SizeVariety.String()),
		slog.String("palette", t.ColorPalette.String()),
		slog.String("spacing", t.Spacing.String()),
		slog.String("version", t.Version.String()),
	)
}

func (t Traits) String() string {
	return fmt.Sprintf(
		"flow=%s turbulence=%s margin=%s variety=%s mode=%s structure=%s rings=%v thickness=%s size=%s sizes=%s palette=%s spacing=%s version=%s",
		t.FlowField, t.Turbulence, t.Margin, t.ColorVariety, t.ColorMode, t.Structure,
		t.BullseyeRings, t.RingThickness, t.RingSize, t.SizeVariety, t.ColorPalette,
		t.Spacing, t.Version,
	)
}
