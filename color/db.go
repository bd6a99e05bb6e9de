package color

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/qql/traits"
)

//go:embed colordata.yaml
var bundledData []byte

var (
	ErrTooManyColors    = errors.New("too many colors")
	ErrDuplicateColor   = errors.New("duplicate color")
	ErrDuplicatePalette = errors.New("duplicate palette")
	ErrUndefinedColor   = errors.New("undefined color")
)

// Substitution replaces a sequence color on a particular background. Remove drops the color
// from the palette instead.
type Substitution struct {
	To     Key
	Remove bool
}

// Background is a candidate background color with the substitutions it implies.
type Background struct {
	Color         Key
	Substitutions map[Key]Substitution
}

// Substitute applies the background's substitution to c. ok is false when c is removed.
func (b *Background) Substitute(c Key) (Key, bool) {
	sub, found := b.Substitutions[c]
	if !found {
		return c, true
	}
	if sub.Remove {
		return 0, false
	}
	return sub.To, true
}

// WeightedBackground pairs a background with its selection weight.
type WeightedBackground struct {
	Background *Background
	Weight     float64
}

// WeightedColor pairs a color with its selection weight.
type WeightedColor struct {
	Color  Key
	Weight float64
}

// Palette is the resolved form of a named palette.
type Palette struct {
	Name             string
	Swatches         []Key
	ColorSeq         []Key
	BackgroundColors []WeightedBackground
	SplatterColors   []WeightedColor
}

// DB is an immutable, resolved color database. It is safe for concurrent reads.
type DB struct {
	colors   []Spec
	byName   map[string]Key
	palettes map[string]*Palette
}

// Wire format, as stored in colordata.yaml.

type wireDB struct {
	Colors   []Spec        `yaml:"colors"`
	Palettes []wirePalette `yaml:"palettes"`
}

type wirePalette struct {
	Name             string           `yaml:"name"`
	Swatches         []string         `yaml:"swatches"`
	ColorSeq         []string         `yaml:"colorSeq"`
	BackgroundColors []wireBackground `yaml:"backgroundColors"`
	SplatterColors   []wireSplatter   `yaml:"splatterColors"`
}

// wireBackground decodes from [name, weight, {from: to|null}].
type wireBackground struct {
	Name          string
	Weight        float64
	Substitutions map[string]*string
}

func (w *wireBackground) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 3 {
		return fmt.Errorf("line %d: background color must be [name, weight, substitutions]", node.Line)
	}
	if err := node.Content[0].Decode(&w.Name); err != nil {
		return err
	}
	if err := node.Content[1].Decode(&w.Weight); err != nil {
		return err
	}
	return node.Content[2].Decode(&w.Substitutions)
}

// wireSplatter decodes from [name, weight].
type wireSplatter struct {
	Name   string
	Weight float64
}

func (w *wireSplatter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: splatter color must be [name, weight]", node.Line)
	}
	if err := node.Content[0].Decode(&w.Name); err != nil {
		return err
	}
	return node.Content[1].Decode(&w.Weight)
}

// Parse decodes and resolves a database. JSON input is accepted as well as YAML.
func Parse(data []byte) (*DB, error) {
	var wire wireDB
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding color data: %w", err)
	}
	return fromWire(wire)
}

// Load reads and parses a database from r.
func Load(r io.Reader) (*DB, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading color data: %w", err)
	}
	return Parse(data)
}

var (
	bundledOnce sync.Once
	bundled     *DB
)

// Bundled returns the database compiled into the binary. Panics if it is invalid.
func Bundled() *DB {
	bundledOnce.Do(func() {
		db, err := Parse(bundledData)
		if err != nil {
			panic(fmt.Sprintf("color: bundled data is not a valid database: %v", err))
		}
		bundled = db
	})
	return bundled
}

func fromWire(wire wireDB) (*DB, error) {
	db := &DB{
		colors:   make([]Spec, 0, len(wire.Colors)),
		byName:   make(map[string]Key, len(wire.Colors)),
		palettes: make(map[string]*Palette, len(wire.Palettes)),
	}

	for _, c := range wire.Colors {
		if uint64(len(db.colors)) > math.MaxUint32 {
			return nil, ErrTooManyColors
		}
		key := Key(len(db.colors))
		if _, dup := db.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColor, c.Name)
		}
		db.colors = append(db.colors, c)
		db.byName[c.Name] = key
	}

	for _, wp := range wire.Palettes {
		if _, dup := db.palettes[wp.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePalette, wp.Name)
		}
		p, err := db.resolvePalette(wp)
		if err != nil {
			return nil, err
		}
		db.palettes[wp.Name] = p
	}
	return db, nil
}

func (db *DB) resolvePalette(wp wirePalette) (*Palette, error) {
	find := func(name string) (Key, error) {
		key, ok := db.byName[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q in palette %q", ErrUndefinedColor, name, wp.Name)
		}
		return key, nil
	}
	findAll := func(names []string) ([]Key, error) {
		keys := make([]Key, 0, len(names))
		for _, n := range names {
			k, err := find(n)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		}
		return keys, nil
	}

	p := &Palette{Name: wp.Name}
	var err error
	if p.Swatches, err = findAll(wp.Swatches); err != nil {
		return nil, err
	}
	if p.ColorSeq, err = findAll(wp.ColorSeq); err != nil {
		return nil, err
	}

	for _, wb := range wp.BackgroundColors {
		bg := &Background{Substitutions: make(map[Key]Substitution, len(wb.Substitutions))}
		for from, to := range wb.Substitutions {
			fromKey, err := find(from)
			if err != nil {
				return nil, err
			}
			if to == nil {
				bg.Substitutions[fromKey] = Substitution{Remove: true}
				continue
			}
			toKey, err := find(*to)
			if err != nil {
				return nil, err
			}
			bg.Substitutions[fromKey] = Substitution{To: toKey}
		}
		if bg.Color, err = find(wb.Name); err != nil {
			return nil, err
		}
		p.BackgroundColors = append(p.BackgroundColors, WeightedBackground{Background: bg, Weight: wb.Weight})
	}

	for _, ws := range wp.SplatterColors {
		k, err := find(ws.Name)
		if err != nil {
			return nil, err
		}
		p.SplatterColors = append(p.SplatterColors, WeightedColor{Color: k, Weight: ws.Weight})
	}
	return p, nil
}

// Color returns the spec for key, or nil if the key is out of range.
func (db *DB) Color(key Key) *Spec {
	if int(key) >= len(db.colors) {
		return nil
	}
	return &db.colors[key]
}

// MustColor is Color for keys that came from this database. Panics on an unknown key.
func (db *DB) MustColor(key Key) *Spec {
	spec := db.Color(key)
	if spec == nil {
		panic(fmt.Sprintf("color: invalid color key %d", key))
	}
	return spec
}

// ColorByName looks up a color spec by its display name.
func (db *DB) ColorByName(name string) *Spec {
	key, ok := db.byName[name]
	if !ok {
		return nil
	}
	return db.Color(key)
}

// Palette returns the palette for a trait value, or nil when the data has none.
func (db *DB) Palette(p traits.ColorPalette) *Palette {
	return db.palettes[p.String()]
}

// NumColors returns the number of colors defined.
func (db *DB) NumColors() int {
	return len(db.colors)
}
