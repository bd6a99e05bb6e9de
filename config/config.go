// Package config provides configuration loading and access for the renderer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/qql/camera"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	ErrBadChunks    = errors.New("chunks must be WxH with positive W and H")
	ErrBadAnimation = errors.New("animate must be none, groups, or points:N")
	ErrBadViewport  = errors.New("viewport must be WxH+L+T")
)

// Config holds all render configuration parameters.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RenderConfig holds options that affect layout and painting.
type RenderConfig struct {
	FastCollisions      bool   `yaml:"fast_collisions"`
	InflateDrawRadius   bool   `yaml:"inflate_draw_radius"`
	MinCircleSteps      int    `yaml:"min_circle_steps"`
	Chunks              string `yaml:"chunks"`
	Viewport            string `yaml:"viewport"`
	Animate             string `yaml:"animate"`
	SplatterImmediately bool   `yaml:"splatter_immediately"`
	VerifySplatters     bool   `yaml:"verify_splatters"`
}

// OutputConfig holds output locations and size.
type OutputConfig struct {
	Width     int    `yaml:"width"`
	Dir       string `yaml:"dir"`
	FramesDir string `yaml:"frames_dir"`
}

// TelemetryConfig holds CSV/perf output settings.
type TelemetryConfig struct {
	Enabled    bool `yaml:"enabled"`
	PerfWindow int  `yaml:"perf_window"` // frames per perf window
}

// AnimationKind selects how points are batched into frames.
type AnimationKind uint8

const (
	AnimateNone AnimationKind = iota
	AnimateGroups
	AnimatePoints
)

// Animation is the parsed form of render.animate.
type Animation struct {
	Kind AnimationKind
	Step int // points per frame for AnimatePoints
}

func (a Animation) String() string {
	switch a.Kind {
	case AnimateGroups:
		return "groups"
	case AnimatePoints:
		return fmt.Sprintf("points:%d", a.Step)
	}
	return "none"
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Chunks    camera.Grid
	Animation Animation
	Viewport  camera.FractionalViewport
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults. Panics if they do not parse.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve validates the raw settings and recomputes Derived. Call it again after changing
// fields programmatically, e.g. from command-line flags.
func (c *Config) Resolve() error {
	grid, err := ParseChunks(c.Render.Chunks)
	if err != nil {
		return err
	}
	anim, err := ParseAnimation(c.Render.Animate)
	if err != nil {
		return err
	}
	vp, err := ParseViewport(c.Render.Viewport)
	if err != nil {
		return err
	}
	if c.Output.Width <= 0 {
		return fmt.Errorf("output width must be positive, got %d", c.Output.Width)
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 1
	}

	c.Derived = DerivedConfig{Chunks: grid, Animation: anim, Viewport: vp}
	return nil
}

// MinCircleSteps is the effective minimum segment count for circles.
func (c *Config) MinCircleSteps() float64 {
	return float64(max(8, c.Render.MinCircleSteps))
}

// ParseChunks parses a chunk grid such as "2x2". An empty string means a single chunk.
func ParseChunks(s string) (camera.Grid, error) {
	if s == "" {
		return camera.Grid{W: 1, H: 1}, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return camera.Grid{}, fmt.Errorf("%w: %q", ErrBadChunks, s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 || w > 255 || h > 255 {
		return camera.Grid{}, fmt.Errorf("%w: %q", ErrBadChunks, s)
	}
	return camera.Grid{W: w, H: h}, nil
}

// ParseAnimation parses "none", "groups" or "points:N".
func ParseAnimation(s string) (Animation, error) {
	switch s {
	case "", "none":
		return Animation{Kind: AnimateNone}, nil
	case "groups":
		return Animation{Kind: AnimateGroups}, nil
	}
	if rest, ok := strings.CutPrefix(s, "points:"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n > 0 {
			return Animation{Kind: AnimatePoints, Step: n}, nil
		}
	}
	return Animation{}, fmt.Errorf("%w: %q", ErrBadAnimation, s)
}

// ParseViewport parses "WxH+L+T" fractions of the canvas. An empty string is the full canvas.
func ParseViewport(s string) (camera.FractionalViewport, error) {
	if s == "" {
		return camera.Full(), nil
	}
	size, offset, ok := strings.Cut(s, "+")
	if !ok {
		return camera.FractionalViewport{}, fmt.Errorf("%w: %q", ErrBadViewport, s)
	}
	ws, hs, ok1 := strings.Cut(size, "x")
	ls, ts, ok2 := strings.Cut(offset, "+")
	if !ok1 || !ok2 {
		return camera.FractionalViewport{}, fmt.Errorf("%w: %q", ErrBadViewport, s)
	}

	var vals [4]float64
	for i, part := range []string{ws, hs, ls, ts} {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return camera.FractionalViewport{}, fmt.Errorf("%w: %q: %w", ErrBadViewport, s, err)
		}
		vals[i] = v
	}
	vp := camera.FractionalViewport{Width: vals[0], Height: vals[1], Left: vals[2], Top: vals[3]}
	if err := vp.Validate(); err != nil {
		return camera.FractionalViewport{}, fmt.Errorf("%w: %w", ErrBadViewport, err)
	}
	return vp, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
