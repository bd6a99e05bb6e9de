package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/qql/art"
	"github.com/pthm-cable/qql/color"
	"github.com/pthm-cable/qql/config"
	"github.com/pthm-cable/qql/telemetry"
	"github.com/pthm-cable/qql/traits"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	colorsPath := flag.String("colors", "", "Path to a color database YAML (empty = bundled)")
	width := flag.Int("width", 0, "Output width in pixels (0 = use config)")
	chunks := flag.String("chunks", "", "Chunk grid WxH (empty = use config)")
	viewport := flag.String("viewport", "", "Crop WxH+L+T as canvas fractions")
	animate := flag.String("animate", "", "Animation: none, groups, or points:N")
	splatterImmediately := flag.Bool("splatter-immediately", false, "Paint splatters with each animation batch")
	inflate := flag.Bool("inflate", false, "Raise tiny points to a visible radius")
	fastCollisions := flag.Bool("fast-collisions", false, "Use squared-distance collision checks")
	minCircleSteps := flag.Int("min-circle-steps", 0, "Minimum polyline segments per circle")
	outputDir := flag.String("output-dir", "", "Directory for the image, frames and CSV logs")
	logStats := flag.Bool("telemetry", false, "Write render/frame/perf CSV files to the output directory")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <seed>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	seed, err := traits.ParseSeed(flag.Arg(0))
	if err != nil {
		slog.Error("invalid seed", "error", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Only flags given on the command line override the config.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Output.Width = *width
		case "chunks":
			cfg.Render.Chunks = *chunks
		case "viewport":
			cfg.Render.Viewport = *viewport
		case "animate":
			cfg.Render.Animate = *animate
		case "splatter-immediately":
			cfg.Render.SplatterImmediately = *splatterImmediately
		case "inflate":
			cfg.Render.InflateDrawRadius = *inflate
		case "fast-collisions":
			cfg.Render.FastCollisions = *fastCollisions
		case "min-circle-steps":
			cfg.Render.MinCircleSteps = *minCircleSteps
		case "output-dir":
			cfg.Output.Dir = *outputDir
		case "telemetry":
			cfg.Telemetry.Enabled = *logStats
		}
	})
	if err := cfg.Resolve(); err != nil {
		slog.Error("invalid options", "error", err)
		os.Exit(1)
	}

	if err := run(seed, cfg, *colorsPath); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func loadColors(path string) (*color.DB, error) {
	if path == "" {
		return color.Bundled(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening color database: %w", err)
	}
	defer f.Close()
	return color.Load(f)
}

func run(seed traits.Seed, cfg *config.Config, colorsPath string) error {
	db, err := loadColors(colorsPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var (
		om   *telemetry.OutputManager
		perf *telemetry.PerfCollector
	)
	if cfg.Telemetry.Enabled {
		om, err = telemetry.NewOutputManager(cfg.Output.Dir)
		if err != nil {
			return err
		}
		defer om.Close()
		if err := om.WriteConfig(cfg); err != nil {
			return err
		}
		perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	}

	framesDir := cfg.Output.FramesDir
	if !filepath.IsAbs(framesDir) {
		framesDir = filepath.Join(cfg.Output.Dir, framesDir)
	}
	animated := cfg.Derived.Animation.Kind != config.AnimateNone
	if animated {
		if err := os.MkdirAll(framesDir, 0755); err != nil {
			return fmt.Errorf("creating frames directory: %w", err)
		}
	}

	start := time.Now()
	slog.Info("rendering",
		"seed", seed.String(),
		"width", cfg.Output.Width,
		"chunks", cfg.Derived.Chunks.String(),
		"viewport", cfg.Derived.Viewport.String(),
		"animation", cfg.Derived.Animation.String(),
	)

	perfWritten := 0
	onFrame := func(f art.Frame) error {
		var path string
		if f.Animated {
			path = filepath.Join(framesDir, fmt.Sprintf("frame-%04d.png", f.Number))
			if err := f.Canvas.SavePNG(path); err != nil {
				return err
			}
			slog.Debug("wrote frame", "frame", f.Number, "path", path)
		}
		if err := om.WriteFrame(telemetry.FrameRecord{
			Frame:     f.Number,
			Animated:  f.Animated,
			Path:      path,
			ElapsedMS: time.Since(start).Milliseconds(),
		}); err != nil {
			return err
		}
		if perf.WindowFull() && perf.Frames() > perfWritten {
			perfWritten = perf.Frames()
			stats := perf.Stats()
			stats.LogStats()
			return om.WritePerf(stats, perfWritten)
		}
		return nil
	}

	data, err := art.Draw(seed, db, cfg, cfg.Output.Width, onFrame, art.WithPerf(perf))
	if err != nil {
		return err
	}
	defer data.Canvas.Close()

	suffix := "canon"
	if cfg.Render.InflateDrawRadius {
		suffix = "inflated"
	}
	out := filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s-%s.png", seed.String(), suffix))
	if err := data.Canvas.SavePNG(out); err != nil {
		return err
	}
	elapsed := time.Since(start)
	slog.Info("wrote image",
		"path", out,
		"points", data.NumPoints,
		"frames", data.NumFrames,
		"colors", data.ColorsUsed.Len(),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	if om == nil {
		return nil
	}
	if perf.Frames() > perfWritten {
		if err := om.WritePerf(perf.Stats(), perf.Frames()); err != nil {
			return err
		}
	}
	return writeRenderStats(om, seed, cfg, data, elapsed)
}

func writeRenderStats(om *telemetry.OutputManager, seed traits.Seed, cfg *config.Config, data *art.RenderData, elapsed time.Duration) error {
	layout := telemetry.ComputeLayoutStats(data.Points)
	slog.Info("layout", "stats", layout)

	stats := telemetry.RenderStats{
		Seed:      seed.String(),
		Width:     data.Canvas.Width(),
		Height:    data.Canvas.Height(),
		Chunks:    cfg.Derived.Chunks.String(),
		Animation: cfg.Derived.Animation.String(),
		FlowField: data.Traits.FlowField.String(),
		Structure: data.Traits.Structure.String(),
		ColorMode: data.Traits.ColorMode.String(),
		Palette:   data.Traits.ColorPalette.String(),
		Frames:    data.NumFrames,
		Colors:    data.ColorsUsed.Len(),
		ElapsedMS: elapsed.Milliseconds(),
	}
	stats.SetLayout(layout)
	stats.LogStats()
	if err := om.WriteRender(stats); err != nil {
		return err
	}

	rings := make([]telemetry.RingRecord, len(data.RingCounts))
	for i, b := range data.RingCounts {
		rings[i] = telemetry.RingRecord{Rings: b.Rings, Count: b.Count}
	}
	return om.WriteRings(rings)
}
