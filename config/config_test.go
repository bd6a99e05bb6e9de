package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/qql/camera"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Width != 2400 {
		t.Errorf("width = %d, want 2400", cfg.Output.Width)
	}
	if cfg.Derived.Chunks != (camera.Grid{W: 2, H: 2}) {
		t.Errorf("chunks = %v", cfg.Derived.Chunks)
	}
	if cfg.Derived.Animation.Kind != AnimateNone {
		t.Errorf("animation = %v", cfg.Derived.Animation)
	}
	if cfg.Derived.Viewport != camera.Full() {
		t.Errorf("viewport = %v", cfg.Derived.Viewport)
	}
	if cfg.MinCircleSteps() != 8 {
		t.Errorf("MinCircleSteps = %v", cfg.MinCircleSteps())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qql.yaml")
	data := "render:\n  chunks: 3x1\n  animate: points:500\n  min_circle_steps: 40\noutput:\n  width: 800\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.Chunks != (camera.Grid{W: 3, H: 1}) {
		t.Errorf("chunks = %v", cfg.Derived.Chunks)
	}
	if cfg.Derived.Animation != (Animation{Kind: AnimatePoints, Step: 500}) {
		t.Errorf("animation = %v", cfg.Derived.Animation)
	}
	if cfg.Output.Width != 800 || cfg.MinCircleSteps() != 40 {
		t.Errorf("width = %d, steps = %v", cfg.Output.Width, cfg.MinCircleSteps())
	}
	// Untouched keys keep their defaults.
	if cfg.Output.FramesDir != "frames" {
		t.Errorf("frames_dir = %q", cfg.Output.FramesDir)
	}

	out := filepath.Join(dir, "written.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if again.Render != cfg.Render || again.Output != cfg.Output {
		t.Error("written config does not round-trip")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render:\n  chunks: 0x2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrBadChunks) {
		t.Errorf("err = %v, want ErrBadChunks", err)
	}
}

func TestParseChunks(t *testing.T) {
	tests := []struct {
		in      string
		want    camera.Grid
		wantErr bool
	}{
		{"", camera.Grid{W: 1, H: 1}, false},
		{"1x1", camera.Grid{W: 1, H: 1}, false},
		{"4X3", camera.Grid{W: 4, H: 3}, false},
		{"2", camera.Grid{}, true},
		{"-1x2", camera.Grid{}, true},
		{"axb", camera.Grid{}, true},
		{"256x1", camera.Grid{}, true},
	}
	for _, tc := range tests {
		got, err := ParseChunks(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseChunks(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseChunks(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAnimation(t *testing.T) {
	tests := []struct {
		in      string
		want    Animation
		wantErr bool
	}{
		{"none", Animation{Kind: AnimateNone}, false},
		{"", Animation{Kind: AnimateNone}, false},
		{"groups", Animation{Kind: AnimateGroups}, false},
		{"points:25", Animation{Kind: AnimatePoints, Step: 25}, false},
		{"points:0", Animation{}, true},
		{"points:", Animation{}, true},
		{"frames", Animation{}, true},
	}
	for _, tc := range tests {
		got, err := ParseAnimation(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAnimation(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAnimation(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseViewport(t *testing.T) {
	tests := []struct {
		in      string
		want    camera.FractionalViewport
		wantErr bool
	}{
		{"", camera.Full(), false},
		{"0.5x0.25+0.25+0.5", camera.FractionalViewport{Width: 0.5, Height: 0.25, Left: 0.25, Top: 0.5}, false},
		{"1x1+0+0", camera.Full(), false},
		{"0.5x0.5", camera.FractionalViewport{}, true},
		{"0.5x0.5+0.75+0", camera.FractionalViewport{}, true},
		{"ax1+0+0", camera.FractionalViewport{}, true},
	}
	for _, tc := range tests {
		got, err := ParseViewport(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseViewport(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrBadViewport) {
			t.Errorf("ParseViewport(%q) err = %v, want ErrBadViewport", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseViewport(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCfgBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init")
		}
	}()
	Cfg()
}

func TestMustInit(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	MustInit("")
	if got := Cfg().Output.Width; got != Defaults().Output.Width {
		t.Errorf("width = %d, want embedded default %d", got, Defaults().Output.Width)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustInit should panic on a missing file")
		}
	}()
	MustInit(filepath.Join(t.TempDir(), "missing.yaml"))
}
