package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mandelzoom/internal/fractal"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.CenterRe != -0.6 || cfg.Render.CenterIm != 0 {
		t.Errorf("expected center (-0.6, 0), got (%v, %v)", cfg.Render.CenterRe, cfg.Render.CenterIm)
	}
	if cfg.Render.ViewWidth != 3.0 || cfg.Render.ViewHeight != 2.35 {
		t.Errorf("expected 3.0x2.35, got %vx%v", cfg.Render.ViewWidth, cfg.Render.ViewHeight)
	}
	if cfg.Color.Budget != 200 {
		t.Errorf("expected budget 200, got %d", cfg.Color.Budget)
	}
	if cfg.Explore.Title != "Mandelbrot Zoom" {
		t.Errorf("unexpected title %q", cfg.Explore.Title)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFractalConfig(t *testing.T) {
	fc, err := DefaultConfig().FractalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if fc != fractal.DefaultConfig() {
		t.Errorf("expected %+v, got %+v", fractal.DefaultConfig(), fc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Render.ViewWidth = 0 }, fractal.ErrInvalidViewport},
		{"zero budget", func(c *Config) { c.Color.Budget = 0 }, fractal.ErrInvalidBudget},
		{"bad mode", func(c *Config) { c.Color.Mode = "smooth" }, fractal.ErrUnknownMode},
		{"gradient range", func(c *Config) { c.Color.To = Color{2, 0, 0} }, ErrInvalidConfig},
		{"no size", func(c *Config) { c.Render.Resolution = 0 }, ErrInvalidConfig},
		{"window", func(c *Config) { c.Explore.WindowWidth = -1 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Color.Budget = 321
	cfg.Color.To = Color{0.5, 0.25, 1}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("color:\n  budget: 50\n  from: \"#ff0000\"\n  to: [0, 0, 1]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color.Budget != 50 {
		t.Errorf("expected budget 50, got %d", cfg.Color.Budget)
	}
	if cfg.Color.From != (Color{1, 0, 0}) {
		t.Errorf("expected hex red, got %v", cfg.Color.From)
	}
	if cfg.Color.To != (Color{0, 0, 1}) {
		t.Errorf("expected blue, got %v", cfg.Color.To)
	}
	if cfg.Render.ViewWidth != DefaultViewWidth {
		t.Errorf("omitted key lost its default: %v", cfg.Render.ViewWidth)
	}
}

func TestLoadOverKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("color:\n  threshold: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("quick")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color.Threshold != 9 {
		t.Errorf("expected threshold 9, got %v", cfg.Color.Threshold)
	}
	if cfg.Color.Budget != 100 || cfg.Render.Resolution != 480_000 {
		t.Errorf("base values lost: budget %d, resolution %d", cfg.Color.Budget, cfg.Render.Resolution)
	}
	if base.Color.Threshold == 9 {
		t.Error("base was modified")
	}
}

func TestLoadBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("color:\n  to: [1, 0]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for two-component color")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{1, 1, 0}).Hex(); got != "#ffff00" {
		t.Errorf("expected #ffff00, got %s", got)
	}
}

func TestExploreSettings(t *testing.T) {
	s := DefaultConfig().ExploreSettings()
	if s.Width != 640 || s.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", s.Width, s.Height)
	}
	if s.ClearColor != [3]uint8{115, 38, 115} {
		t.Errorf("unexpected clear color %v", s.ClearColor)
	}
	if s.BaseWidth != 3.0 || s.Budget != 200 {
		t.Errorf("unexpected base extent or budget: %+v", s)
	}
}

func TestExploreSettingsMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color.Mode = "Radial"
	cfg.Color.Cutoff = 3
	s := cfg.ExploreSettings()
	if s.Mode != fractal.ModeRadialFlat {
		t.Errorf("expected radial mode, got %s", s.Mode)
	}
	if s.Cutoff != 3 {
		t.Errorf("expected cutoff 3, got %v", s.Cutoff)
	}
}
