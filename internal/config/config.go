package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/nav"
)

const (
	DefaultCenterRe   = -0.6
	DefaultCenterIm   = 0.0
	DefaultViewWidth  = 3.0
	DefaultViewHeight = 2.35
	DefaultResolution = 12_000_000
	DefaultOutput     = "Mandelbrot.ppm"
	DefaultBudget     = 200
	DefaultThreshold  = 4.0
	DefaultWindowW    = 640
	DefaultWindowH    = 480
	DefaultTitle      = "Mandelbrot Zoom"
	DefaultBackend    = "auto"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Name    string        `yaml:"name,omitempty"`
	Render  RenderConfig  `yaml:"render"`
	Color   ColorConfig   `yaml:"color"`
	Explore ExploreConfig `yaml:"explore"`
}

type RenderConfig struct {
	CenterRe   float64 `yaml:"center_re"`
	CenterIm   float64 `yaml:"center_im"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
	// Resolution is the target pixel count, used when Width or Height is zero.
	Resolution int    `yaml:"resolution"`
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	Workers    int    `yaml:"workers,omitempty"`
	Output     string `yaml:"output"`
}

type ColorConfig struct {
	Mode      string  `yaml:"mode"`
	Budget    int     `yaml:"budget"`
	Threshold float64 `yaml:"threshold"`
	Cutoff    float64 `yaml:"cutoff"`
	From      Color   `yaml:"from"`
	To        Color   `yaml:"to"`
}

type ExploreConfig struct {
	Backend      string     `yaml:"backend"`
	WindowWidth  int        `yaml:"window_width"`
	WindowHeight int        `yaml:"window_height"`
	Title        string     `yaml:"title"`
	TargetFPS    int        `yaml:"target_fps"`
	ClearColor   [3]uint8   `yaml:"clear_color,flow"`
	Nav          nav.Config `yaml:"nav"`
}

func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			CenterRe:   DefaultCenterRe,
			CenterIm:   DefaultCenterIm,
			ViewWidth:  DefaultViewWidth,
			ViewHeight: DefaultViewHeight,
			Resolution: DefaultResolution,
			Workers:    1,
			Output:     DefaultOutput,
		},
		Color: ColorConfig{
			Mode:      string(fractal.ModeIterative),
			Budget:    DefaultBudget,
			Threshold: DefaultThreshold,
			Cutoff:    1.0,
			From:      Color{0.4, 0.0, 0.0},
			To:        Color{1.0, 1.0, 0.0},
		},
		Explore: ExploreConfig{
			Backend:      DefaultBackend,
			WindowWidth:  DefaultWindowW,
			WindowHeight: DefaultWindowH,
			Title:        DefaultTitle,
			TargetFPS:    60,
			ClearColor:   [3]uint8{115, 38, 115},
			Nav:          nav.DefaultConfig(),
		},
	}
}

// Load reads a yaml file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over a copy of base. Keys the file omits keep
// base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.Viewport(); err != nil {
		return err
	}
	if _, err := c.FractalConfig(); err != nil {
		return err
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	}
	if (c.Render.Width == 0 || c.Render.Height == 0) && c.Render.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive when width or height is unset", ErrInvalidConfig)
	}
	if !c.Color.From.Valid() || !c.Color.To.Valid() {
		return fmt.Errorf("%w: gradient components must lie in [0, 1]", ErrInvalidConfig)
	}
	if c.Explore.WindowWidth <= 0 || c.Explore.WindowHeight <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Explore.WindowWidth, c.Explore.WindowHeight)
	}
	return nil
}

func (c *Config) Viewport() (fractal.Viewport, error) {
	return fractal.NewViewport(
		fractal.Point{Re: c.Render.CenterRe, Im: c.Render.CenterIm},
		c.Render.ViewWidth, c.Render.ViewHeight,
	)
}

func (c *Config) Gradient() fractal.Gradient {
	return fractal.Gradient{From: c.Color.From.RGB(), To: c.Color.To.RGB()}
}

func (c *Config) FractalConfig() (fractal.Config, error) {
	mode, err := fractal.ParseMode(c.Color.Mode)
	if err != nil {
		return fractal.Config{}, err
	}
	fc := fractal.Config{
		Mode:      mode,
		Budget:    c.Color.Budget,
		Threshold: c.Color.Threshold,
		Cutoff:    c.Color.Cutoff,
		Gradient:  c.Gradient(),
	}
	return fc, fc.Validate()
}

// ExploreSettings converts the config into what a windowed front end needs.
func (c *Config) ExploreSettings() explore.Settings {
	mode, err := fractal.ParseMode(c.Color.Mode)
	if err != nil {
		mode = fractal.ModeIterative
	}
	return explore.Settings{
		Width:      c.Explore.WindowWidth,
		Height:     c.Explore.WindowHeight,
		Title:      c.Explore.Title,
		BaseWidth:  c.Render.ViewWidth,
		BaseHeight: c.Render.ViewHeight,
		Mode:       mode,
		Budget:     c.Color.Budget,
		Threshold:  c.Color.Threshold,
		Cutoff:     c.Color.Cutoff,
		From:       c.Color.From,
		To:         c.Color.To,
		ClearColor: c.Explore.ClearColor,
		TargetFPS:  c.Explore.TargetFPS,
	}
}

func (c *Config) NavConfig() nav.Config {
	return c.Explore.Nav
}

// Center is the plane point the render and explore views start from.
func (c *Config) Center() fractal.Point {
	return fractal.Point{Re: c.Render.CenterRe, Im: c.Render.CenterIm}
}

// SetViewport replaces the render center and extent.
func (c *Config) SetViewport(vp fractal.Viewport) {
	c.Render.CenterRe = vp.Center.Re
	c.Render.CenterIm = vp.Center.Im
	c.Render.ViewWidth = vp.Width
	c.Render.ViewHeight = vp.Height
}
