package fractal

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Mode selects a coloring strategy.
type Mode string

const (
	ModeIterative  Mode = "iterative"
	ModeRadialFlat Mode = "radial"
)

// Strategy maps a plane point to a pixel color.
type Strategy interface {
	Name() string
	Color(c Point) color.RGBA
}

// Iterative colors escaped points by Gradient.At(i / Budget) and bounded
// points black.
type Iterative struct {
	Budget    int
	Threshold float64
	Gradient  Gradient
}

func (s Iterative) Name() string { return string(ModeIterative) }

func (s Iterative) Color(c Point) color.RGBA {
	res := Evaluate(c, s.Budget, s.Threshold)
	if !res.Escaped {
		return Black
	}
	alpha := float64(res.Iteration) / float64(s.Budget)
	return s.Gradient.At(alpha)
}

// RadialFlat skips iteration and colors by the initial radius |c|².
// Points with |c|² above Cutoff are black.
type RadialFlat struct {
	Cutoff   float64
	Gradient Gradient
}

func (s RadialFlat) Name() string { return string(ModeRadialFlat) }

func (s RadialFlat) Color(c Point) color.RGBA {
	r := c.Radius2()
	if r > s.Cutoff {
		return Black
	}
	return s.Gradient.At(r / s.Cutoff)
}

// Config holds the evaluator parameters shared by every renderer.
type Config struct {
	Mode      Mode
	Budget    int
	Threshold float64
	Cutoff    float64
	Gradient  Gradient
}

// DefaultConfig is the batch renderer's palette: dark red through yellow, 200 iterations.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeIterative,
		Budget:    DefaultBudget,
		Threshold: DefaultThreshold,
		Cutoff:    1.0,
		Gradient: Gradient{
			From: RGB{0.4, 0.0, 0.0},
			To:   RGB{1.0, 1.0, 0.0},
		},
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeIterative:
		if c.Budget < 1 {
			return &ConfigError{Field: "budget", Value: c.Budget, Wrapped: ErrInvalidBudget}
		}
		if !(c.Threshold > 0) {
			return &ConfigError{Field: "threshold", Value: c.Threshold, Wrapped: ErrInvalidThreshold}
		}
	case ModeRadialFlat:
		if !(c.Cutoff > 0) {
			return &ConfigError{Field: "cutoff", Value: c.Cutoff, Wrapped: ErrInvalidThreshold}
		}
	default:
		return &ConfigError{Field: "mode", Value: c.Mode, Wrapped: ErrUnknownMode}
	}
	return nil
}

var strategies = map[Mode]func(Config) Strategy{
	ModeIterative: func(c Config) Strategy {
		return Iterative{Budget: c.Budget, Threshold: c.Threshold, Gradient: c.Gradient}
	},
	ModeRadialFlat: func(c Config) Strategy {
		return RadialFlat{Cutoff: c.Cutoff, Gradient: c.Gradient}
	},
}

// NewStrategy validates cfg and builds the strategy it selects.
func NewStrategy(cfg Config) (Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return strategies[cfg.Mode](cfg), nil
}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := strategies[m]; !ok {
		return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownMode, s, Modes())
	}
	return m, nil
}

func Modes() []string {
	names := make([]string, 0, len(strategies))
	for m := range strategies {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}
