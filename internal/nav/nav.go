// Package nav holds the pan/zoom state of the interactive explorers.
//
// A [State] is mutated once per frame from the set of held [Keys] and read
// once per frame into [Params], the two values pushed to the render pipeline.
package nav

import (
	"math"

	"github.com/san-kum/mandelzoom/internal/fractal"
)

const (
	DefaultMoveSpeed  = 0.01
	DefaultZoomFactor = 1.01
	DefaultMinZoom    = 0.25
	// past this, double precision can no longer separate neighbouring pixels
	DefaultMaxZoom = 1e13
)

// Keys is the set of logical keys held during one frame.
type Keys struct {
	Left, Right, Up, Down bool
	ZoomIn, ZoomOut       bool
	Reset                 bool
	Exit                  bool
}

func (k Keys) Any() bool {
	return k.Left || k.Right || k.Up || k.Down || k.ZoomIn || k.ZoomOut || k.Reset || k.Exit
}

type Config struct {
	MoveSpeed  float64 `yaml:"move_speed"`
	ZoomFactor float64 `yaml:"zoom_factor"`
	MinZoom    float64 `yaml:"min_zoom"`
	MaxZoom    float64 `yaml:"max_zoom"`
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:  DefaultMoveSpeed,
		ZoomFactor: DefaultZoomFactor,
		MinZoom:    DefaultMinZoom,
		MaxZoom:    DefaultMaxZoom,
	}
}

// Params are the per-frame render parameters: a zoom scalar and a center vector.
type Params struct {
	Zoom   float64
	Center [2]float64
}

type State struct {
	CenterX, CenterY float64
	Zoom             float64

	cfg     Config
	initial [3]float64
}

// New returns a state at center with zoom 1.
func New(center fractal.Point, cfg Config) *State {
	if cfg.ZoomFactor <= 1 {
		cfg.ZoomFactor = DefaultZoomFactor
	}
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultMinZoom
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = math.Max(DefaultMaxZoom, cfg.MinZoom)
	}
	s := &State{CenterX: center.Re, CenterY: center.Im, Zoom: 1, cfg: cfg}
	s.Zoom = s.clamp(s.Zoom)
	s.initial = [3]float64{s.CenterX, s.CenterY, s.Zoom}
	return s
}

func (s *State) Config() Config { return s.cfg }

// Step applies one frame of input. Pan distance is MoveSpeed/Zoom so the
// on-screen speed stays constant; zoom changes by ZoomFactor per held frame.
// Exit is not handled here.
func (s *State) Step(k Keys) {
	if k.Reset {
		s.CenterX, s.CenterY, s.Zoom = s.initial[0], s.initial[1], s.initial[2]
		return
	}

	move := s.cfg.MoveSpeed / s.Zoom
	if k.Left {
		s.CenterX -= move
	}
	if k.Right {
		s.CenterX += move
	}
	if k.Up {
		s.CenterY += move
	}
	if k.Down {
		s.CenterY -= move
	}

	if k.ZoomIn {
		s.Zoom = s.clamp(s.Zoom * s.cfg.ZoomFactor)
	}
	if k.ZoomOut {
		s.Zoom = s.clamp(s.Zoom / s.cfg.ZoomFactor)
	}
}

func (s *State) clamp(z float64) float64 {
	return math.Min(math.Max(z, s.cfg.MinZoom), s.cfg.MaxZoom)
}

func (s *State) Params() Params {
	return Params{Zoom: s.Zoom, Center: [2]float64{s.CenterX, s.CenterY}}
}

func (s *State) Center() fractal.Point {
	return fractal.Point{Re: s.CenterX, Im: s.CenterY}
}

// Viewport is the plane rectangle shown at the current zoom for a base
// extent of baseW × baseH at zoom 1.
func (s *State) Viewport(baseW, baseH float64) fractal.Viewport {
	return fractal.Viewport{Width: baseW, Height: baseH}.Zoomed(s.Center(), s.Zoom)
}
