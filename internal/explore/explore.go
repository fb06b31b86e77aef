// Package explore runs the interactive pan/zoom loop against a windowed
// front end.
//
// Each frame: poll input, step the navigation state, push the render
// parameters, then draw and present. The loop ends when the window asks to
// close, the exit key is held, or the context is canceled.
package explore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/logx"
	"github.com/san-kum/mandelzoom/internal/nav"
)

// Frontend is a window plus the GPU program that maps and colors pixels.
type Frontend interface {
	Name() string
	// Poll reports the keys held this frame. It must not block.
	Poll() nav.Keys
	// Push uploads the zoom and center parameters read by the next Draw.
	Push(p nav.Params)
	// Draw renders one frame and presents it.
	Draw()
	ShouldClose() bool
	Close()
}

// Settings are the values a front end needs at creation time.
type Settings struct {
	Width, Height int
	Title         string
	// BaseWidth and BaseHeight are the plane extent shown at zoom 1.
	BaseWidth, BaseHeight float64
	Mode                  fractal.Mode
	Budget                int
	Threshold             float64
	Cutoff                float64
	From, To              [3]float64
	ClearColor            [3]uint8
	TargetFPS             int
}

var ErrUnknownBackend = errors.New("explore: unknown backend")

var backends = map[string]func(Settings) (Frontend, error){}

// Register makes a front end constructor available under name.
// Front-end packages call it from init.
func Register(name string, open func(Settings) (Frontend, error)) {
	backends[name] = open
}

func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the named front end. An empty name or "auto" picks the
// first registered backend.
func Open(name string, s Settings) (Frontend, error) {
	if name == "" || name == "auto" {
		names := Backends()
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: none registered", ErrUnknownBackend)
		}
		name = names[0]
	}
	open, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	fe, err := open(s)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return fe, nil
}

// Run drives fe until it closes. It returns the number of frames drawn.
func Run(ctx context.Context, fe Frontend, st *nav.State) (int, error) {
	log := logx.Logger().With("frontend", fe.Name())
	log.Info("explore started", "center_re", st.CenterX, "center_im", st.CenterY, "zoom", st.Zoom)

	frames := 0
	for !fe.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		keys := fe.Poll()
		if keys.Exit {
			break
		}
		st.Step(keys)
		fe.Push(st.Params())
		fe.Draw()
		frames++

		if keys.Any() {
			log.Debug("frame", "n", frames, "center_re", st.CenterX, "center_im", st.CenterY, "zoom", st.Zoom)
		}
	}

	log.Info("explore finished", "frames", frames, "center_re", st.CenterX, "center_im", st.CenterY, "zoom", st.Zoom)
	return frames, nil
}
