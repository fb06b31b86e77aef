// Package shader holds the GLSL program shared by the windowed explorers
// and the uniform values fed to it.
package shader

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/nav"
)

// Fragment maps each pixel to the plane and colors it by escape time.
//
//go:embed mandelbrot.frag
var Fragment string

// Vertex draws a single fullscreen triangle from gl_VertexID.
//
//go:embed fullscreen.vert
var Vertex string

// Uniform names in Fragment.
const (
	Resolution = "resolution"
	Extent     = "extent"
	Zoom       = "zoom"
	Center     = "center"
	Mode       = "mode"
	Budget     = "budget"
	Threshold  = "threshold"
	Cutoff     = "cutoff"
	From       = "fromColor"
	To         = "toColor"
)

// Values of the mode uniform.
const (
	ModeIterative float32 = 0
	ModeRadial    float32 = 1
)

// Static are the uniforms set once when the program is created.
type Static struct {
	Resolution mgl32.Vec2
	Extent     mgl32.Vec2
	Mode       float32
	Budget     float32
	Threshold  float32
	Cutoff     float32
	From, To   mgl32.Vec3
}

func StaticFor(s explore.Settings) Static {
	mode := ModeIterative
	if s.Mode == fractal.ModeRadialFlat {
		mode = ModeRadial
	}
	return Static{
		Resolution: mgl32.Vec2{float32(s.Width), float32(s.Height)},
		Extent:     mgl32.Vec2{float32(s.BaseWidth), float32(s.BaseHeight)},
		Mode:       mode,
		Budget:     float32(s.Budget),
		Threshold:  float32(s.Threshold),
		Cutoff:     float32(s.Cutoff),
		From:       vec3(s.From),
		To:         vec3(s.To),
	}
}

// Frame are the per-frame uniforms: the zoom scalar and the center vector.
type Frame struct {
	Zoom   float32
	Center mgl32.Vec2
}

// FrameFor narrows p to the single precision the GPU works in.
func FrameFor(p nav.Params) Frame {
	return Frame{
		Zoom:   float32(p.Zoom),
		Center: mgl32.Vec2{float32(p.Center[0]), float32(p.Center[1])},
	}
}

// ClearColor converts an 8-bit color to the [0, 1] floats GL expects.
func ClearColor(c [3]uint8) mgl32.Vec4 {
	return mgl32.Vec4{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, 1}
}

func vec3(c [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}
