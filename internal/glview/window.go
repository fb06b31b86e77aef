// Package glview is the glfw front end of the explorer, drawing through a
// core-profile OpenGL context.
package glview

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/logx"
	"github.com/san-kum/mandelzoom/internal/nav"
	"github.com/san-kum/mandelzoom/internal/shader"
)

var ErrInit = errors.New("glview: graphics init failed")

func init() {
	// glfw calls must come from the main thread.
	runtime.LockOSThread()
	explore.Register("glfw", Open)
}

type Window struct {
	win     *glfw.Window
	program uint32
	vao     uint32
	clear   mgl32.Vec4

	locZoom   int32
	locCenter int32
	locRes    int32
}

// Open creates a non-resizable 4.1 core window and builds the render
// program. Any failure tears down what was created before returning.
func Open(s explore.Settings) (fe explore.Frontend, err error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %v", ErrInit, err)
	}

	w := &Window{clear: shader.ClearColor(s.ClearColor)}
	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	w.win, err = glfw.CreateWindow(s.Width, s.Height, s.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create window: %v", ErrInit, err)
	}
	w.win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: opengl: %v", ErrInit, err)
	}
	logx.Logger().Info("opengl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
	)

	w.program, err = createRenderProgram(shader.Vertex, shader.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	gl.GenVertexArrays(1, &w.vao)

	w.locZoom = uniform(w.program, shader.Zoom)
	w.locCenter = uniform(w.program, shader.Center)
	w.locRes = uniform(w.program, shader.Resolution)

	gl.UseProgram(w.program)
	st := shader.StaticFor(s)
	gl.Uniform2fv(uniform(w.program, shader.Extent), 1, &st.Extent[0])
	gl.Uniform1f(uniform(w.program, shader.Mode), st.Mode)
	gl.Uniform1f(uniform(w.program, shader.Budget), st.Budget)
	gl.Uniform1f(uniform(w.program, shader.Threshold), st.Threshold)
	gl.Uniform1f(uniform(w.program, shader.Cutoff), st.Cutoff)
	gl.Uniform3fv(uniform(w.program, shader.From), 1, &st.From[0])
	gl.Uniform3fv(uniform(w.program, shader.To), 1, &st.To[0])
	w.resize()

	return w, nil
}

// resize matches the GL viewport and the resolution uniform to the
// framebuffer, which differs from the window size on high-DPI screens.
func (w *Window) resize() {
	fw, fh := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	res := mgl32.Vec2{float32(fw), float32(fh)}
	gl.Uniform2fv(w.locRes, 1, &res[0])
}

func (w *Window) Name() string { return "glfw" }

func (w *Window) Poll() nav.Keys {
	glfw.PollEvents()
	down := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if w.win.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return nav.Keys{
		Left:    down(glfw.KeyLeft),
		Right:   down(glfw.KeyRight),
		Up:      down(glfw.KeyUp),
		Down:    down(glfw.KeyDown),
		ZoomIn:  down(glfw.KeyEqual, glfw.KeyKPAdd),
		ZoomOut: down(glfw.KeyMinus, glfw.KeyKPSubtract),
		Reset:   down(glfw.KeyR),
		Exit:    down(glfw.KeyEscape, glfw.KeyQ),
	}
}

func (w *Window) Push(p nav.Params) {
	f := shader.FrameFor(p)
	gl.UseProgram(w.program)
	gl.Uniform1f(w.locZoom, f.Zoom)
	gl.Uniform2fv(w.locCenter, 1, &f.Center[0])
}

func (w *Window) Draw() {
	gl.ClearColor(w.clear[0], w.clear[1], w.clear[2], w.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	w.win.SwapBuffers()
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Close releases GL objects, the window and glfw itself. It is safe on a
// partially opened window.
func (w *Window) Close() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
		w.vao = 0
	}
	if w.program != 0 {
		gl.DeleteProgram(w.program)
		w.program = 0
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}
