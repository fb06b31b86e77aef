// Package gui is the raylib front end of the explorer. The fractal is
// drawn by a fragment shader over a fullscreen rectangle; only zoom and
// center change from frame to frame.
package gui

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/logx"
	"github.com/san-kum/mandelzoom/internal/nav"
	"github.com/san-kum/mandelzoom/internal/shader"
)

var (
	ColText    = rl.NewColor(240, 240, 240, 255)
	ColTextDim = rl.NewColor(160, 160, 160, 255)
)

// raylib feeds vertexPosition and mvp to every shader it draws with.
const vertexShader = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
void main() {
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

var ErrWindow = errors.New("gui: window init failed")

func init() {
	explore.Register("raylib", Open)
}

type App struct {
	settings explore.Settings
	shader   rl.Shader
	clear    rl.Color

	locZoom   int32
	locCenter int32

	params  nav.Params
	ShowHUD bool
}

// Open creates the window and compiles the shader. On failure everything
// created so far is released.
func Open(s explore.Settings) (explore.Frontend, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(s.Width), int32(s.Height), s.Title)
	if !rl.IsWindowReady() {
		return nil, ErrWindow
	}
	if s.TargetFPS > 0 {
		rl.SetTargetFPS(int32(s.TargetFPS))
	}
	rl.SetExitKey(0)

	a := &App{
		settings: s,
		clear:    rl.NewColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], 255),
		params:   nav.Params{Zoom: 1},
		ShowHUD:  true,
	}
	if err := a.loadShader(); err != nil {
		rl.CloseWindow()
		return nil, err
	}

	logx.Logger().Info("raylib window ready", "width", s.Width, "height", s.Height, "title", s.Title)
	return a, nil
}

func (a *App) loadShader() error {
	a.shader = rl.LoadShaderFromMemory(vertexShader, shader.Fragment)
	a.locZoom = rl.GetShaderLocation(a.shader, shader.Zoom)
	a.locCenter = rl.GetShaderLocation(a.shader, shader.Center)
	if a.locZoom < 0 || a.locCenter < 0 {
		rl.UnloadShader(a.shader)
		return fmt.Errorf("%w: mandelbrot shader did not compile", ErrWindow)
	}

	st := shader.StaticFor(a.settings)
	a.set(shader.Resolution, st.Resolution[:], rl.ShaderUniformVec2)
	a.set(shader.Extent, st.Extent[:], rl.ShaderUniformVec2)
	a.set(shader.Mode, []float32{st.Mode}, rl.ShaderUniformFloat)
	a.set(shader.Budget, []float32{st.Budget}, rl.ShaderUniformFloat)
	a.set(shader.Threshold, []float32{st.Threshold}, rl.ShaderUniformFloat)
	a.set(shader.Cutoff, []float32{st.Cutoff}, rl.ShaderUniformFloat)
	a.set(shader.From, st.From[:], rl.ShaderUniformVec3)
	a.set(shader.To, st.To[:], rl.ShaderUniformVec3)
	return nil
}

func (a *App) set(name string, v []float32, typ rl.ShaderUniformDataType) {
	rl.SetShaderValue(a.shader, rl.GetShaderLocation(a.shader, name), v, typ)
}

func (a *App) Name() string { return "raylib" }

func (a *App) Poll() nav.Keys {
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	return nav.Keys{
		Left:    rl.IsKeyDown(rl.KeyLeft),
		Right:   rl.IsKeyDown(rl.KeyRight),
		Up:      rl.IsKeyDown(rl.KeyUp),
		Down:    rl.IsKeyDown(rl.KeyDown),
		ZoomIn:  rl.IsKeyDown(rl.KeyEqual) || rl.IsKeyDown(rl.KeyKpAdd),
		ZoomOut: rl.IsKeyDown(rl.KeyMinus) || rl.IsKeyDown(rl.KeyKpSubtract),
		Reset:   rl.IsKeyPressed(rl.KeyR),
		Exit:    rl.IsKeyDown(rl.KeyEscape) || rl.IsKeyDown(rl.KeyQ),
	}
}

func (a *App) Push(p nav.Params) {
	a.params = p
	f := shader.FrameFor(p)
	rl.SetShaderValue(a.shader, a.locZoom, []float32{f.Zoom}, rl.ShaderUniformFloat)
	rl.SetShaderValue(a.shader, a.locCenter, f.Center[:], rl.ShaderUniformVec2)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.clear)

	rl.BeginShaderMode(a.shader)
	rl.DrawRectangle(0, 0, int32(a.settings.Width), int32(a.settings.Height), rl.White)
	rl.EndShaderMode()

	if a.ShowHUD {
		a.drawHUD()
	}
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	p := a.params
	rl.DrawText(fmt.Sprintf("zoom %.3g", p.Zoom), 10, 10, 16, ColText)
	rl.DrawText(fmt.Sprintf("%+.10f %+.10fi", p.Center[0], p.Center[1]), 10, 30, 14, ColText)
	rl.DrawText("[ARROWS] PAN  [+/-] ZOOM  [R] RESET  [H] HUD  [ESC] QUIT", 10, int32(a.settings.Height)-24, 12, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.settings.Width)-70, 10, 14, ColTextDim)
}

func (a *App) ShouldClose() bool { return rl.WindowShouldClose() }

func (a *App) Close() {
	rl.UnloadShader(a.shader)
	rl.CloseWindow()
}
