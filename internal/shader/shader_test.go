package shader

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/mandelzoom/internal/explore"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/nav"
)

func TestFragmentDeclaresUniforms(t *testing.T) {
	for _, name := range []string{Resolution, Extent, Zoom, Center, Mode, Budget, Threshold, Cutoff, From, To} {
		if !strings.Contains(Fragment, " "+name+";") {
			t.Errorf("fragment shader has no uniform %q", name)
		}
	}
	if !strings.HasPrefix(Vertex, "#version 330") {
		t.Error("vertex shader missing version line")
	}
}

func TestStaticFor(t *testing.T) {
	s := explore.Settings{
		Width: 640, Height: 480,
		BaseWidth: 3, BaseHeight: 2.35,
		Mode:   fractal.ModeRadialFlat,
		Budget: 200, Threshold: 4, Cutoff: 2.5,
		From: [3]float64{0.4, 0, 0},
		To:   [3]float64{1, 1, 0},
	}
	st := StaticFor(s)

	if st.Resolution != (mgl32.Vec2{640, 480}) {
		t.Errorf("unexpected resolution %v", st.Resolution)
	}
	if st.Budget != 200 || st.Threshold != 4 {
		t.Errorf("unexpected budget/threshold %v/%v", st.Budget, st.Threshold)
	}
	if st.To != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("unexpected to color %v", st.To)
	}
	if st.Mode != ModeRadial || st.Cutoff != 2.5 {
		t.Errorf("unexpected mode/cutoff %v/%v", st.Mode, st.Cutoff)
	}

	s.Mode = fractal.ModeIterative
	if st := StaticFor(s); st.Mode != ModeIterative {
		t.Errorf("expected iterative mode uniform, got %v", st.Mode)
	}
}

// fragPoint mirrors the fragment shader's pixel mapping. x and y are
// gl_FragCoord, which counts rows from the bottom and sits at pixel centers.
func fragPoint(st Static, f Frame, x, y float32) mgl32.Vec2 {
	col := float32(math.Floor(float64(x)))
	row := st.Resolution[1] - 1 - float32(math.Floor(float64(y)))
	size := st.Extent.Mul(1 / f.Zoom)
	topLeft := f.Center.Add(mgl32.Vec2{-size[0], size[1]}.Mul(0.5))
	delta := mgl32.Vec2{size[0] / st.Resolution[0], -size[1] / st.Resolution[1]}
	return topLeft.Add(mgl32.Vec2{col * delta[0], row * delta[1]})
}

// A fragment samples the top-left corner of its pixel, as the CPU walk does.
func TestFragmentMatchesCPUMapping(t *testing.T) {
	if !strings.Contains(Fragment, "floor(gl_FragCoord.xy)") {
		t.Fatal("fragment shader does not snap to pixel corners")
	}

	const pw, ph = 64, 48
	st := StaticFor(explore.Settings{Width: pw, Height: ph, BaseWidth: 3, BaseHeight: 2})
	nv := nav.New(fractal.Point{Re: -0.5, Im: 0.25}, nav.DefaultConfig())
	for i := 0; i < 20; i++ {
		nv.Step(nav.Keys{ZoomIn: true})
	}
	f := FrameFor(nv.Params())
	vp := nv.Viewport(3, 2)
	dx, _ := vp.Step(pw, ph)

	for _, px := range [][2]int{{0, 0}, {0, pw - 1}, {ph - 1, 0}, {ph / 2, pw / 2}, {ph - 1, pw - 1}} {
		row, col := px[0], px[1]
		got := fragPoint(st, f, float32(col)+0.5, float32(ph-1-row)+0.5)
		want := vp.Map(row, col, pw, ph)
		tol := dx * 1e-2
		if math.Abs(float64(got[0])-want.Re) > tol || math.Abs(float64(got[1])-want.Im) > tol {
			t.Errorf("pixel (%d,%d): shader %v, cpu %v", row, col, got, want)
		}
	}
}

// The shader's visible extent, extent/zoom, must match the CPU viewport.
func TestFrameMatchesViewport(t *testing.T) {
	st := nav.New(fractal.Point{Re: -0.5, Im: 0.25}, nav.DefaultConfig())
	for i := 0; i < 100; i++ {
		st.Step(nav.Keys{ZoomIn: true, Left: true})
	}

	f := FrameFor(st.Params())
	vp := st.Viewport(3, 2)

	if !mgl32.FloatEqualThreshold(3/f.Zoom, float32(vp.Width), 1e-5) {
		t.Errorf("width: shader %v, cpu %v", 3/f.Zoom, vp.Width)
	}
	if !mgl32.FloatEqualThreshold(f.Center[0], float32(vp.Center.Re), 1e-6) ||
		!mgl32.FloatEqualThreshold(f.Center[1], float32(vp.Center.Im), 1e-6) {
		t.Errorf("center: shader %v, cpu %v", f.Center, vp.Center)
	}
}

func TestClearColor(t *testing.T) {
	c := ClearColor([3]uint8{255, 0, 51})
	if c != (mgl32.Vec4{1, 0, 0.2, 1}) {
		t.Errorf("unexpected clear color %v", c)
	}
}
