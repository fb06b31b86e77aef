package nav_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/nav"
)

var _ = Describe("State", func() {
	var s *nav.State

	BeforeEach(func() {
		s = nav.New(fractal.Point{Re: -0.6}, nav.DefaultConfig())
	})

	It("starts at zoom 1 on the given center", func() {
		Expect(s.Zoom).To(Equal(1.0))
		Expect(s.Center()).To(Equal(fractal.Point{Re: -0.6}))
	})

	Describe("zooming", func() {
		It("reaches 1.01^k after k zoom-in frames", func() {
			for _, k := range []int{1, 10, 100, 500} {
				s = nav.New(fractal.Point{}, nav.DefaultConfig())
				for i := 0; i < k; i++ {
					s.Step(nav.Keys{ZoomIn: true})
				}
				Expect(s.Zoom).To(BeNumerically("~", math.Pow(1.01, float64(k)), 1e-9*math.Pow(1.01, float64(k))))
			}
		})

		It("undoes a zoom-in with a zoom-out", func() {
			s.Step(nav.Keys{ZoomIn: true})
			s.Step(nav.Keys{ZoomOut: true})
			Expect(s.Zoom).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("never zooms out past the minimum", func() {
			for i := 0; i < 10000; i++ {
				s.Step(nav.Keys{ZoomOut: true})
			}
			Expect(s.Zoom).To(Equal(nav.DefaultMinZoom))
		})

		It("never zooms in past the maximum", func() {
			cfg := nav.DefaultConfig()
			cfg.MaxZoom = 2
			s = nav.New(fractal.Point{}, cfg)
			for i := 0; i < 1000; i++ {
				s.Step(nav.Keys{ZoomIn: true})
			}
			Expect(s.Zoom).To(Equal(2.0))
		})
	})

	Describe("panning", func() {
		It("moves right by exactly move_speed / zoom", func() {
			s.Zoom = 4
			before := s.CenterX
			s.Step(nav.Keys{Right: true})
			Expect(s.CenterX).To(Equal(before + nav.DefaultMoveSpeed/4))
		})

		It("moves up along the positive imaginary axis", func() {
			s.Step(nav.Keys{Up: true})
			Expect(s.CenterY).To(Equal(nav.DefaultMoveSpeed))
			s.Step(nav.Keys{Down: true, Left: true})
			Expect(s.CenterY).To(Equal(0.0))
			Expect(s.CenterX).To(BeNumerically("<", -0.6))
		})

		It("cancels opposite keys held together", func() {
			s.Step(nav.Keys{Left: true, Right: true})
			Expect(s.CenterX).To(BeNumerically("~", -0.6, 1e-15))
		})

		It("pans with the zoom from before this frame's zoom change", func() {
			s.Step(nav.Keys{Right: true, ZoomIn: true})
			Expect(s.CenterX).To(Equal(-0.6 + nav.DefaultMoveSpeed))
			Expect(s.Zoom).To(Equal(1.01))
		})
	})

	It("restores the initial state on reset", func() {
		s.Step(nav.Keys{Right: true, ZoomIn: true})
		s.Step(nav.Keys{Reset: true})
		Expect(s.Params()).To(Equal(nav.Params{Zoom: 1, Center: [2]float64{-0.6, 0}}))
	})

	It("leaves the state alone when no key is held", func() {
		before := s.Params()
		s.Step(nav.Keys{})
		Expect(s.Params()).To(Equal(before))
		Expect(nav.Keys{}.Any()).To(BeFalse())
		Expect(nav.Keys{Exit: true}.Any()).To(BeTrue())
	})

	It("derives the viewport as base extent over zoom", func() {
		s.Zoom = 2
		vp := s.Viewport(3.0, 2.0)
		Expect(vp.Width).To(Equal(1.5))
		Expect(vp.Height).To(Equal(1.0))
		Expect(vp.Center).To(Equal(s.Center()))
	})

	It("repairs an unusable configuration", func() {
		s = nav.New(fractal.Point{}, nav.Config{MoveSpeed: 0.1})
		cfg := s.Config()
		Expect(cfg.ZoomFactor).To(Equal(nav.DefaultZoomFactor))
		Expect(cfg.MinZoom).To(Equal(nav.DefaultMinZoom))
		Expect(cfg.MaxZoom).To(Equal(nav.DefaultMaxZoom))
	})
})
