// Package fractal provides the escape-time core for rendering the Mandelbrot set.
//
// The package defines the value types and pure functions shared by every
// renderer in the module:
//
//   - [Point]: a point on the complex plane
//   - [Viewport]: the rectangle of the plane mapped onto a pixel grid
//   - [Gradient]: two-color linear interpolation into 8-bit RGB
//   - [Evaluate]: escape-time iteration of z = z² + c
//   - [Strategy]: coloring capability with [Iterative] and [RadialFlat] variants
//
// # Example
//
//	vp, _ := fractal.NewViewport(fractal.Point{Re: -0.6}, 3.0, 2.35)
//	s, _ := fractal.NewStrategy(fractal.DefaultConfig())
//	col := s.Color(vp.Map(0, 0, 640, 480))
//
// # Thread Safety
//
// All types are immutable values; strategies may be shared between goroutines.
package fractal
