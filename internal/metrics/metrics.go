// Package metrics summarizes escape-time results over a pixel grid.
package metrics

import (
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/render"
)

type Metric interface {
	Name() string
	Observe(res fractal.EscapeResult)
	Value() float64
	Reset()
}

// Collect evaluates every pixel of a pw × ph grid over vp and feeds the
// results to ms. It returns the metric values keyed by name.
func Collect(vp fractal.Viewport, pw, ph, budget int, threshold float64, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	render.Walk(vp, pw, ph, func(_, _ int, c fractal.Point) {
		res := fractal.Evaluate(c, budget, threshold)
		for _, m := range ms {
			m.Observe(res)
		}
	})

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults returns the metrics the CLI reports. The histogram is also
// returned on its own so its bins can be plotted or stored.
func Defaults(budget, bins int) ([]Metric, *Histogram) {
	h := NewHistogram(budget, bins)
	return []Metric{
		NewBoundedFraction(),
		NewMeanEscape(),
		NewMaxEscape(),
		h,
	}, h
}
