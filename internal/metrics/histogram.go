package metrics

import "github.com/san-kum/mandelzoom/internal/fractal"

// Histogram buckets escape iterations in [0, budget) into equal-width bins.
// Bounded points are counted separately.
type Histogram struct {
	budget  int
	bins    []int
	bounded int
}

func NewHistogram(budget, bins int) *Histogram {
	if bins > budget {
		bins = budget
	}
	if bins < 1 {
		bins = 1
	}
	return &Histogram{budget: budget, bins: make([]int, bins)}
}

func (h *Histogram) Name() string { return "histogram_peak_bin" }

func (h *Histogram) Observe(res fractal.EscapeResult) {
	if !res.Escaped {
		h.bounded++
		return
	}
	i := res.Iteration * len(h.bins) / h.budget
	if i >= len(h.bins) {
		i = len(h.bins) - 1
	}
	h.bins[i]++
}

// Value is the index of the fullest bin.
func (h *Histogram) Value() float64 {
	peak := 0
	for i, n := range h.bins {
		if n > h.bins[peak] {
			peak = i
		}
	}
	return float64(peak)
}

func (h *Histogram) Reset() {
	for i := range h.bins {
		h.bins[i] = 0
	}
	h.bounded = 0
}

// Counts returns a copy of the bin counts as floats, ready for plotting.
func (h *Histogram) Counts() []float64 {
	out := make([]float64, len(h.bins))
	for i, n := range h.bins {
		out[i] = float64(n)
	}
	return out
}

func (h *Histogram) Bounded() int { return h.bounded }

// BinWidth is the number of iterations covered by one bin.
func (h *Histogram) BinWidth() float64 {
	return float64(h.budget) / float64(len(h.bins))
}
