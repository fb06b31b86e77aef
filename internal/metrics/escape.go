package metrics

import "github.com/san-kum/mandelzoom/internal/fractal"

type BoundedFraction struct {
	bounded int
	samples int
}

func NewBoundedFraction() *BoundedFraction {
	return &BoundedFraction{}
}

func (b *BoundedFraction) Name() string { return "bounded_fraction" }

func (b *BoundedFraction) Observe(res fractal.EscapeResult) {
	b.samples++
	if !res.Escaped {
		b.bounded++
	}
}

func (b *BoundedFraction) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.bounded) / float64(b.samples)
}

func (b *BoundedFraction) Reset() {
	b.bounded = 0
	b.samples = 0
}

// MeanEscape averages the escape iteration over escaped points only.
type MeanEscape struct {
	sum     int
	escaped int
}

func NewMeanEscape() *MeanEscape {
	return &MeanEscape{}
}

func (m *MeanEscape) Name() string { return "mean_escape" }

func (m *MeanEscape) Observe(res fractal.EscapeResult) {
	if res.Escaped {
		m.sum += res.Iteration
		m.escaped++
	}
}

func (m *MeanEscape) Value() float64 {
	if m.escaped == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.escaped)
}

func (m *MeanEscape) Reset() {
	m.sum = 0
	m.escaped = 0
}

type MaxEscape struct {
	max int
}

func NewMaxEscape() *MaxEscape {
	return &MaxEscape{}
}

func (m *MaxEscape) Name() string { return "max_escape" }

func (m *MaxEscape) Observe(res fractal.EscapeResult) {
	if res.Escaped && res.Iteration > m.max {
		m.max = res.Iteration
	}
}

func (m *MaxEscape) Value() float64 { return float64(m.max) }

func (m *MaxEscape) Reset() { m.max = 0 }
