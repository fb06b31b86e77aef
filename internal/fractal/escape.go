package fractal

import "fmt"

const (
	DefaultBudget    = 200
	DefaultThreshold = 4.0
)

// EscapeResult is the outcome of iterating one point: either the orbit
// escaped at Iteration, or it stayed bounded for the whole budget.
type EscapeResult struct {
	Escaped   bool
	Iteration int
}

func Escaped(i int) EscapeResult { return EscapeResult{Escaped: true, Iteration: i} }

func Bounded() EscapeResult { return EscapeResult{} }

func (r EscapeResult) String() string {
	if !r.Escaped {
		return "Bounded"
	}
	return fmt.Sprintf("Escaped(%d)", r.Iteration)
}

// Evaluate iterates z₀ = c, zᵢ₊₁ = zᵢ² + c and returns Escaped(i) for the
// smallest i in [0, budget) with |zᵢ₊₁|² > threshold, else Bounded.
func Evaluate(c Point, budget int, threshold float64) EscapeResult {
	z := c
	for i := 0; i < budget; i++ {
		z = z.Square().Add(c)
		if z.Radius2() > threshold {
			return Escaped(i)
		}
	}
	return Bounded()
}
