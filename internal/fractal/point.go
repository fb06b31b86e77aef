package fractal

import "fmt"

// Point is a point on the complex plane in double precision.
type Point struct {
	Re, Im float64
}

func (p Point) Add(q Point) Point {
	return Point{p.Re + q.Re, p.Im + q.Im}
}

// Square returns p² = (re² − im², 2·re·im).
func (p Point) Square() Point {
	x, y := p.Re, p.Im
	return Point{x*x - y*y, 2 * x * y}
}

// Radius2 returns |p|².
func (p Point) Radius2() float64 {
	return p.Re*p.Re + p.Im*p.Im
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Re, p.Im)
}
