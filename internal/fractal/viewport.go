package fractal

// Viewport is a rectangle of the complex plane given by its center and extent
// in plane units.
type Viewport struct {
	Center        Point
	Width, Height float64
}

// Region is a viewport given by its bounds, as landmark tables usually list them.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// NewViewport returns a viewport centered on center. Width and height must be positive.
func NewViewport(center Point, width, height float64) (Viewport, error) {
	vp := Viewport{Center: center, Width: width, Height: height}
	if err := vp.Validate(); err != nil {
		return Viewport{}, err
	}
	return vp, nil
}

// FromTopLeft builds the viewport whose top-left corner (minimum real,
// maximum imaginary) is topLeft.
func FromTopLeft(topLeft Point, width, height float64) (Viewport, error) {
	center := topLeft.Add(Point{width / 2, -height / 2})
	return NewViewport(center, width, height)
}

// FromRegion converts bounds into a viewport.
func FromRegion(r Region) (Viewport, error) {
	center := Point{(r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2}
	return NewViewport(center, r.Xmax-r.Xmin, r.Ymax-r.Ymin)
}

func (v Viewport) Validate() error {
	// written so NaN fails too
	if !(v.Width > 0) || !(v.Height > 0) {
		return ErrInvalidViewport
	}
	return nil
}

// TopLeft is the plane point of pixel (0, 0).
func (v Viewport) TopLeft() Point {
	return v.Center.Add(Point{-v.Width / 2, v.Height / 2})
}

// Step returns the per-pixel increments for a pw × ph grid. dy is negative:
// rows grow downward while the imaginary axis grows upward.
func (v Viewport) Step(pw, ph int) (dx, dy float64) {
	return v.Width / float64(pw), -v.Height / float64(ph)
}

// Map returns the plane point of pixel (row, col) on a pw × ph grid.
func (v Viewport) Map(row, col, pw, ph int) Point {
	dx, dy := v.Step(pw, ph)
	return v.TopLeft().Add(Point{float64(col) * dx, float64(row) * dy})
}

// Aspect is height over width.
func (v Viewport) Aspect() float64 {
	return v.Height / v.Width
}

// Zoomed returns a viewport centered on center whose extent is v's divided by zoom.
func (v Viewport) Zoomed(center Point, zoom float64) Viewport {
	return Viewport{Center: center, Width: v.Width / zoom, Height: v.Height / zoom}
}
