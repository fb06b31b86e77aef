package render

import "github.com/san-kum/mandelzoom/internal/fractal"

// rowStarts returns the imaginary coordinate of every row, accumulated the
// same way a serial walk would: start at the top edge and add dy per row.
func rowStarts(vp fractal.Viewport, ph int, dy float64) []float64 {
	ims := make([]float64, ph)
	y := vp.TopLeft().Im
	for row := range ims {
		ims[row] = y
		y += dy
	}
	return ims
}

// Walk visits every pixel of a pw × ph grid over vp in row-major order.
// Points are produced by accumulating dx along each row, so they may differ
// from Viewport.Map in the last bits.
func Walk(vp fractal.Viewport, pw, ph int, fn func(row, col int, c fractal.Point)) {
	dx, dy := vp.Step(pw, ph)
	left := vp.TopLeft().Re
	for row, im := range rowStarts(vp, ph, dy) {
		walkRow(row, left, im, dx, pw, fn)
	}
}

func walkRow(row int, left, im, dx float64, pw int, fn func(row, col int, c fractal.Point)) {
	c := fractal.Point{Re: left, Im: im}
	for col := 0; col < pw; col++ {
		fn(row, col, c)
		c.Re += dx
	}
}
