package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/san-kum/mandelzoom/internal/fractal"
)

// ErrInvalidSize indicates a pixel grid with a non-positive dimension.
var ErrInvalidSize = errors.New("render: pixel grid dimensions must be positive")

// Options tunes a render pass. The zero value renders on one goroutine.
type Options struct {
	// Workers is the number of row bands rendered concurrently.
	Workers int
	// OnRow, if set, is called after each finished row with the count so far.
	// With more than one worker it is called from several goroutines.
	OnRow func(done, total int)
}

// Render colors every pixel of a pw × ph grid over vp with s.
// The context is checked between rows.
func Render(ctx context.Context, vp fractal.Viewport, pw, ph int, s fractal.Strategy, opts Options) (*Framebuffer, error) {
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, pw, ph)
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	fb := NewFramebuffer(pw, ph)
	dx, dy := vp.Step(pw, ph)
	left := vp.TopLeft().Re
	ims := rowStarts(vp, ph, dy)

	var done atomic.Int64
	var canceled atomic.Bool

	parallelFor(ph, opts.Workers, func(start, end int) {
		for row := start; row < end; row++ {
			if ctx.Err() != nil {
				canceled.Store(true)
				return
			}
			out := fb.Row(row)
			walkRow(row, left, ims[row], dx, pw, func(_, col int, c fractal.Point) {
				px := s.Color(c)
				out[col*3], out[col*3+1], out[col*3+2] = px.R, px.G, px.B
			})
			n := done.Add(1)
			if opts.OnRow != nil {
				opts.OnRow(int(n), ph)
			}
		}
	})

	if canceled.Load() {
		return nil, ctx.Err()
	}
	return fb, nil
}

// SizeFor picks a grid of about pixels pixels with the viewport's aspect ratio.
func SizeFor(pixels int, vp fractal.Viewport) (w, h int) {
	aspect := vp.Aspect()
	w = int(math.Sqrt(float64(pixels) / aspect))
	h = int(aspect * float64(w))
	return w, h
}
