package fractal

import "image/color"

// RGB is a color with channels as fractions in [0, 1].
type RGB struct {
	R, G, B float64
}

var Black = color.RGBA{A: 255}

// Gradient linearly blends From into To.
type Gradient struct {
	From, To RGB
}

// At returns From·(1−alpha) + To·alpha scaled to 8 bits. Channels are
// truncated, not rounded, so output matches integer-cast renderers bit for bit.
func (g Gradient) At(alpha float64) color.RGBA {
	return color.RGBA{
		R: channel(g.From.R, g.To.R, alpha),
		G: channel(g.From.G, g.To.G, alpha),
		B: channel(g.From.B, g.To.B, alpha),
		A: 255,
	}
}

func channel(c0, c1, alpha float64) uint8 {
	v := 255 * (c0*(1.0-alpha) + c1*alpha)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
