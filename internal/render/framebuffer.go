package render

import (
	"image"
	"image/color"
)

// Framebuffer is a dense row-major grid of 8-bit RGB pixels.
type Framebuffer struct {
	Width, Height int
	Pix           []uint8
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{Width: w, Height: h, Pix: make([]uint8, w*h*3)}
}

func (fb *Framebuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 3
}

func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	i := fb.offset(x, y)
	fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2] = c.R, c.G, c.B
}

func (fb *Framebuffer) RGBAAt(x, y int) color.RGBA {
	i := fb.offset(x, y)
	return color.RGBA{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], 255}
}

// Row returns the bytes of row y.
func (fb *Framebuffer) Row(y int) []uint8 {
	stride := fb.Width * 3
	return fb.Pix[y*stride : (y+1)*stride]
}

// image.Image, so the standard encoders can consume a framebuffer directly.

func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	return fb.RGBAAt(x, y)
}
