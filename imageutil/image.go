// Package imageutil provides the pixel-level plumbing for the ASCII art
// pipeline: an immutable RGB pixel grid, image decoding, and pre-scaling.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// White is the fill color used when padding images.
var White = RGB{R: 255, G: 255, B: 255}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// PixelGrid is an immutable two-dimensional grid of RGB samples. It is the
// only type the conversion pipeline reads pixels from. Grids never alias:
// every constructor and SubGrid copies its source pixels, so a grid cannot
// change after construction.
type PixelGrid struct {
	w, h int
	pix  []RGB // row-major, len == w*h
}

// NewUniformGrid creates a width x height grid filled with a single color.
func NewUniformGrid(width, height int, c RGB) *PixelGrid {
	pix := make([]RGB, width*height)
	for i := range pix {
		pix[i] = c
	}
	return &PixelGrid{w: width, h: height, pix: pix}
}

// NewGridFromFunc creates a width x height grid by evaluating f at every
// coordinate.
func NewGridFromFunc(width, height int, f func(x, y int) RGB) *PixelGrid {
	pix := make([]RGB, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = f(x, y)
		}
	}
	return &PixelGrid{w: width, h: height, pix: pix}
}

// GridFromImage converts any image.Image to a PixelGrid, discarding alpha.
func GridFromImage(img image.Image) *PixelGrid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]RGB, w*h)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pix[(y-bounds.Min.Y)*w+(x-bounds.Min.X)] = RGBFromColor(img.At(x, y))
		}
	}
	return &PixelGrid{w: w, h: h, pix: pix}
}

// Width returns the grid width in pixels.
func (g *PixelGrid) Width() int {
	return g.w
}

// Height returns the grid height in pixels.
func (g *PixelGrid) Height() int {
	return g.h
}

// At returns the RGB sample at (x, y). Coordinates outside the grid panic,
// matching slice indexing semantics.
func (g *PixelGrid) At(x, y int) RGB {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		panic("imageutil: PixelGrid coordinates out of range")
	}
	return g.pix[y*g.w+x]
}

// SubGrid returns a new width x height grid copied from this grid starting
// at (x0, y0). The result does not alias the parent.
func (g *PixelGrid) SubGrid(x0, y0, width, height int) *PixelGrid {
	pix := make([]RGB, width*height)
	for y := 0; y < height; y++ {
		copy(pix[y*width:(y+1)*width], g.pix[(y0+y)*g.w+x0:(y0+y)*g.w+x0+width])
	}
	return &PixelGrid{w: width, h: height, pix: pix}
}

// ToRGBA renders the grid into a freshly allocated image.RGBA.
func (g *PixelGrid) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.w, g.h))
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			img.SetRGBA(x, y, g.pix[y*g.w+x].ToColor())
		}
	}
	return img
}
