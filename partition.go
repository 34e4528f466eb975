// Package asciiart converts raster images into matrices of printable
// characters whose visual density approximates the local brightness of the
// image. The pipeline pads an image to power-of-two dimensions, splits it
// into a grid of square blocks, reduces each block to a normalized grayscale
// brightness, and matches that brightness against a caller-maintained
// character set.
package asciiart

import (
	"github.com/jmarren/asciiart/imageutil"
)

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PadToPowerOfTwo pads a grid so that its width and height become powers of
// two. If both dimensions already are, the input grid is returned unchanged
// with no copy. Otherwise a new grid is allocated, filled with white, and the
// original content is copied centered inside it, offset by
// floor((newDim-oldDim)/2) on each axis. Padding never shrinks or crops.
func PadToPowerOfTwo(g *imageutil.PixelGrid) *imageutil.PixelGrid {
	width, height := g.Width(), g.Height()

	newWidth := nextPowerOfTwo(width)
	newHeight := nextPowerOfTwo(height)

	if newWidth == width && newHeight == height {
		return g
	}

	xOffset := (newWidth - width) / 2
	yOffset := (newHeight - height) / 2

	return imageutil.NewGridFromFunc(newWidth, newHeight, func(x, y int) imageutil.RGB {
		sx, sy := x-xOffset, y-yOffset
		if sx < 0 || sx >= width || sy < 0 || sy >= height {
			return imageutil.White
		}
		return g.At(sx, sy)
	})
}

// SubImages splits a grid into square blocks: resolution columns, each block
// width/resolution pixels on a side, and height/blockSide rows. Trailing
// pixels beyond the covered region are silently dropped; callers wanting full
// coverage must pass a resolution that evenly divides the padded width.
// Each block is an independent copy of its region.
func SubImages(g *imageutil.PixelGrid, resolution int) [][]*imageutil.PixelGrid {
	blockSide := g.Width() / resolution
	rows := g.Height() / blockSide

	subs := make([][]*imageutil.PixelGrid, rows)
	for row := 0; row < rows; row++ {
		subs[row] = make([]*imageutil.PixelGrid, resolution)
		for col := 0; col < resolution; col++ {
			subs[row][col] = g.SubGrid(col*blockSide, row*blockSide, blockSide, blockSide)
		}
	}
	return subs
}
