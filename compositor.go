package asciiart

import (
	"fmt"

	"github.com/jmarren/asciiart/imageutil"
)

// Compositor orchestrates one image's conversion runs. It binds an image and
// a matcher at construction and memoizes the expensive image-derived stages:
// the padded grid is computed at most once per compositor, and the block grid
// and brightness matrix at most once per resolution. Changing the resolution
// between runs invalidates the block-level caches; mutating the matcher never
// does, since only the final character lookup depends on live table state.
type Compositor struct {
	img     *imageutil.PixelGrid
	matcher *Matcher

	padded *imageutil.PixelGrid

	// Block-level caches, valid only for cachedResolution.
	cachedResolution int
	blocks           [][]*imageutil.PixelGrid
	brightness       [][]float64
}

// NewCompositor creates a Compositor for the given image and matcher.
// Zero-area images are a caller contract violation and fail loudly.
func NewCompositor(img *imageutil.PixelGrid, matcher *Matcher) (*Compositor, error) {
	if img.Width() <= 0 || img.Height() <= 0 {
		return nil, fmt.Errorf("asciiart: zero-area image (%dx%d)", img.Width(), img.Height())
	}
	return &Compositor{img: img, matcher: matcher}, nil
}

// Padded returns the power-of-two padded grid, computing it on first use.
func (c *Compositor) Padded() *imageutil.PixelGrid {
	if c.padded == nil {
		c.padded = PadToPowerOfTwo(c.img)
	}
	return c.padded
}

// brightnessMatrix returns the per-block brightness matrix for the given
// resolution, recomputing the partition and reduction only when the
// resolution differs from the cached one.
func (c *Compositor) brightnessMatrix(resolution int) [][]float64 {
	if c.brightness != nil && resolution == c.cachedResolution {
		return c.brightness
	}

	c.blocks = SubImages(c.Padded(), resolution)
	c.brightness = make([][]float64, len(c.blocks))
	for row := range c.blocks {
		c.brightness[row] = make([]float64, len(c.blocks[row]))
		for col, block := range c.blocks[row] {
			c.brightness[row][col] = Brightness(block)
		}
	}
	c.cachedResolution = resolution
	return c.brightness
}

// Run produces the character matrix for the given resolution. When reverse
// is set, each block brightness b becomes 1-b and is clamped into the
// matcher's normalized bounds before lookup, so out-of-range values match
// the dimmest or brightest character rather than extrapolating. Repeated
// calls with unchanged inputs return identical matrices.
func (c *Compositor) Run(resolution int, reverse bool) ([][]rune, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("asciiart: resolution must be positive, got %d", resolution)
	}

	matrix := c.brightnessMatrix(resolution)

	result := make([][]rune, len(matrix))
	for row := range matrix {
		result[row] = make([]rune, len(matrix[row]))
		for col, brightness := range matrix[row] {
			if reverse {
				reversed := 1.0 - brightness

				lo, hi, err := c.matcher.Bounds()
				if err != nil {
					return nil, err
				}
				if reversed < lo {
					reversed = lo
				} else if reversed > hi {
					reversed = hi
				}
				brightness = reversed
			}

			char, err := c.matcher.Nearest(brightness)
			if err != nil {
				return nil, err
			}
			result[row][col] = char
		}
	}
	return result, nil
}
