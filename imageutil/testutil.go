package imageutil

// CreateGradientImage creates a horizontal grayscale gradient test grid.
func CreateGradientImage(width, height int) *PixelGrid {
	return NewGridFromFunc(width, height, func(x, y int) RGB {
		v := uint8(255 * x / (width - 1))
		return RGB{R: v, G: v, B: v}
	})
}

// CreateCheckerboardImage creates a black and white checkerboard pattern.
func CreateCheckerboardImage(width, height, squareSize int) *PixelGrid {
	return NewGridFromFunc(width, height, func(x, y int) RGB {
		if ((x/squareSize)+(y/squareSize))%2 == 0 {
			return White
		}
		return RGB{}
	})
}

// CreateSolidImage creates a solid color grid.
func CreateSolidImage(width, height int, c RGB) *PixelGrid {
	return NewUniformGrid(width, height, c)
}
