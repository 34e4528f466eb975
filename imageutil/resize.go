package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func scalerFor(interp Interpolation) draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes a grid to the specified dimensions using the given
// interpolation method, returning a new grid.
func Resize(g *PixelGrid, width, height int, interp Interpolation) *PixelGrid {
	src := g.ToRGBA()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scalerFor(interp).Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return GridFromImage(dst)
}

// ResizeToWidth resizes a grid to the specified width while maintaining
// aspect ratio.
func ResizeToWidth(g *PixelGrid, width int, interp Interpolation) *PixelGrid {
	aspectRatio := float64(g.Width()) / float64(g.Height())
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return Resize(g, width, height, interp)
}
