package asciiart

import (
	"github.com/jmarren/asciiart/imageutil"
)

// Perceptual luma weights (ITU-R BT.709). These must stay exact: the
// character matching tests depend on numeric parity across runs.
const (
	redLuma   = 0.2126
	greenLuma = 0.7152
	blueLuma  = 0.0722

	maxChannel = 255.0
)

// Brightness reduces a grid to a single normalized grayscale value in [0, 1].
// Each pixel contributes its weighted luma; the sum is averaged over all
// pixels and divided by 255. Pure and deterministic for a given grid.
func Brightness(g *imageutil.PixelGrid) float64 {
	width, height := g.Width(), g.Height()

	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := g.At(x, y)
			sum += float64(c.R)*redLuma + float64(c.G)*greenLuma + float64(c.B)*blueLuma
		}
	}
	avg := sum / float64(width*height)
	return avg / maxChannel
}
