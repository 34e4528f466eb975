package asciiart

import (
	"fmt"
	"image"
	"math/bits"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GlyphMask is a fixed-size boolean coverage mask for one character. Each bit
// represents a pixel of the rendered glyph: 1 = covered, 0 = background. All
// masks produced by one provider share the same dimensions.
type GlyphMask struct {
	width, height int
	words         []uint64
}

// newGlyphMask creates an empty width x height mask.
func newGlyphMask(width, height int) GlyphMask {
	return GlyphMask{
		width:  width,
		height: height,
		words:  make([]uint64, (width*height+63)/64),
	}
}

// Width returns the mask width in cells.
func (m GlyphMask) Width() int { return m.width }

// Height returns the mask height in cells.
func (m GlyphMask) Height() int { return m.height }

// getBit reports whether the cell at (x, y) is covered.
func (m GlyphMask) getBit(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	pos := y*m.width + x
	return m.words[pos/64]&(1<<(pos%64)) != 0
}

// setBit marks the cell at (x, y) as covered.
func (m GlyphMask) setBit(x, y int) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	pos := y*m.width + x
	m.words[pos/64] |= 1 << (pos % 64)
}

// OnCount returns the number of covered cells.
func (m GlyphMask) OnCount() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Coverage returns the fraction of covered cells in [0, 1]. This is the raw
// brightness of the character the mask was rendered from.
func (m GlyphMask) Coverage() float64 {
	return float64(m.OnCount()) / float64(m.width*m.height)
}

// MaskProvider produces a coverage mask for a requested character. The
// returned bool is false when the provider has no glyph for the rune.
type MaskProvider interface {
	Mask(r rune) (GlyphMask, bool)
}

// FaceMasks renders glyph masks from any font.Face, caching each rendered
// mask. The cell size is derived from the face metrics, so every mask from
// one FaceMasks has identical dimensions.
type FaceMasks struct {
	face   font.Face
	width  int
	height int
	ascent int
	masks  map[rune]GlyphMask
}

// NewFaceMasks creates a mask provider backed by the given font face.
func NewFaceMasks(face font.Face) *FaceMasks {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	// Monospace cell width from a reference glyph advance.
	width := height / 2
	if advance, ok := face.GlyphAdvance('M'); ok {
		width = advance.Ceil()
	}

	return &FaceMasks{
		face:   face,
		width:  width,
		height: height,
		ascent: ascent,
		masks:  make(map[rune]GlyphMask),
	}
}

// NewDefaultMasks creates a mask provider backed by the embedded 7x13
// basicfont face. It needs no font files and covers printable ASCII.
func NewDefaultMasks() *FaceMasks {
	return NewFaceMasks(basicfont.Face7x13)
}

// Mask returns the coverage mask for r, rendering and caching it on first
// use.
func (fm *FaceMasks) Mask(r rune) (GlyphMask, bool) {
	if mask, ok := fm.masks[r]; ok {
		return mask, true
	}
	if _, ok := fm.face.GlyphAdvance(r); !ok {
		return GlyphMask{}, false
	}

	mask := fm.render(r)
	fm.masks[r] = mask
	return mask, true
}

// render draws a single glyph onto an alpha image and thresholds it into a
// mask. The 25% alpha threshold (64/255) preserves anti-aliased edge pixels
// that a 50% threshold would lose, keeping thin strokes and serifs visible.
func (fm *FaceMasks) render(r rune) GlyphMask {
	img := image.NewAlpha(image.Rect(0, 0, fm.width, fm.height))

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: fm.face,
		Dot:  fixed.P(0, fm.ascent),
	}
	d.DrawString(string(r))

	mask := newGlyphMask(fm.width, fm.height)
	for y := 0; y < fm.height; y++ {
		for x := 0; x < fm.width; x++ {
			if img.AlphaAt(x, y).A > 64 {
				mask.setBit(x, y)
			}
		}
	}
	return mask
}

// LoadTTFMasks loads a TrueType font from a file and returns a mask provider
// rendering it at the given point size (72 DPI, full hinting). A size of 8
// works well for fonts designed for terminal use.
func LoadTTFMasks(path string, size float64) (*FaceMasks, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return NewFaceMasks(face), nil
}
