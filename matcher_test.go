package asciiart

import (
	"errors"
	"math"
	"sort"
	"testing"
	"testing/quick"
)

// stubProvider serves masks with exact, test-chosen coverage fractions so
// matcher behavior can be asserted without font rendering.
type stubProvider struct {
	coverage map[rune]float64
}

func (p stubProvider) Mask(r rune) (GlyphMask, bool) {
	c, ok := p.coverage[r]
	if !ok {
		return GlyphMask{}, false
	}
	return maskWithCoverage(c), true
}

// maskWithCoverage builds a 10x10 mask whose coverage is frac (in hundredth
// steps).
func maskWithCoverage(frac float64) GlyphMask {
	m := newGlyphMask(10, 10)
	n := int(frac*100 + 0.5)
	for i := 0; i < n; i++ {
		m.setBit(i%10, i/10)
	}
	return m
}

func TestMaskWithCoverage(t *testing.T) {
	for _, frac := range []float64{0, 0.1, 0.5, 0.9, 1} {
		m := maskWithCoverage(frac)
		if got := m.Coverage(); got != frac {
			t.Errorf("maskWithCoverage(%v).Coverage() = %v", frac, got)
		}
	}
}

func TestAddIsIdempotent(t *testing.T) {
	m := NewMatcher(stubProvider{coverage: map[rune]float64{'a': 0.5}})
	if err := m.Add('a'); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.Add('a'); err != nil {
		t.Fatalf("Re-adding failed: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 member after duplicate add, got %d", m.Len())
	}
	if !m.Contains('a') {
		t.Error("Contains should report registered character")
	}
	if m.Contains('b') {
		t.Error("Contains should not report unregistered character")
	}
}

func TestAddUnknownGlyph(t *testing.T) {
	m := NewMatcher(stubProvider{coverage: map[rune]float64{}})
	if err := m.Add('x'); err == nil {
		t.Error("Expected error adding character without a glyph")
	}
	if m.Len() != 0 {
		t.Errorf("Failed add should not register, got %d members", m.Len())
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	m := NewMatcher(stubProvider{coverage: map[rune]float64{'a': 0.5}}, 'a')
	m.Remove('z')
	if m.Len() != 1 {
		t.Errorf("Removing absent character changed the set: %d members", m.Len())
	}
	m.Remove('a')
	m.Remove('a')
	if m.Len() != 0 {
		t.Errorf("Expected empty set, got %d members", m.Len())
	}
}

func TestNormalizationBounds(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{'.': 0.2, ':': 0.5, '@': 0.8}}
	m := NewMatcher(provider, '.', ':', '@')

	lo, hi, err := m.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if lo != 0 {
		t.Errorf("Dimmest member should normalize to exactly 0, got %v", lo)
	}
	if hi != 1 {
		t.Errorf("Brightest member should normalize to exactly 1, got %v", hi)
	}

	// Removing the dimmest member renormalizes the rest.
	m.Remove('.')
	lo, hi, err = m.Bounds()
	if err != nil {
		t.Fatalf("Bounds after remove failed: %v", err)
	}
	if lo != 0 || hi != 1 {
		t.Errorf("Expected bounds (0, 1) after removal, got (%v, %v)", lo, hi)
	}
}

func TestNearestExactKey(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{'.': 0.1, ':': 0.5, '@': 0.9}}
	m := NewMatcher(provider, '.', ':', '@')

	// Raw 0.5 normalizes to (0.5-0.1)/0.8 = 0.5 exactly here.
	c, err := m.Nearest(0.5)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if c != ':' {
		t.Errorf("Nearest(0.5) = %q, want ':'", c)
	}
}

func TestNearestTiePrefersFloor(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{'.': 0.0, '@': 1.0}}
	m := NewMatcher(provider, '.', '@')

	// 0.5 is equidistant from keys 0 and 1; the floor entry wins.
	c, err := m.Nearest(0.5)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if c != '.' {
		t.Errorf("Tie should prefer the floor entry, got %q", c)
	}
}

func TestNearestOutsideRange(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{'.': 0.3, '@': 0.7}}
	m := NewMatcher(provider, '.', '@')

	if c, _ := m.Nearest(-5); c != '.' {
		t.Errorf("Below-range target should match the dimmest member, got %q", c)
	}
	if c, _ := m.Nearest(5); c != '@' {
		t.Errorf("Above-range target should match the brightest member, got %q", c)
	}
}

func TestDegenerateBrightnessRange(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{'a': 0.4, 'b': 0.4, 'c': 0.4}}
	m := NewMatcher(provider, 'a', 'b', 'c')

	lo, hi, err := m.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if lo != 0 || hi != 0 {
		t.Errorf("Degenerate range should collapse to 0, got (%v, %v)", lo, hi)
	}

	c, err := m.Nearest(0.7)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	// All members share the single key; the last insertion owns it.
	if c != 'c' {
		t.Errorf("Expected last-inserted member at the shared key, got %q", c)
	}
	if got := m.Members(); len(got) != 3 {
		t.Errorf("All tied members must stay in the set, got %v", got)
	}
}

func TestCollidingKeysLastInsertedWins(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{
		'_': 0.0, 'x': 0.5, 'y': 0.5, '#': 1.0,
	}}
	m := NewMatcher(provider, '_', 'x', 'y', '#')

	c, err := m.Nearest(0.5)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if c != 'y' {
		t.Errorf("Later insertion should own the colliding key, got %q", c)
	}
	if got := m.Members(); len(got) != 4 {
		t.Errorf("Both colliding characters must stay members, got %v", got)
	}
}

func TestEmptyTableReads(t *testing.T) {
	m := NewMatcher(stubProvider{coverage: map[rune]float64{}})

	if _, err := m.Nearest(0.5); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("Nearest on empty table: got %v, want ErrEmptyCharset", err)
	}
	if _, _, err := m.Bounds(); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("Bounds on empty table: got %v, want ErrEmptyCharset", err)
	}
}

func TestMembersSortedByCodePoint(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{'z': 0.1, 'a': 0.9, 'm': 0.5}}
	m := NewMatcher(provider, 'z', 'a', 'm')

	got := m.Members()
	want := []rune{'a', 'm', 'z'}
	if len(got) != len(want) {
		t.Fatalf("Expected %d members, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Members[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestNormalizationProperty verifies, for arbitrary coverage sets, that every
// normalized key lands in [0, 1] and that two or more distinct raw values
// always produce bounds of exactly 0 and 1.
func TestNormalizationProperty(t *testing.T) {
	property := func(coverages []uint8) bool {
		if len(coverages) == 0 {
			return true
		}
		provider := stubProvider{coverage: make(map[rune]float64)}
		chars := make([]rune, 0, len(coverages))
		for i, cov := range coverages {
			c := rune('!' + i)
			provider.coverage[c] = float64(cov%101) / 100
			chars = append(chars, c)
		}
		m := NewMatcher(provider, chars...)

		lo, hi, err := m.Bounds()
		if err != nil {
			return false
		}
		if lo < 0 || hi > 1 || lo > hi {
			return false
		}

		distinct := make(map[float64]bool)
		for _, c := range chars {
			distinct[provider.coverage[c]] = true
		}
		if len(distinct) >= 2 {
			return lo == 0 && hi == 1
		}
		return lo == 0 && hi == 0
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestNearestReturnsClosestKey cross-checks the floor/ceiling search against
// a brute-force scan over the normalized keys.
func TestNearestReturnsClosestKey(t *testing.T) {
	provider := stubProvider{coverage: map[rune]float64{
		'a': 0.05, 'b': 0.25, 'c': 0.4, 'd': 0.75, 'e': 1.0,
	}}
	m := NewMatcher(provider, 'a', 'b', 'c', 'd', 'e')
	m.rebuild()

	keys := make([]float64, len(m.sorted))
	for i, e := range m.sorted {
		keys[i] = e.brightness
	}
	if !sort.Float64sAreSorted(keys) {
		t.Fatal("Normalized view must be sorted")
	}

	for target := 0.0; target <= 1.0; target += 0.01 {
		got, err := m.Nearest(target)
		if err != nil {
			t.Fatalf("Nearest(%v) failed: %v", target, err)
		}
		best := math.MaxFloat64
		for _, k := range keys {
			if d := math.Abs(k - target); d < best {
				best = d
			}
		}
		var gotKey float64
		for _, e := range m.sorted {
			if e.char == got {
				gotKey = e.brightness
			}
		}
		if math.Abs(gotKey-target) > best+1e-12 {
			t.Errorf("Nearest(%v) = %q (key %v), but a closer key exists (distance %v)",
				target, got, gotKey, best)
		}
	}
}
