package asciiart

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyCharset is returned by reads that need at least one registered
// character.
var ErrEmptyCharset = errors.New("asciiart: no characters registered")

// tableState tracks whether the normalized brightness view is current.
// Any mutation moves the table to tableDirty; only rebuild moves it back.
type tableState int

const (
	tableClean tableState = iota
	tableDirty
)

// brightnessEntry pairs a normalized brightness key with its character in
// the rebuilt sorted view.
type brightnessEntry struct {
	brightness float64
	char       rune
}

// Matcher owns the active character set. Each character's raw brightness
// (the coverage fraction of its glyph mask) is computed once on insertion
// and cached for as long as the character stays in the set. The normalized,
// sorted brightness-to-character view is rebuilt lazily: mutations mark the
// table dirty, and the next read rebuilds it into a fresh slice.
//
// Characters are tracked in insertion order. When two characters normalize
// to the same exact brightness key, the later insertion wins the lookup slot
// for that key while both remain members.
type Matcher struct {
	provider MaskProvider
	raw      map[rune]float64
	order    []rune // insertion order, parallel membership to raw
	sorted   []brightnessEntry
	state    tableState
}

// NewMatcher creates a Matcher that computes raw brightness with the given
// mask provider and registers the initial charset. Characters the provider
// has no glyph for are skipped.
func NewMatcher(provider MaskProvider, charset ...rune) *Matcher {
	m := &Matcher{
		provider: provider,
		raw:      make(map[rune]float64),
		state:    tableDirty,
	}
	for _, c := range charset {
		m.Add(c)
	}
	return m
}

// Add registers a character, computing and caching its raw brightness from
// its glyph mask. Adding a character that is already present is a no-op, not
// an error. Returns an error only when the provider has no glyph for c.
func (m *Matcher) Add(c rune) error {
	if _, ok := m.raw[c]; ok {
		return nil
	}

	mask, ok := m.provider.Mask(c)
	if !ok {
		return fmt.Errorf("asciiart: no glyph for %q", c)
	}
	m.raw[c] = mask.Coverage()
	m.order = append(m.order, c)
	m.state = tableDirty
	return nil
}

// Remove deletes a character from the set. Removing a character that is not
// present is a no-op, never an error.
func (m *Matcher) Remove(c rune) {
	if _, ok := m.raw[c]; !ok {
		return
	}
	delete(m.raw, c)
	for i, r := range m.order {
		if r == c {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.state = tableDirty
}

// Contains reports whether c is in the active set.
func (m *Matcher) Contains(c rune) bool {
	_, ok := m.raw[c]
	return ok
}

// Len returns the number of registered characters.
func (m *Matcher) Len() int {
	return len(m.raw)
}

// Members returns all registered characters ordered by code point ascending.
// It reads only the raw set and never triggers a rebuild.
func (m *Matcher) Members() []rune {
	chars := make([]rune, 0, len(m.raw))
	for c := range m.raw {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

// rebuild recomputes the normalized sorted view from the raw set and marks
// the table clean. Normalization rescales so the dimmest member maps to
// exactly 0 and the brightest to exactly 1. When all members share one raw
// brightness the range is degenerate and every member maps to 0 instead of
// dividing by zero.
func (m *Matcher) rebuild() {
	if len(m.raw) == 0 {
		m.sorted = nil
		m.state = tableClean
		return
	}

	lo, hi := m.raw[m.order[0]], m.raw[m.order[0]]
	for _, c := range m.order {
		raw := m.raw[c]
		if raw < lo {
			lo = raw
		}
		if raw > hi {
			hi = raw
		}
	}

	// Insertion order makes the later of two colliding characters win the
	// slot for their shared normalized key.
	byKey := make(map[float64]rune, len(m.order))
	for _, c := range m.order {
		norm := 0.0
		if hi > lo {
			norm = (m.raw[c] - lo) / (hi - lo)
		}
		byKey[norm] = c
	}

	m.sorted = make([]brightnessEntry, 0, len(byKey))
	for norm, c := range byKey {
		m.sorted = append(m.sorted, brightnessEntry{brightness: norm, char: c})
	}
	sort.Slice(m.sorted, func(i, j int) bool {
		return m.sorted[i].brightness < m.sorted[j].brightness
	})
	m.state = tableClean
}

// Nearest returns the character whose normalized brightness is closest to
// the given value. When the target falls exactly between two stored keys the
// floor entry (lower-or-equal brightness) wins. Returns ErrEmptyCharset when
// no characters are registered.
func (m *Matcher) Nearest(brightness float64) (rune, error) {
	if m.state == tableDirty {
		m.rebuild()
	}
	if len(m.sorted) == 0 {
		return 0, ErrEmptyCharset
	}

	// First index with key >= brightness is the ceiling; the entry before it
	// is the floor.
	ceil := sort.Search(len(m.sorted), func(i int) bool {
		return m.sorted[i].brightness >= brightness
	})
	floor := ceil - 1
	if m.sorted[min(ceil, len(m.sorted)-1)].brightness == brightness {
		floor = min(ceil, len(m.sorted)-1)
	}

	if floor < 0 {
		return m.sorted[ceil].char, nil
	}
	if ceil >= len(m.sorted) {
		return m.sorted[floor].char, nil
	}

	diffFloor := brightness - m.sorted[floor].brightness
	diffCeil := m.sorted[ceil].brightness - brightness
	if diffFloor < 0 {
		diffFloor = -diffFloor
	}
	if diffCeil < 0 {
		diffCeil = -diffCeil
	}
	if diffFloor <= diffCeil {
		return m.sorted[floor].char, nil
	}
	return m.sorted[ceil].char, nil
}

// Bounds returns the minimum and maximum normalized brightness keys of the
// sorted view. Returns ErrEmptyCharset when no characters are registered.
func (m *Matcher) Bounds() (lo, hi float64, err error) {
	if m.state == tableDirty {
		m.rebuild()
	}
	if len(m.sorted) == 0 {
		return 0, 0, ErrEmptyCharset
	}
	return m.sorted[0].brightness, m.sorted[len(m.sorted)-1].brightness, nil
}
