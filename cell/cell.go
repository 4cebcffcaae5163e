// Package cell computes character cell sizes for monospaced surfaces.
//
// A terminal reports its caret in cell coordinates; the overlay converts
// them to pixels by multiplying with the cell size derived here. Two font
// backends are supported: golang.org/x/image/font faces ([FromFace]) and
// go-text/typesetting faces ([FromOpenType]).
package cell

import "math"

// DefaultLeading is the line spacing factor applied to the font line height.
const DefaultLeading = 1.1

// representative is the glyph whose advance defines the cell width.
const representative = 'W'

// Metrics is the subset of font metrics needed to size a cell.
type Metrics interface {
	// Advance returns the horizontal advance of r in pixels.
	Advance(r rune) (float64, bool)

	// LineHeight returns the recommended line height in pixels.
	LineHeight() float64
}

// Size is a character cell size in pixels.
type Size struct {
	W, H int
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Compute derives the cell size from m. The width is the advance of 'W',
// the height is the line height scaled by leading. Both are at least 1.
// A non-positive leading selects DefaultLeading.
func Compute(m Metrics, leading float64) Size {
	if leading <= 0 {
		leading = DefaultLeading
	}
	if m == nil {
		return Size{W: 1, H: 1}
	}
	w := 0
	if adv, ok := m.Advance(representative); ok {
		w = int(math.Round(adv))
	}
	h := int(math.Round(m.LineHeight() * leading))
	return Size{W: max(w, 1), H: max(h, 1)}
}

// Fixed is a Metrics with constant values. Useful for surfaces that already
// know their cell size.
type Fixed struct {
	AdvanceWidth float64
	Height       float64
}

// Advance implements Metrics.
func (f Fixed) Advance(rune) (float64, bool) { return f.AdvanceWidth, f.AdvanceWidth > 0 }

// LineHeight implements Metrics.
func (f Fixed) LineHeight() float64 { return f.Height }
