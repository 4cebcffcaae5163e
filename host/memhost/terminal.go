package memhost

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"

	"github.com/sergunya/focus-time/cell"
	"github.com/sergunya/focus-time/host"
)

// TerminalPanel is a terminal view that keeps its cursor in private fields,
// the way third-party terminal widgets do. The overlay can only find the
// cursor by introspection.
type TerminalPanel struct {
	node
	face       font.Face
	metrics    cell.Metrics
	foreground color.Color
	background color.Color

	lines   [][]rune
	cursorX int
	cursorY int
}

// NewTerminalPanel creates a terminal of w×h pixels using face, or
// basicfont.Face7x13 when face is nil.
func NewTerminalPanel(w, h int, face font.Face) *TerminalPanel {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &TerminalPanel{
		node:       node{size: image.Pt(w, h)},
		face:       face,
		foreground: color.RGBA{0xbb, 0xbb, 0xbb, 0xff},
		background: color.RGBA{0x1e, 0x1e, 0x1e, 0xff},
		lines:      [][]rune{nil},
	}
}

// FontMetrics implements host.FontMetricsProvider. It reports the metrics
// set by SetFontMetrics, or those of the paint face.
func (t *TerminalPanel) FontMetrics() cell.Metrics {
	if t.metrics != nil {
		return t.metrics
	}
	return cell.FromFace(t.face)
}

// SetFontMetrics overrides the reported metrics, as a host does when its
// layout engine measures text separately from the paint face. nil restores
// the paint face metrics.
func (t *TerminalPanel) SetFontMetrics(m cell.Metrics) { t.metrics = m }

// Write appends text at the cursor. '\n' starts a new line, '\r' returns to
// column 0. East Asian wide and fullwidth runes advance the cursor two
// cells.
func (t *TerminalPanel) Write(s string) {
	for _, r := range s {
		switch r {
		case '\n':
			t.cursorY++
			t.cursorX = 0
			for len(t.lines) <= t.cursorY {
				t.lines = append(t.lines, nil)
			}
		case '\r':
			t.cursorX = 0
		default:
			line := t.lines[t.cursorY]
			for len(line) < t.cursorX {
				line = append(line, ' ')
			}
			if t.cursorX < len(line) {
				line[t.cursorX] = r
			} else {
				line = append(line, r)
			}
			t.lines[t.cursorY] = line
			t.cursorX += RuneCells(r)
		}
	}
}

// MoveCursor places the cursor at column x, row y.
func (t *TerminalPanel) MoveCursor(x, y int) {
	t.cursorX, t.cursorY = max(x, 0), max(y, 0)
	for len(t.lines) <= t.cursorY {
		t.lines = append(t.lines, nil)
	}
}

// RuneCells returns the number of terminal cells r occupies.
func RuneCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Paint draws the background and the text lines.
func (t *TerminalPanel) Paint(dst draw.Image) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(t.background), image.Point{}, draw.Src)

	m := cell.FromFace(t.face)
	lineH := int(math.Round(m.LineHeight() * cell.DefaultLeading))
	ascent := t.face.Metrics().Ascent
	d := font.Drawer{Dst: dst, Src: image.NewUniform(t.foreground), Face: t.face}
	for i, line := range t.lines {
		if len(line) == 0 {
			continue
		}
		d.Dot = fixed.Point26_6{
			X: fixed.I(b.Min.X),
			Y: fixed.I(b.Min.Y+i*lineH) + ascent,
		}
		d.DrawString(string(line))
	}
}

// HandleEvent types printable runes into the terminal.
func (t *TerminalPanel) HandleEvent(ev host.Event) {
	ke, ok := ev.(host.KeyEvent)
	if !ok || ke.Action != host.KeyPressed {
		return
	}
	switch ke.Key {
	case host.KeyRune:
		t.Write(string(ke.Rune))
	case host.KeyEnter:
		t.Write("\n")
	}
}
