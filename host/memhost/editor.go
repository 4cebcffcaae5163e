package memhost

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sergunya/focus-time/host"
)

// EditorView is an editor content component with a caret model and soft
// wraps at the view width.
type EditorView struct {
	node
	face       font.Face
	charWidth  int
	lineHeight int

	lines []string
	caret host.LogicalPosition
}

// NewEditorView creates an editor of w×h pixels showing text.
func NewEditorView(w, h int, text string) *EditorView {
	face := basicfont.Face7x13
	adv, _ := face.GlyphAdvance('W')
	return &EditorView{
		node:       node{size: image.Pt(w, h)},
		face:       face,
		charWidth:  adv.Round(),
		lineHeight: face.Metrics().Height.Round() + 3,
		lines:      strings.Split(text, "\n"),
	}
}

// SetCaret moves the caret, clamped to the document.
func (e *EditorView) SetCaret(line, column int) {
	line = min(max(line, 0), len(e.lines)-1)
	column = min(max(column, 0), len([]rune(e.lines[line])))
	e.caret = host.LogicalPosition{Line: line, Column: column}
}

// CaretLogicalPosition implements host.Editor.
func (e *EditorView) CaretLogicalPosition() host.LogicalPosition { return e.caret }

// wrapColumns is the number of columns per visual line.
func (e *EditorView) wrapColumns() int {
	if e.charWidth <= 0 || e.size.X < e.charWidth {
		return 0
	}
	return e.size.X / e.charWidth
}

// visualLines returns the number of visual lines of a logical line.
func (e *EditorView) visualLines(line int) int {
	cols := e.wrapColumns()
	n := len([]rune(e.lines[line]))
	if cols == 0 || n <= cols {
		return 1
	}
	return (n + cols - 1) / cols
}

// LogicalToVisual implements host.Editor.
func (e *EditorView) LogicalToVisual(pos host.LogicalPosition) host.VisualPosition {
	if pos.Line < 0 || pos.Line >= len(e.lines) {
		return host.VisualPosition(pos)
	}
	v := 0
	for i := 0; i < pos.Line; i++ {
		v += e.visualLines(i)
	}
	cols := e.wrapColumns()
	if cols == 0 {
		return host.VisualPosition{Line: v, Column: pos.Column}
	}
	// A caret at the end of a full visual line stays on that line.
	wraps := pos.Column / cols
	if wraps > 0 && pos.Column%cols == 0 && pos.Column == len([]rune(e.lines[pos.Line])) {
		wraps--
	}
	return host.VisualPosition{Line: v + wraps, Column: pos.Column - wraps*cols}
}

// VisualToXY implements host.Editor.
func (e *EditorView) VisualToXY(pos host.VisualPosition) image.Point {
	return image.Pt(pos.Column*e.charWidth, pos.Line*e.lineHeight)
}

// LineHeight implements host.Editor.
func (e *EditorView) LineHeight() int { return e.lineHeight }

// Paint draws the text with soft wraps.
func (e *EditorView) Paint(dst draw.Image) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(color.RGBA{0x2b, 0x2b, 0x2b, 0xff}), image.Point{}, draw.Src)

	d := font.Drawer{Dst: dst, Src: image.NewUniform(color.RGBA{0xa9, 0xb7, 0xc6, 0xff}), Face: e.face}
	ascent := e.face.Metrics().Ascent
	cols := e.wrapColumns()
	v := 0
	for _, line := range e.lines {
		runes := []rune(line)
		for start := 0; start == 0 || start < len(runes); {
			end := len(runes)
			if cols > 0 {
				end = min(start+cols, len(runes))
			}
			d.Dot = fixed.Point26_6{X: fixed.I(b.Min.X), Y: fixed.I(b.Min.Y+v*e.lineHeight) + ascent}
			d.DrawString(string(runes[start:end]))
			v++
			if end == start {
				break
			}
			start = end
		}
	}
}

// Editors is an in-memory host.EditorRegistry.
type Editors struct {
	open     []host.Editor
	created  map[int]func(host.Editor)
	released map[int]func(host.Editor)
	nextID   int
}

// NewEditors creates an empty registry.
func NewEditors() *Editors {
	return &Editors{
		created:  make(map[int]func(host.Editor)),
		released: make(map[int]func(host.Editor)),
	}
}

// Open registers e and notifies subscribers.
func (r *Editors) Open(e host.Editor) {
	r.open = append(r.open, e)
	for _, fn := range r.created {
		fn(e)
	}
}

// Close unregisters e and notifies subscribers.
func (r *Editors) Close(e host.Editor) {
	for i, o := range r.open {
		if o == e {
			r.open = append(r.open[:i], r.open[i+1:]...)
			break
		}
	}
	for _, fn := range r.released {
		fn(e)
	}
}

// AllEditors implements host.EditorRegistry.
func (r *Editors) AllEditors() []host.Editor {
	return append([]host.Editor(nil), r.open...)
}

// OnEditorCreated implements host.EditorRegistry.
func (r *Editors) OnEditorCreated(fn func(host.Editor)) func() {
	return r.subscribe(r.created, fn)
}

// OnEditorReleased implements host.EditorRegistry.
func (r *Editors) OnEditorReleased(fn func(host.Editor)) func() {
	return r.subscribe(r.released, fn)
}

// Subscribers returns the number of active subscriptions.
func (r *Editors) Subscribers() int {
	return len(r.created) + len(r.released)
}

func (r *Editors) subscribe(m map[int]func(host.Editor), fn func(host.Editor)) func() {
	id := r.nextID
	r.nextID++
	m[id] = fn
	return func() { delete(m, id) }
}
