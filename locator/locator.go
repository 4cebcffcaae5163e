// Package locator finds the caret rectangle of a host surface.
//
// Editors expose a caret model and are located exactly. Terminal views have
// no public caret accessor; their cursor cell is recovered by inspecting the
// view's fields and methods (see [Introspect]) and scaled by the cell size
// derived from the view's font metrics.
//
// Every failure yields "unknown" rather than an error: the caller simply
// draws nothing for that frame.
package locator

import (
	"image"
	"reflect"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/sergunya/focus-time/cell"
	"github.com/sergunya/focus-time/host"
)

// maxAncestorDepth bounds the parent walk when looking for the
// introspection target.
const maxAncestorDepth = 64

// Rect is a caret rectangle in surface-local pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// CenterSquare returns the size×size square centered on r.
func (r Rect) CenterSquare(size int) image.Rectangle {
	x := r.X + (r.Width-size)/2
	y := r.Y + (r.Height-size)/2
	return image.Rect(x, y, x+size, y+size)
}

// Locator computes caret rectangles. The zero value is not usable; call New.
type Locator struct {
	leading   float64
	names     Names
	nested    Names
	fragments []string
	fallback  cell.Metrics
}

// Option configures a Locator.
type Option func(*Locator)

// WithLeading sets the line height factor used for terminal cells.
func WithLeading(f float64) Option {
	return func(l *Locator) {
		if f > 0 {
			l.leading = f
		}
	}
}

// WithNames replaces the candidate member names used for top-level
// introspection and for nested caret objects.
func WithNames(top, nested Names) Option {
	return func(l *Locator) {
		l.names = top
		l.nested = nested
	}
}

// WithTargetFragments sets the type name fragments identifying the ancestor
// that holds the cursor state. An empty list introspects the surface itself.
func WithTargetFragments(fragments ...string) Option {
	return func(l *Locator) {
		l.fragments = fragments
	}
}

// WithFallbackMetrics sets the metrics used when neither the surface nor
// the introspection target provides font metrics.
func WithFallbackMetrics(m cell.Metrics) Option {
	return func(l *Locator) {
		l.fallback = m
	}
}

// New creates a Locator with the default candidate tables.
func New(opts ...Option) *Locator {
	l := &Locator{
		leading:   cell.DefaultLeading,
		names:     DefaultNames,
		nested:    NestedNames,
		fragments: []string{"TerminalPanel"},
		fallback:  cell.FromFace(basicfont.Face7x13),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the caret rectangle of c. ok is false when the caret
// cannot be determined, including when c is hidden or has no area.
func (l *Locator) Locate(c host.Component) (r Rect, ok bool) {
	if c == nil || !c.Showing() {
		return Rect{}, false
	}
	if sz := c.Size(); sz.X <= 0 || sz.Y <= 0 {
		return Rect{}, false
	}
	defer func() {
		if recover() != nil {
			r, ok = Rect{}, false
		}
	}()
	if ed, isEditor := c.(host.Editor); isEditor {
		return l.locateEditor(ed)
	}
	return l.locateCells(c)
}

// locateEditor uses the host caret model: logical → visual → pixels.
func (l *Locator) locateEditor(ed host.Editor) (Rect, bool) {
	lh := ed.LineHeight()
	if lh <= 0 {
		return Rect{}, false
	}
	vis := ed.LogicalToVisual(ed.CaretLogicalPosition())
	pt := ed.VisualToXY(vis)
	return Rect{X: pt.X, Y: pt.Y, Width: 0, Height: lh}, true
}

// locateCells introspects the cursor cell and scales it by the cell size.
// When the cursor lives on an ancestor panel the rectangle is translated
// into c's coordinates.
func (l *Locator) locateCells(c host.Component) (Rect, bool) {
	target := l.target(c)
	size := cell.Compute(l.metrics(c, target), l.leading)

	cx, cy, _, ok := Introspect(target, l.names, l.nested)
	if !ok {
		return Rect{}, false
	}
	r := Rect{X: cx * size.W, Y: cy * size.H, Width: size.W, Height: size.H}
	if target != c {
		// The cursor is in the ancestor's frame; the overlay paints in c's.
		if off, ok := host.OffsetWithin(c, target); ok {
			r.X -= off.X
			r.Y -= off.Y
		}
	}
	return r, true
}

// CellSize returns the cell size used for c.
func (l *Locator) CellSize(c host.Component) cell.Size {
	return cell.Compute(l.metrics(c, l.target(c)), l.leading)
}

func (l *Locator) metrics(c, target host.Component) cell.Metrics {
	if p, ok := c.(host.FontMetricsProvider); ok {
		if m := p.FontMetrics(); m != nil {
			return m
		}
	}
	if p, ok := target.(host.FontMetricsProvider); ok {
		if m := p.FontMetrics(); m != nil {
			return m
		}
	}
	return l.fallback
}

// target returns the nearest self-or-ancestor whose type name contains one
// of the configured fragments, or c itself.
func (l *Locator) target(c host.Component) host.Component {
	if len(l.fragments) == 0 {
		return c
	}
	var cur host.Component = c
	for depth := 0; cur != nil && depth < maxAncestorDepth; depth++ {
		if matchesAny(TypeName(cur), l.fragments) {
			return cur
		}
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	return c
}

// TypeName returns the concrete type name of v, e.g. "*memhost.TerminalPanel".
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}

func matchesAny(name string, fragments []string) bool {
	for _, f := range fragments {
		if f != "" && strings.Contains(name, f) {
			return true
		}
	}
	return false
}
