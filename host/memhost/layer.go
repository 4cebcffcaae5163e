package memhost

import (
	"image"
	"image/draw"

	"github.com/sergunya/focus-time/host"
)

// Factory wraps views in memhost layers.
type Factory struct {
	// Err, when set, makes the next Wrap fail and is then cleared.
	Err error

	wrapped int
}

// Wrapped returns the number of layers created.
func (f *Factory) Wrapped() int { return f.wrapped }

// Wrap implements host.LayerFactory.
func (f *Factory) Wrap(view host.Component, ui host.LayerUI) (host.Layer, error) {
	if err := f.Err; err != nil {
		f.Err = nil
		return nil, err
	}
	if view.Parent() != nil {
		return nil, ErrHasParent
	}
	l := &Layer{ui: ui}
	l.view = view
	setParent(view, l)
	f.wrapped++
	return l, nil
}

// Layer is a decorator around a single view.
type Layer struct {
	node
	view host.Component
	ui   host.LayerUI
	mask host.EventMask
}

// View implements host.Layer.
func (l *Layer) View() host.Component { return l.view }

// Unwrap implements host.Layer.
func (l *Layer) Unwrap() host.Component {
	v := l.view
	if v != nil {
		setParent(v, nil)
	}
	l.view = nil
	return v
}

// SetEventMask implements host.Layer.
func (l *Layer) SetEventMask(mask host.EventMask) { l.mask = mask }

// EventMask returns the installed event mask.
func (l *Layer) EventMask() host.EventMask { return l.mask }

// Size follows the wrapped view.
func (l *Layer) Size() image.Point {
	if l.view == nil {
		return l.size
	}
	return l.view.Size()
}

// Children implements host.Container.
func (l *Layer) Children() []host.Component {
	if l.view == nil {
		return nil
	}
	return []host.Component{l.view}
}

// IndexOf implements host.Container.
func (l *Layer) IndexOf(child host.Component) int {
	if child != nil && child == l.view {
		return 0
	}
	return -1
}

// Remove implements host.Container.
func (l *Layer) Remove(child host.Component) error {
	if child == nil || child != l.view {
		return ErrNotChild
	}
	l.Unwrap()
	return nil
}

// Insert implements host.Container. A layer holds at most one view.
func (l *Layer) Insert(child host.Component, index int) error {
	if l.view != nil || index != 0 {
		return ErrIndex
	}
	if child.Parent() != nil {
		return ErrHasParent
	}
	l.view = child
	setParent(child, l)
	return nil
}

// Revalidate implements host.Container.
func (l *Layer) Revalidate() {}

// Paint delegates to the LayerUI.
func (l *Layer) Paint(dst draw.Image) {
	if l.ui == nil {
		if l.view != nil {
			l.view.Paint(dst)
		}
		return
	}
	l.ui.Paint(dst, l)
}

// Dispatch delivers ev to the LayerUI when the mask selects it, then to the
// view if it accepts events.
func (l *Layer) Dispatch(ev host.Event) {
	if l.ui != nil && l.mask.Has(ev.Category()) {
		l.ui.HandleEvent(ev, l)
	}
	if r, ok := l.view.(interface{ HandleEvent(host.Event) }); ok {
		r.HandleEvent(ev)
	}
}

// Dispatch sends ev to c through its wrapping layer, if any. It reports
// whether a layer received the event.
func Dispatch(c host.Component, ev host.Event) bool {
	l, ok := c.Parent().(*Layer)
	if !ok {
		return false
	}
	l.Dispatch(ev)
	return true
}
