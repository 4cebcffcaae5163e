package host

import "image/draw"

// EventMask selects which event categories a layer forwards to its LayerUI.
type EventMask uint32

const (
	// KeyEvents selects key press and release events.
	KeyEvents EventMask = 1 << iota
	// MouseEvents selects mouse events.
	MouseEvents
	// FocusEvents selects focus gained/lost events.
	FocusEvents
)

// Has reports whether m includes every bit of other.
func (m EventMask) Has(other EventMask) bool {
	return m&other == other
}

// Layer is a decorator node inserted in place of a view. It paints the view
// through a LayerUI and forwards selected events to it.
type Layer interface {
	Container

	// View returns the wrapped component, or nil after Unwrap.
	View() Component

	// Unwrap releases the wrapped view so it can be reinserted elsewhere.
	// It returns the released view.
	Unwrap() Component

	// SetEventMask selects the event categories forwarded to the LayerUI.
	SetEventMask(mask EventMask)
}

// LayerUI receives paint and event callbacks for a Layer.
type LayerUI interface {
	// Paint renders the layer. Implementations are responsible for
	// painting the wrapped view.
	Paint(dst draw.Image, l Layer)

	// HandleEvent receives events selected by the layer's event mask.
	HandleEvent(ev Event, l Layer)
}

// LayerFactory wraps views in layers.
type LayerFactory interface {
	// Wrap creates a layer around view. On success the view's parent is
	// the returned layer.
	Wrap(view Component, ui LayerUI) (Layer, error)
}

// LayerFactoryFunc adapts a function to LayerFactory.
type LayerFactoryFunc func(view Component, ui LayerUI) (Layer, error)

// Wrap calls f(view, ui).
func (f LayerFactoryFunc) Wrap(view Component, ui LayerUI) (Layer, error) {
	return f(view, ui)
}

// IsLayer reports whether c is a decorator layer.
func IsLayer(c Component) bool {
	if c == nil {
		return false
	}
	_, ok := c.(Layer)
	return ok
}
