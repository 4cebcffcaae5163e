// Package attach wraps a surface in a decorator layer and unwraps it again
// without disturbing the parent's layout.
//
// The swap is a small transaction: the surface index is read, the surface is
// removed, wrapped, and the layer is inserted at the same index. If any step
// fails or panics the swap is rolled back and the surface is put back where
// it was.
package attach

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sergunya/focus-time/host"
)

var (
	// ErrNoParent is returned when the surface is not in a container.
	ErrNoParent = errors.New("attach: surface has no parent")

	// ErrIsLayer is returned when the surface is itself a layer.
	ErrIsLayer = errors.New("attach: surface is a layer")

	// ErrParentIsLayer is returned when the surface is already wrapped.
	ErrParentIsLayer = errors.New("attach: parent is a layer")

	// ErrNotChild is returned when the parent does not list the surface.
	ErrNotChild = errors.New("attach: surface not found in parent")

	// ErrIndexMoved is returned when the layer did not land at the
	// surface's index.
	ErrIndexMoved = errors.New("attach: layer inserted at a different index")

	// ErrNilLayer is returned when the factory returns neither a layer nor
	// an error.
	ErrNilLayer = errors.New("attach: factory returned no layer")
)

// State is the lifecycle state of an Attachment.
type State uint8

const (
	Unattached State = iota
	Attached
	AttachFailed
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Attached:
		return "attached"
	case AttachFailed:
		return "attach-failed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Attachment owns the layer installed around one surface.
type Attachment struct {
	id      uuid.UUID
	surface host.Component
	factory host.LayerFactory
	ui      host.LayerUI
	mask    host.EventMask
	logger  *slog.Logger

	state State
	layer host.Layer
}

// Option configures an Attachment.
type Option func(*Attachment)

// WithEventMask sets the events delivered to the LayerUI. The default is
// key events only.
func WithEventMask(m host.EventMask) Option {
	return func(a *Attachment) { a.mask = m }
}

// WithLogger sets the logger used for failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *Attachment) {
		if l != nil {
			a.logger = l
		}
	}
}

// New prepares an attachment of ui around surface. Nothing is changed until
// Attach is called.
func New(surface host.Component, factory host.LayerFactory, ui host.LayerUI, opts ...Option) *Attachment {
	a := &Attachment{
		id:      uuid.New(),
		surface: surface,
		factory: factory,
		ui:      ui,
		mask:    host.KeyEvents,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID identifies the attachment in logs.
func (a *Attachment) ID() uuid.UUID { return a.id }

// Surface returns the wrapped (or to-be-wrapped) surface.
func (a *Attachment) Surface() host.Component { return a.surface }

// State returns the current state.
func (a *Attachment) State() State { return a.state }

// Layer returns the installed layer, or nil unless Attached.
func (a *Attachment) Layer() host.Layer { return a.layer }

// Attach wraps the surface. It is a no-op while Attached. On failure the
// tree is restored, the state becomes AttachFailed and the cause is
// returned.
func (a *Attachment) Attach() error {
	if a.state == Attached {
		return nil
	}
	if err := a.check(); err != nil {
		return a.fail(err)
	}
	layer, err := a.swap()
	if err != nil {
		return a.fail(err)
	}
	a.layer = layer
	a.state = Attached
	a.logger.Debug("attach: attached", "id", a.id, "surface", fmt.Sprintf("%T", a.surface))
	return nil
}

// check refuses surfaces that cannot be wrapped.
func (a *Attachment) check() error {
	if a.surface == nil {
		return ErrNoParent
	}
	if host.IsLayer(a.surface) {
		return ErrIsLayer
	}
	parent := a.surface.Parent()
	if parent == nil {
		return ErrNoParent
	}
	if host.IsLayer(parent) {
		return ErrParentIsLayer
	}
	return nil
}

func (a *Attachment) fail(err error) error {
	a.state = AttachFailed
	a.layer = nil
	a.logger.Debug("attach: failed", "id", a.id, "err", err)
	return err
}

// swap replaces the surface by a layer at the same index.
func (a *Attachment) swap() (layer host.Layer, err error) {
	parent := a.surface.Parent()
	index := parent.IndexOf(a.surface)
	if index < 0 {
		return nil, ErrNotChild
	}

	removed := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("attach: panic during swap: %v", r)
		}
		if err != nil {
			a.rollback(parent, index, layer, removed)
			layer = nil
		}
	}()

	if err = parent.Remove(a.surface); err != nil {
		return nil, fmt.Errorf("attach: remove surface: %w", err)
	}
	removed = true

	layer, err = a.factory.Wrap(a.surface, a.ui)
	if err != nil {
		return nil, fmt.Errorf("attach: wrap: %w", err)
	}
	if layer == nil {
		return nil, ErrNilLayer
	}
	layer.SetEventMask(a.mask)

	if err = parent.Insert(layer, index); err != nil {
		return layer, fmt.Errorf("attach: insert layer: %w", err)
	}
	if got := parent.IndexOf(layer); got != index {
		return layer, fmt.Errorf("%w: got %d, want %d", ErrIndexMoved, got, index)
	}
	parent.Revalidate()
	parent.Repaint()
	return layer, nil
}

// rollback undoes a partial swap: the layer is taken out and unwrapped, and
// the surface goes back to its index.
func (a *Attachment) rollback(parent host.Container, index int, layer host.Layer, removed bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("attach: rollback panicked", "id", a.id, "panic", r)
		}
	}()
	if layer != nil {
		if parent.IndexOf(layer) >= 0 {
			if err := parent.Remove(layer); err != nil {
				a.logger.Debug("attach: rollback remove layer", "id", a.id, "err", err)
			}
		}
		layer.Unwrap()
	}
	if removed && a.surface.Parent() == nil {
		index = min(index, len(parent.Children()))
		if err := parent.Insert(a.surface, index); err != nil {
			a.logger.Debug("attach: rollback reinsert", "id", a.id, "err", err)
		}
	}
	parent.Revalidate()
	parent.Repaint()
}

// Detach removes the layer and puts the surface back at the layer's index.
// It is a no-op unless Attached. If the host already took the layer out of
// the tree, the surface is only unwrapped. If the host rejects removing the
// layer or reinserting the surface, the layer is left (or put back) in place
// and the attachment stays Attached.
func (a *Attachment) Detach() (err error) {
	if a.state != Attached {
		a.state = Unattached
		return nil
	}
	layer := a.layer
	a.layer = nil
	a.state = Unattached

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("attach: panic during detach: %v", r)
		}
		if err != nil {
			a.logger.Debug("attach: detach failed", "id", a.id, "err", err)
		}
	}()

	parent := layer.Parent()
	if parent == nil {
		layer.Unwrap()
		return nil
	}
	index := parent.IndexOf(layer)
	if index < 0 {
		layer.Unwrap()
		return nil
	}
	if err = parent.Remove(layer); err != nil {
		// Still wrapped: keep owning the layer so a later Detach can retry.
		a.layer = layer
		a.state = Attached
		return fmt.Errorf("attach: remove layer: %w", err)
	}
	view := layer.Unwrap()
	if view == nil {
		view = a.surface
	}
	if err = parent.Insert(view, index); err != nil {
		err = fmt.Errorf("attach: reinsert surface: %w", err)
		a.restoreLayer(parent, layer, view, index)
		return err
	}
	parent.Revalidate()
	parent.Repaint()
	a.logger.Debug("attach: detached", "id", a.id)
	return nil
}

// restoreLayer rewraps view and puts the layer back at index after a failed
// reinsert, so the surface stays in the tree and Detach can be retried.
// When the layer cannot be restored the bare view is inserted instead.
func (a *Attachment) restoreLayer(parent host.Container, layer host.Layer, view host.Component, index int) {
	index = min(index, len(parent.Children()))
	if err := layer.Insert(view, 0); err != nil {
		a.logger.Debug("attach: rewrap after failed detach", "id", a.id, "err", err)
	} else if err := parent.Insert(layer, index); err != nil {
		a.logger.Debug("attach: restore layer", "id", a.id, "err", err)
		layer.Unwrap()
	} else {
		a.layer = layer
		a.state = Attached
		parent.Revalidate()
		parent.Repaint()
		return
	}
	if view.Parent() == nil {
		if err := parent.Insert(view, index); err != nil {
			a.logger.Debug("attach: reinsert surface", "id", a.id, "err", err)
		}
	}
	parent.Revalidate()
	parent.Repaint()
}
