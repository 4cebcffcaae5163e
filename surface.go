package focustime

import (
	"github.com/sergunya/focus-time/attach"
	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/modkey"
	"github.com/sergunya/focus-time/overlay"
)

type surfaceKind uint8

const (
	terminalSurface surfaceKind = iota
	editorSurface
)

func (k surfaceKind) String() string {
	if k == editorSurface {
		return "editor"
	}
	return "terminal"
}

// surfaceOverlay is the overlay controller of one tracked surface: its
// state, painter, modifier tracker, attachment and animation timer.
type surfaceOverlay struct {
	kind       surfaceKind
	state      *overlay.State
	painter    *overlay.Painter
	keys       *modkey.Tracker
	attachment *attach.Attachment
	sched      host.Scheduler
	anim       host.Timer
}

// Attach installs the layer and starts the animation timer. It is a no-op
// while attached.
func (o *surfaceOverlay) Attach() error {
	if o.attachment.State() == attach.Attached {
		return nil
	}
	if err := o.attachment.Attach(); err != nil {
		return err
	}
	o.state.Layer = o.attachment.Layer()
	o.anim = o.sched.Every(AnimationInterval, o.tick)
	return nil
}

// Detach stops the animation, clears the modifier and removes the layer.
func (o *surfaceOverlay) Detach() error {
	if o.anim != nil {
		o.anim.Stop()
		o.anim = nil
	}
	o.keys.Reset()
	err := o.attachment.Detach()
	if o.attachment.State() != attach.Attached {
		o.state.Layer = nil
	}
	return err
}

// tick repaints while the overlay is visible so caret moves and the
// darken ramp show up without other triggers.
func (o *surfaceOverlay) tick() {
	if o.state.Enabled {
		o.repaint()
	}
}

// repaint schedules a repaint of the layer and the wrapped view.
func (o *surfaceOverlay) repaint() {
	l := o.state.Layer
	if l == nil {
		return
	}
	l.Repaint()
	if r, ok := l.View().(host.Repainter); ok {
		r.Repaint()
	}
}

func (o *surfaceOverlay) apply(s Settings, terminalSizing bool) {
	o.state.Enabled = s.Enabled
	o.state.DarkenEnabled = s.DarkenEnabled
	o.painter.SetColor(s.Color.NRGBA())
	o.painter.SetParams(s.params(terminalSizing && o.kind == terminalSurface))
	o.keys.SetKey(s.Modifier)
}
