package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/icon"
	"github.com/sergunya/focus-time/internal/blend"
	"github.com/sergunya/focus-time/locator"
	"github.com/sergunya/focus-time/modkey"
)

// Painter is the LayerUI installed on every wrapped surface.
//
// Paint lets the view render itself, then optionally dims it while the
// modifier is held, then draws the icon centered on the caret. Nothing
// escapes Paint or HandleEvent: panics are recovered and logged at debug
// level.
type Painter struct {
	state   *State
	params  Params
	locator *locator.Locator
	icons   *icon.Cache
	keys    *modkey.Tracker
	now     func() time.Time
	logger  *slog.Logger
}

// PainterOption configures a Painter.
type PainterOption func(*Painter)

// WithLocator sets the caret locator.
func WithLocator(l *locator.Locator) PainterOption {
	return func(p *Painter) { p.locator = l }
}

// WithIcons sets the icon cache.
func WithIcons(c *icon.Cache) PainterOption {
	return func(p *Painter) { p.icons = c }
}

// WithTracker sets the modifier tracker driving the dimming.
func WithTracker(t *modkey.Tracker) PainterOption {
	return func(p *Painter) { p.keys = t }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) PainterOption {
	return func(p *Painter) {
		if now != nil {
			p.now = now
		}
	}
}

// WithParams sets the darken and sizing parameters.
func WithParams(params Params) PainterOption {
	return func(p *Painter) { p.SetParams(params) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) PainterOption {
	return func(p *Painter) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPainter creates a Painter for state.
func NewPainter(state *State, opts ...PainterOption) *Painter {
	p := &Painter{
		state:   state,
		params:  DefaultParams(),
		locator: locator.New(),
		icons:   icon.New(),
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.icons.SetColor(state.Color)
	return p
}

// State returns the overlay state painted by p.
func (p *Painter) State() *State {
	return p.state
}

// SetParams replaces the darken and sizing parameters.
func (p *Painter) SetParams(params Params) {
	if params.Sizing == nil {
		params.Sizing = LineHeightSizing(DefaultIconScale)
	}
	p.params = params
}

// SetColor changes the icon tint.
func (p *Painter) SetColor(c color.NRGBA) {
	p.state.Color = c
	p.icons.SetColor(c)
}

// Tracker returns the modifier tracker, or nil.
func (p *Painter) Tracker() *modkey.Tracker {
	return p.keys
}

// Paint implements host.LayerUI.
func (p *Painter) Paint(dst draw.Image, l host.Layer) {
	defer p.recoverHook("paint")

	view := l.View()
	if view == nil {
		return
	}
	view.Paint(dst)

	if a := p.DimAlpha(); a > 0 {
		dim(dst, a)
	}

	if !p.state.Enabled {
		return
	}
	r, ok := p.locator.Locate(view)
	if !ok {
		return
	}
	size := p.params.Sizing(r)
	img := p.icons.Variant(size)
	if img == nil {
		return
	}
	at := r.CenterSquare(size).Add(dst.Bounds().Min)
	xdraw.Draw(dst, at, img, image.Point{}, xdraw.Over)
}

// HandleEvent implements host.LayerUI.
func (p *Painter) HandleEvent(ev host.Event, _ host.Layer) {
	defer p.recoverHook("event")
	if p.keys != nil {
		p.keys.Handle(ev)
	}
}

// DimAlpha returns the dimming opacity for the current frame.
func (p *Painter) DimAlpha() float64 {
	if !p.state.Enabled || !p.state.DarkenEnabled || p.keys == nil {
		return 0
	}
	since, held := p.keys.Held()
	if !held {
		return 0
	}
	return DarkenAlpha(p.now().Sub(since), p.params.DarkenDelay, p.params.DarkenMaxAlpha)
}

func (p *Painter) recoverHook(where string) {
	if r := recover(); r != nil {
		p.logger.Debug("overlay: recovered panic", "hook", where, "panic", r)
	}
}

// dim composites black at opacity a over the whole destination.
func dim(dst draw.Image, a float64) {
	a8 := uint8(math.Round(min(a, 1) * 255))
	if a8 == 0 {
		return
	}
	if rgba, ok := dst.(*image.RGBA); ok {
		blend.FillOver(rgba, rgba.Bounds(), color.RGBA{A: a8})
		return
	}
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{A: a8}), image.Point{}, xdraw.Over)
}
