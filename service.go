package focustime

import (
	"errors"
	"image/color"
	"log/slog"
	"slices"
	"time"

	"github.com/sergunya/focus-time/attach"
	"github.com/sergunya/focus-time/discovery"
	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/icon"
	"github.com/sergunya/focus-time/locator"
	"github.com/sergunya/focus-time/modkey"
	"github.com/sergunya/focus-time/overlay"
)

// Service tracks surfaces, keeps one overlay per surface attached and
// broadcasts settings changes to all of them.
//
// All methods must be called on the host UI thread.
type Service struct {
	opts     serviceOptions
	settings Settings
	logger   *slog.Logger
	icons    *icon.Cache
	locator  *locator.Locator
	scanner  *discovery.Scanner

	overlays map[host.Component]*surfaceOverlay
	order    []host.Component

	scanTimer host.Timer
	unsubs    []func()
	caret     caretColor

	started bool
	closed  bool
}

// New creates a Service. It validates s and requires a scheduler and a
// layer factory. Nothing is attached until Start.
func New(s Settings, opts ...Option) (*Service, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		return nil, ErrNoScheduler
	}
	if o.factory == nil {
		return nil, ErrNoLayerFactory
	}

	logger := o.logger
	if logger == nil {
		logger = Logger()
	}
	icons := o.icons
	if icons == nil {
		icons = icon.New(icon.WithLogger(logger))
	}
	loc := o.locator
	if loc == nil {
		loc = locator.New()
	}

	svc := &Service{
		opts:     o,
		settings: s,
		logger:   logger,
		icons:    icons,
		locator:  loc,
		overlays: make(map[host.Component]*surfaceOverlay),
		caret:    caretColor{scheme: o.scheme},
	}
	svc.scanner = discovery.New(terminalHandler{svc},
		discovery.WithRoots(o.roots...),
		discovery.WithAllowList(o.allow...),
		discovery.WithLogger(logger),
		discovery.WithBeforeScan(svc.retry),
	)
	return svc, nil
}

// Settings returns the current settings.
func (s *Service) Settings() Settings { return s.settings }

// Start runs the first discovery pass, starts periodic discovery, sweeps
// the open editors and subscribes to editor events. Calling Start again is
// a no-op.
func (s *Service) Start() error {
	if s.closed {
		return ErrClosed
	}
	if s.started {
		return nil
	}
	s.started = true
	s.logger.Info("focustime: starting", "roots", len(s.opts.roots), "editors", s.opts.editors != nil)

	if r := s.opts.editors; r != nil {
		s.unsubs = append(s.unsubs,
			r.OnEditorCreated(func(e host.Editor) { s.track(e, editorSurface) }),
			r.OnEditorReleased(func(e host.Editor) { s.forget(e) }),
		)
		for _, e := range r.AllEditors() {
			s.track(e, editorSurface)
		}
	}

	s.scanTimer = s.scanner.Start(s.opts.scheduler, s.opts.scanInterval)
	s.caret.apply(s.settings.Enabled, s.settings.Color)
	return nil
}

// retry reattaches overlays that are not attached. It runs before every
// discovery pass.
func (s *Service) retry() {
	for _, c := range slices.Clone(s.order) {
		if o, ok := s.overlays[c]; ok && o.attachment.State() != attach.Attached {
			s.attach(o)
		}
	}
}

// AddTerminalRoot adds a container to the terminal discovery walk, such as a
// newly opened window. A started service scans it immediately.
func (s *Service) AddTerminalRoot(root host.Container) {
	if s.closed {
		return
	}
	s.scanner.AddRoot(root)
	if s.started {
		s.scanner.Scan()
	}
}

// Close detaches every overlay, stops discovery, unsubscribes from editor
// events and restores the caret color. The service cannot be restarted.
func (s *Service) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.scanTimer != nil {
		s.scanTimer.Stop()
		s.scanTimer = nil
	}
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil

	var errs []error
	for _, c := range slices.Clone(s.order) {
		if err := s.overlays[c].Detach(); err != nil {
			errs = append(errs, err)
		}
		delete(s.overlays, c)
	}
	s.order = nil
	s.scanner.Reset()
	if s.started {
		s.caret.restore()
	}
	s.logger.Info("focustime: closed")
	return errors.Join(errs...)
}

// Tracked returns the surfaces that currently have an overlay, in the
// order they were found.
func (s *Service) Tracked() []host.Component {
	return slices.Clone(s.order)
}

// State returns the overlay state of c.
func (s *Service) State(c host.Component) (*overlay.State, bool) {
	o, ok := s.overlays[c]
	if !ok {
		return nil, false
	}
	return o.state, true
}

// SetEnabled turns drawing on or off on every overlay. Layers stay
// installed.
func (s *Service) SetEnabled(enabled bool) {
	s.settings.Enabled = enabled
	s.broadcast()
	if s.started && !s.closed {
		s.caret.apply(enabled, s.settings.Color)
	}
}

// SetColor changes the icon tint and, when enabled, the editor caret color.
func (s *Service) SetColor(c Color) {
	s.settings.Color = c
	s.broadcast()
	if s.started && !s.closed && s.settings.Enabled {
		s.caret.apply(true, c)
	}
}

// SetDarkenEnabled turns the modifier dimming on or off.
func (s *Service) SetDarkenEnabled(enabled bool) {
	s.settings.DarkenEnabled = enabled
	s.broadcast()
}

// SetDarkenParams sets the dimming delay and maximum opacity.
func (s *Service) SetDarkenParams(delay time.Duration, maxAlpha float64) error {
	next := s.settings
	next.DarkenDelay = delay
	next.DarkenMaxAlpha = maxAlpha
	if err := next.Validate(); err != nil {
		return err
	}
	s.settings = next
	s.broadcast()
	return nil
}

// Apply replaces all settings at once.
func (s *Service) Apply(next Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	prev := s.settings
	s.settings = next
	s.broadcast()
	if s.started && !s.closed && (prev.Enabled != next.Enabled || prev.Color != next.Color) {
		s.caret.apply(next.Enabled, next.Color)
	}
	return nil
}

// Refresh repaints every attached overlay.
func (s *Service) Refresh() {
	for _, c := range s.order {
		s.overlays[c].repaint()
	}
}

func (s *Service) broadcast() {
	for _, c := range s.order {
		o := s.overlays[c]
		o.apply(s.settings, s.opts.terminalSizing)
		o.repaint()
	}
}

// track creates and attaches an overlay for c unless it has one.
func (s *Service) track(c host.Component, kind surfaceKind) {
	if s.closed || c == nil {
		return
	}
	if _, ok := s.overlays[c]; ok {
		return
	}
	o := s.newOverlay(c, kind)
	s.overlays[c] = o
	s.order = append(s.order, c)
	s.logger.Info("focustime: tracking surface", "kind", kind, "id", o.attachment.ID())
	s.attach(o)
}

func (s *Service) attach(o *surfaceOverlay) {
	if err := o.Attach(); err != nil {
		s.logger.Debug("focustime: attach failed", "kind", o.kind, "id", o.attachment.ID(), "err", err)
	}
}

// forget detaches and drops the overlay of c.
func (s *Service) forget(c host.Component) {
	o, ok := s.overlays[c]
	if !ok {
		return
	}
	if err := o.Detach(); err != nil {
		s.logger.Debug("focustime: detach failed", "kind", o.kind, "id", o.attachment.ID(), "err", err)
	}
	delete(s.overlays, c)
	if i := slices.Index(s.order, c); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.logger.Info("focustime: forgot surface", "kind", o.kind, "id", o.attachment.ID())
}

func (s *Service) newOverlay(c host.Component, kind surfaceKind) *surfaceOverlay {
	o := &surfaceOverlay{
		kind:  kind,
		sched: s.opts.scheduler,
		state: &overlay.State{
			Enabled:       s.settings.Enabled,
			DarkenEnabled: s.settings.DarkenEnabled,
			Color:         s.settings.Color.NRGBA(),
		},
	}
	o.keys = modkey.New(s.settings.Modifier, s.opts.scheduler.Now, o.repaint)
	o.painter = overlay.NewPainter(o.state,
		overlay.WithLocator(s.locator),
		overlay.WithIcons(s.icons),
		overlay.WithTracker(o.keys),
		overlay.WithClock(s.opts.scheduler.Now),
		overlay.WithParams(s.settings.params(s.opts.terminalSizing && kind == terminalSurface)),
		overlay.WithLogger(s.logger),
	)
	o.attachment = attach.New(c, s.opts.factory, o.painter,
		attach.WithEventMask(host.KeyEvents),
		attach.WithLogger(s.logger),
	)
	return o
}

// terminalHandler receives discovery results.
type terminalHandler struct {
	s *Service
}

func (h terminalHandler) Found(c host.Component) { h.s.track(c, terminalSurface) }
func (h terminalHandler) Lost(c host.Component)  { h.s.forget(c) }

// caretColor applies the configured color to the host caret and restores
// the original when disabled.
type caretColor struct {
	scheme   host.ColorScheme
	original color.Color
	saved    bool
}

func (c *caretColor) apply(enabled bool, col Color) {
	if c.scheme == nil {
		return
	}
	if !enabled {
		c.restore()
		return
	}
	if !c.saved {
		if orig, ok := c.scheme.CaretColor(); ok {
			c.original = orig
		}
		c.saved = true
	}
	c.scheme.SetCaretColor(col.NRGBA())
	c.scheme.RefreshEditors()
}

// restore puts the remembered caret color back. The remembered value is
// kept so later color changes do not lose it.
func (c *caretColor) restore() {
	if c.scheme == nil || !c.saved {
		return
	}
	c.scheme.SetCaretColor(c.original)
	c.scheme.RefreshEditors()
}
