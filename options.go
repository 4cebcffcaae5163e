package focustime

import (
	"log/slog"
	"time"

	"github.com/sergunya/focus-time/discovery"
	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/icon"
	"github.com/sergunya/focus-time/locator"
)

// AnimationInterval is the per-surface repaint period while attached.
const AnimationInterval = 50 * time.Millisecond

// Option configures a Service during creation.
//
// Example:
//
//	svc, err := focustime.New(focustime.DefaultSettings(),
//	    focustime.WithScheduler(loop),
//	    focustime.WithLayerFactory(factory),
//	    focustime.WithTerminalRoots(toolWindow),
//	)
type Option func(*serviceOptions)

type serviceOptions struct {
	scheduler      host.Scheduler
	factory        host.LayerFactory
	roots          []host.Container
	editors        host.EditorRegistry
	scheme         host.ColorScheme
	icons          *icon.Cache
	locator        *locator.Locator
	allow          []string
	scanInterval   time.Duration
	terminalSizing bool
	logger         *slog.Logger
}

func defaultOptions() serviceOptions {
	return serviceOptions{
		allow:        discovery.DefaultAllowList,
		scanInterval: discovery.DefaultInterval,
	}
}

// WithScheduler sets the UI-thread scheduler. Required.
func WithScheduler(s host.Scheduler) Option {
	return func(o *serviceOptions) { o.scheduler = s }
}

// WithLayerFactory sets the factory creating decorator layers. Required.
func WithLayerFactory(f host.LayerFactory) Option {
	return func(o *serviceOptions) { o.factory = f }
}

// WithTerminalRoots adds containers scanned for terminal surfaces.
func WithTerminalRoots(roots ...host.Container) Option {
	return func(o *serviceOptions) { o.roots = append(o.roots, roots...) }
}

// WithEditors sets the editor registry. Without it only terminals get an
// overlay.
func WithEditors(r host.EditorRegistry) Option {
	return func(o *serviceOptions) { o.editors = r }
}

// WithColorScheme enables applying the configured color to the host's
// native editor caret.
func WithColorScheme(s host.ColorScheme) Option {
	return func(o *serviceOptions) { o.scheme = s }
}

// WithIcon replaces the icon cache shared by all overlays.
func WithIcon(c *icon.Cache) Option {
	return func(o *serviceOptions) { o.icons = c }
}

// WithLocator replaces the caret locator.
func WithLocator(l *locator.Locator) Option {
	return func(o *serviceOptions) { o.locator = l }
}

// WithAllowList replaces the terminal type name fragments.
func WithAllowList(fragments ...string) Option {
	return func(o *serviceOptions) { o.allow = fragments }
}

// WithScanInterval sets the discovery period.
func WithScanInterval(d time.Duration) Option {
	return func(o *serviceOptions) {
		if d > 0 {
			o.scanInterval = d
		}
	}
}

// WithTerminalIconSizing sizes terminal icons from the cell size instead of
// the line height. See overlay.TerminalSizing.
func WithTerminalIconSizing() Option {
	return func(o *serviceOptions) { o.terminalSizing = true }
}

// WithLogger sets the logger. The default is the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) { o.logger = l }
}
