// Package discovery finds terminal surfaces in a changing component tree.
//
// A Scanner walks its roots depth-first, looks through decorator layers to
// the wrapped view, and reports surfaces whose concrete type name contains an
// allow-listed fragment. When a match contains another match, only the
// deepest one is reported. Surfaces that stop being reachable are reported
// as lost.
package discovery

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/locator"
)

// DefaultInterval is the period between scans.
const DefaultInterval = 1500 * time.Millisecond

// maxDepth bounds the tree walk.
const maxDepth = 256

// DefaultAllowList holds the type name fragments of known terminal widgets.
var DefaultAllowList = []string{"TerminalPanel", "JediTermWidget", "TerminalWidget"}

// Handler receives scan results.
type Handler interface {
	// Found is called once for every newly discovered surface.
	Found(c host.Component)

	// Lost is called when a tracked surface is no longer reachable.
	Lost(c host.Component)
}

// Scanner discovers surfaces and keeps the set it has reported.
type Scanner struct {
	roots   []host.Container
	allow   []string
	handler Handler
	logger  *slog.Logger
	before  func()

	tracked []host.Component
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRoots sets the containers to walk.
func WithRoots(roots ...host.Container) Option {
	return func(s *Scanner) { s.roots = roots }
}

// WithAllowList replaces the type name fragments.
func WithAllowList(fragments ...string) Option {
	return func(s *Scanner) { s.allow = fragments }
}

// WithBeforeScan sets a hook run before every pass started by Start.
func WithBeforeScan(fn func()) Option {
	return func(s *Scanner) { s.before = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scanner reporting to h.
func New(h Handler, opts ...Option) *Scanner {
	s := &Scanner{
		allow:   DefaultAllowList,
		handler: h,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddRoot adds a container to walk.
func (s *Scanner) AddRoot(root host.Container) {
	if root != nil && !slices.Contains(s.roots, root) {
		s.roots = append(s.roots, root)
	}
}

// Matches reports whether c's concrete type name contains an allow-listed
// fragment.
func (s *Scanner) Matches(c host.Component) bool {
	if c == nil || host.IsLayer(c) {
		return false
	}
	name := locator.TypeName(c)
	for _, f := range s.allow {
		if f != "" && strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// Candidates walks the roots and returns the deepest matches in tree order.
func (s *Scanner) Candidates() []host.Component {
	var out []host.Component
	for _, r := range s.roots {
		s.walk(r, 0, &out)
	}
	return out
}

// walk appends the deepest matches under c and reports whether any was
// found.
func (s *Scanner) walk(c host.Component, depth int, out *[]host.Component) bool {
	if c == nil || depth > maxDepth {
		return false
	}
	if l, ok := c.(host.Layer); ok {
		return s.walk(l.View(), depth+1, out)
	}
	found := false
	if ct, ok := c.(host.Container); ok {
		for _, child := range ct.Children() {
			if s.walk(child, depth+1, out) {
				found = true
			}
		}
	}
	if !found && s.Matches(c) && !slices.Contains(*out, c) {
		*out = append(*out, c)
		found = true
	}
	return found
}

// Scan reports new candidates as found and unreachable tracked surfaces as
// lost. It returns the number of each.
func (s *Scanner) Scan() (found, lost int) {
	current := s.Candidates()

	for _, c := range current {
		if slices.Contains(s.tracked, c) {
			continue
		}
		s.tracked = append(s.tracked, c)
		found++
		s.logger.Info("discovery: surface found", "type", locator.TypeName(c))
		if s.handler != nil {
			s.handler.Found(c)
		}
	}

	kept := s.tracked[:0]
	var gone []host.Component
	for _, c := range s.tracked {
		if slices.Contains(current, c) {
			kept = append(kept, c)
		} else {
			gone = append(gone, c)
		}
	}
	clear(s.tracked[len(kept):])
	s.tracked = kept

	for _, c := range gone {
		lost++
		s.logger.Info("discovery: surface lost", "type", locator.TypeName(c))
		if s.handler != nil {
			s.handler.Lost(c)
		}
	}
	return found, lost
}

// Tracked returns the surfaces reported as found and not yet lost.
func (s *Scanner) Tracked() []host.Component {
	return slices.Clone(s.tracked)
}

// Reset forgets every tracked surface without notifying the handler.
func (s *Scanner) Reset() {
	s.tracked = nil
}

// Start scans once and then every interval on sched. Each periodic pass
// runs the WithBeforeScan hook first. Stop the returned timer to end
// periodic scanning.
func (s *Scanner) Start(sched host.Scheduler, interval time.Duration) host.Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	pass := func() {
		if s.before != nil {
			s.before()
		}
		s.Scan()
	}
	pass()
	return sched.Every(interval, pass)
}
