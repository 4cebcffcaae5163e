// Package modkey tracks how long a modifier key has been held on a surface.
package modkey

import (
	"time"

	"github.com/sergunya/focus-time/host"
)

// Tracker derives a held/not-held timeline for one modifier key from the
// key events of a single surface.
type Tracker struct {
	key     host.Key
	now     func() time.Time
	repaint func()

	held      bool
	heldSince time.Time
}

// New creates a Tracker for key. now supplies timestamps for events that
// carry none; repaint is called whenever the held state changes.
func New(key host.Key, now func() time.Time, repaint func()) *Tracker {
	if now == nil {
		now = time.Now
	}
	if repaint == nil {
		repaint = func() {}
	}
	return &Tracker{key: key, now: now, repaint: repaint}
}

// Key returns the tracked modifier.
func (t *Tracker) Key() host.Key {
	return t.key
}

// SetKey changes the tracked modifier and clears any held state.
func (t *Tracker) SetKey(k host.Key) {
	if k == t.key {
		return
	}
	t.key = k
	t.Reset()
}

// Handle consumes ev. It reports whether ev concerned the tracked key.
func (t *Tracker) Handle(ev host.Event) bool {
	ke, ok := ev.(host.KeyEvent)
	if !ok || ke.Key != t.key {
		return false
	}
	switch ke.Action {
	case host.KeyPressed:
		if t.held {
			return true
		}
		when := ke.When
		if when.IsZero() {
			when = t.now()
		}
		t.held = true
		t.heldSince = when
		t.repaint()
	case host.KeyReleased:
		t.held = false
		t.heldSince = time.Time{}
		t.repaint()
	default:
		return false
	}
	return true
}

// Held returns the time the modifier went down, if it is held.
func (t *Tracker) Held() (since time.Time, ok bool) {
	return t.heldSince, t.held
}

// Elapsed returns how long the modifier has been held at now.
// It is zero when the modifier is up.
func (t *Tracker) Elapsed(now time.Time) time.Duration {
	if !t.held {
		return 0
	}
	return max(now.Sub(t.heldSince), 0)
}

// Reset force-clears the held state and repaints once.
func (t *Tracker) Reset() {
	t.held = false
	t.heldSince = time.Time{}
	t.repaint()
}
