package modkey

import (
	"testing"
	"time"

	"github.com/sergunya/focus-time/host"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTracker(t *testing.T) (*Tracker, *clock, *int) {
	t.Helper()
	c := &clock{t: time.Unix(1000, 0)}
	repaints := 0
	return New(host.KeyControl, c.now, func() { repaints++ }), c, &repaints
}

func press(k host.Key) host.KeyEvent   { return host.KeyEvent{Action: host.KeyPressed, Key: k} }
func release(k host.Key) host.KeyEvent { return host.KeyEvent{Action: host.KeyReleased, Key: k} }

func TestPressRelease(t *testing.T) {
	tr, c, repaints := newTracker(t)

	if !tr.Handle(press(host.KeyControl)) {
		t.Fatal("press of tracked key not handled")
	}
	since, ok := tr.Held()
	if !ok || !since.Equal(c.t) {
		t.Errorf("Held() = %v, %v; want %v, true", since, ok, c.t)
	}
	if *repaints != 1 {
		t.Errorf("repaints = %d, want 1", *repaints)
	}

	c.t = c.t.Add(750 * time.Millisecond)
	if got := tr.Elapsed(c.t); got != 750*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 750ms", got)
	}

	tr.Handle(release(host.KeyControl))
	if _, ok := tr.Held(); ok {
		t.Error("expected modifier to be released")
	}
	if got := tr.Elapsed(c.t); got != 0 {
		t.Errorf("Elapsed() after release = %v, want 0", got)
	}
	if *repaints != 2 {
		t.Errorf("repaints = %d, want 2", *repaints)
	}
}

func TestReentrantPressIsNoop(t *testing.T) {
	tr, c, repaints := newTracker(t)
	tr.Handle(press(host.KeyControl))
	first, _ := tr.Held()

	c.t = c.t.Add(time.Second)
	tr.Handle(press(host.KeyControl))
	second, _ := tr.Held()

	if !first.Equal(second) {
		t.Errorf("auto-repeat press moved heldSince from %v to %v", first, second)
	}
	if *repaints != 1 {
		t.Errorf("repaints = %d, want 1", *repaints)
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	tr, _, repaints := newTracker(t)
	if tr.Handle(press(host.KeyAlt)) {
		t.Error("untracked key should not be handled")
	}
	if tr.Handle(host.FocusEvent{Gained: true}) {
		t.Error("non-key event should not be handled")
	}
	if _, ok := tr.Held(); ok || *repaints != 0 {
		t.Error("state changed on unrelated events")
	}
}

func TestEventTimestampWins(t *testing.T) {
	tr, _, _ := newTracker(t)
	when := time.Unix(5, 0)
	tr.Handle(host.KeyEvent{Action: host.KeyPressed, Key: host.KeyControl, When: when})
	if since, _ := tr.Held(); !since.Equal(when) {
		t.Errorf("heldSince = %v, want %v", since, when)
	}
}

func TestResetClearsAndRepaints(t *testing.T) {
	tr, _, repaints := newTracker(t)
	tr.Handle(press(host.KeyControl))
	tr.Reset()
	if _, ok := tr.Held(); ok {
		t.Error("Reset did not clear held state")
	}
	if *repaints != 2 {
		t.Errorf("repaints = %d, want 2", *repaints)
	}
}

func TestSetKey(t *testing.T) {
	tr, _, _ := newTracker(t)
	tr.Handle(press(host.KeyControl))
	tr.SetKey(host.KeyAlt)
	if _, ok := tr.Held(); ok {
		t.Error("changing key must clear held state")
	}
	if tr.Key() != host.KeyAlt {
		t.Errorf("Key() = %v, want alt", tr.Key())
	}
	if !tr.Handle(press(host.KeyAlt)) {
		t.Error("new key not tracked")
	}
}
