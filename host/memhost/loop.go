package memhost

import (
	"time"

	"github.com/sergunya/focus-time/host"
)

// Loop is a host.Scheduler driven by a manual clock. Nothing runs until
// Advance or RunPending is called.
type Loop struct {
	now     time.Time
	timers  []*loopTimer
	pending []func()
}

type loopTimer struct {
	every   time.Duration
	next    time.Time
	fn      func()
	stopped bool
}

func (t *loopTimer) Stop() { t.stopped = true }

// NewLoop creates a loop whose clock starts at start.
func NewLoop(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now implements host.Scheduler.
func (l *Loop) Now() time.Time { return l.now }

// Every implements host.Scheduler. Non-positive periods are treated as one
// millisecond.
func (l *Loop) Every(d time.Duration, fn func()) host.Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &loopTimer{every: d, next: l.now.Add(d), fn: fn}
	l.timers = append(l.timers, t)
	return t
}

// Post implements host.Scheduler.
func (l *Loop) Post(fn func()) {
	l.pending = append(l.pending, fn)
}

// Timers returns the number of live timers.
func (l *Loop) Timers() int {
	n := 0
	for _, t := range l.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// RunPending runs posted callbacks, including those posted while running.
func (l *Loop) RunPending() {
	for len(l.pending) > 0 {
		fn := l.pending[0]
		l.pending = l.pending[1:]
		fn()
	}
}

// Advance moves the clock forward by d, firing due timers in time order and
// running posted callbacks after each one.
func (l *Loop) Advance(d time.Duration) {
	end := l.now.Add(d)
	l.RunPending()
	for {
		t := l.nextDue(end)
		if t == nil {
			break
		}
		l.now = t.next
		t.next = t.next.Add(t.every)
		t.fn()
		l.RunPending()
	}
	l.now = end
	l.compact()
}

func (l *Loop) nextDue(end time.Time) *loopTimer {
	var due *loopTimer
	for _, t := range l.timers {
		if t.stopped || t.next.After(end) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func (l *Loop) compact() {
	live := l.timers[:0]
	for _, t := range l.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	clear(l.timers[len(live):])
	l.timers = live
}
