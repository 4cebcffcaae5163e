package host

import "time"

// Timer is a repeating callback registered with a Scheduler.
type Timer interface {
	// Stop cancels further invocations. Stop is idempotent.
	Stop()
}

// Scheduler runs callbacks on the UI thread.
type Scheduler interface {
	// Now returns the UI clock.
	Now() time.Time

	// Every runs fn every d until the returned timer is stopped.
	Every(d time.Duration, fn func()) Timer

	// Post runs fn once, after the current event has been processed.
	Post(fn func())
}
