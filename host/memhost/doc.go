// Package memhost is an in-memory implementation of the host boundary.
//
// It provides a container tree ([Panel]), decorator layers ([Factory],
// [Layer]), a terminal view with private cursor fields ([TerminalPanel]), an
// editor view with soft wraps ([EditorView]), an editor registry, a caret
// color scheme, and a manual-clock scheduler ([Loop]).
//
// Everything runs on the caller's goroutine. Faults can be injected into
// Panel and Factory to exercise rollback paths.
package memhost

import "errors"

var (
	// ErrHasParent is returned when inserting a component that still has
	// a parent.
	ErrHasParent = errors.New("memhost: component already has a parent")

	// ErrNotChild is returned when removing a component that is not a
	// child of the container.
	ErrNotChild = errors.New("memhost: not a child")

	// ErrIndex is returned for an out-of-range insert index.
	ErrIndex = errors.New("memhost: index out of range")
)
