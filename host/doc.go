// Package host defines the boundary between the caret overlay engine and the
// UI toolkit that owns the surfaces it decorates.
//
// The engine never creates or destroys surfaces. It observes a tree of
// [Component] and [Container] values, wraps selected leaves in a [Layer]
// obtained from a [LayerFactory], and draws from inside the layer's
// [LayerUI] paint callback.
//
// # Threading
//
// Every method in this package is called from the host's single UI thread.
// Timers created through [Scheduler] fire on that same thread, so none of the
// interfaces need to be safe for concurrent use.
//
// # Surfaces
//
// Two surface shapes are understood:
//
//   - [Editor]: exposes a caret model and a position-to-pixel mapping.
//   - Opaque views (terminal panels) that only expose [FontMetricsProvider].
//     Their caret is recovered by introspection, see package locator.
//
// An in-memory implementation suitable for tests and demos lives in
// package memhost.
package host
