// Package focustime draws a custom icon at the caret of editor and terminal
// surfaces and dims a surface while a modifier key is held.
//
// # Overview
//
// A [Service] discovers terminal surfaces by walking container trees,
// receives editors from the host's editor registry, and wraps every surface
// in a decorator layer whose paint hook draws the overlay. The host is
// reached only through the interfaces of the host package; host/memhost is
// an in-memory implementation used by tests and the gophercursor command.
//
// # Quick Start
//
//	svc, err := focustime.New(focustime.DefaultSettings(),
//	    focustime.WithScheduler(uiLoop),
//	    focustime.WithLayerFactory(layers),
//	    focustime.WithTerminalRoots(terminalToolWindow),
//	    focustime.WithEditors(editors),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := svc.Start(); err != nil {
//	    return err
//	}
//	defer svc.Close()
//
//	svc.SetColor(focustime.Red)
//
// # Architecture
//
// The library is organized into:
//   - locator, cell: caret rectangle from editor APIs or from terminal
//     fields found by reflection
//   - icon: icon asset, placeholder, resized and tinted variants
//   - overlay: the paint hook (dimming, icon drawing)
//   - attach: transactional wrap and unwrap of a surface
//   - discovery: periodic scan for terminal surfaces
//   - modkey: held state of the darken modifier
//
// # Threading
//
// Everything runs on the host UI thread through [host.Scheduler]. The
// library starts no goroutines and takes no locks.
package focustime

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
