package focustime

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings is matched by every SettingsError.
	ErrInvalidSettings = errors.New("focustime: invalid settings")

	// ErrInvalidColor is returned by ParseColor.
	ErrInvalidColor = errors.New("focustime: invalid color")

	// ErrNoScheduler is returned by New without WithScheduler.
	ErrNoScheduler = errors.New("focustime: no scheduler")

	// ErrNoLayerFactory is returned by New without WithLayerFactory.
	ErrNoLayerFactory = errors.New("focustime: no layer factory")

	// ErrClosed is returned when starting a closed service.
	ErrClosed = errors.New("focustime: service closed")
)

// SettingsError describes an invalid settings field.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("focustime: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidSettings) hold.
func (e *SettingsError) Unwrap() error { return ErrInvalidSettings }
