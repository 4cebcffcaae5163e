// Package overlay paints the caret icon and the modifier dimming on top of a
// wrapped surface.
package overlay

import (
	"image/color"
	"math"
	"time"

	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/locator"
)

// RampDuration is how long the dimming takes to reach its maximum once the
// start delay has passed.
const RampDuration = 2000 * time.Millisecond

// MinIconSize is the smallest icon drawn, in pixels.
const MinIconSize = 8

// DefaultIconScale is the icon size relative to the line height.
const DefaultIconScale = 0.95

// State is the per-surface overlay state.
type State struct {
	Enabled       bool
	DarkenEnabled bool
	Color         color.NRGBA

	// Layer is the decorator wrapping the surface, nil while unattached.
	Layer host.Layer
}

// Params are the darken and sizing parameters shared by all overlays.
type Params struct {
	DarkenDelay    time.Duration
	DarkenMaxAlpha float64
	Sizing         Sizing
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		DarkenDelay:    500 * time.Millisecond,
		DarkenMaxAlpha: 0.6,
		Sizing:         LineHeightSizing(DefaultIconScale),
	}
}

// Sizing returns the icon edge length for a caret rectangle.
type Sizing func(r locator.Rect) int

// LineHeightSizing sizes the icon as scale × caret height, at least
// MinIconSize.
func LineHeightSizing(scale float64) Sizing {
	if scale <= 0 {
		scale = DefaultIconScale
	}
	return func(r locator.Rect) int {
		return max(int(math.Round(float64(r.Height)*scale)), MinIconSize)
	}
}

// TerminalSizing scales a 24 px icon by the smaller cell dimension relative
// to 16 px, clamped to [0.75, 2].
func TerminalSizing() Sizing {
	return func(r locator.Rect) int {
		base := float64(min(r.Width, r.Height))
		if base <= 0 {
			base = float64(r.Height)
		}
		scale := min(max(base/16, 0.75), 2.0)
		return int(math.Round(24 * scale))
	}
}

// DarkenAlpha returns the dimming opacity after the modifier has been held
// for elapsed. It is 0 up to delay, then ramps linearly to maxAlpha over
// RampDuration and stays there.
func DarkenAlpha(elapsed, delay time.Duration, maxAlpha float64) float64 {
	maxAlpha = min(maxAlpha, 1)
	if maxAlpha <= 0 || elapsed <= delay {
		return 0
	}
	a := maxAlpha * float64(elapsed-delay) / float64(RampDuration)
	return min(max(a, 0), maxAlpha)
}
