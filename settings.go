package focustime

import (
	"fmt"
	"math"
	"time"

	"github.com/sergunya/focus-time/host"
	"github.com/sergunya/focus-time/overlay"
)

// MaxIconScale bounds Settings.IconScale.
const MaxIconScale = 4.0

// Settings is the user configuration broadcast to every overlay.
// Persistence is the host's concern.
type Settings struct {
	Enabled bool

	// Color tints the icon and the editor caret.
	Color Color

	DarkenEnabled  bool
	DarkenDelay    time.Duration
	DarkenMaxAlpha float64

	// IconScale is the icon size relative to the caret line height.
	IconScale float64

	// Modifier is the key whose hold darkens the surface.
	Modifier host.Key
}

// DefaultSettings returns the settings used on first start.
func DefaultSettings() Settings {
	p := overlay.DefaultParams()
	return Settings{
		Enabled:        true,
		Color:          White,
		DarkenEnabled:  false,
		DarkenDelay:    p.DarkenDelay,
		DarkenMaxAlpha: p.DarkenMaxAlpha,
		IconScale:      overlay.DefaultIconScale,
		Modifier:       host.KeyControl,
	}
}

// Validate reports the first invalid field as a *SettingsError.
func (s Settings) Validate() error {
	if s.DarkenDelay < 0 {
		return &SettingsError{Field: "DarkenDelay", Reason: "must not be negative"}
	}
	if s.DarkenMaxAlpha < 0 || s.DarkenMaxAlpha > 1 || math.IsNaN(s.DarkenMaxAlpha) {
		return &SettingsError{Field: "DarkenMaxAlpha", Reason: fmt.Sprintf("%v not in [0, 1]", s.DarkenMaxAlpha)}
	}
	if s.IconScale <= 0 || s.IconScale > MaxIconScale {
		return &SettingsError{Field: "IconScale", Reason: fmt.Sprintf("%v not in (0, %v]", s.IconScale, MaxIconScale)}
	}
	if !s.Modifier.IsModifier() {
		return &SettingsError{Field: "Modifier", Reason: fmt.Sprintf("%v is not a modifier key", s.Modifier)}
	}
	return nil
}

// params converts s to the overlay parameters.
func (s Settings) params(terminal bool) overlay.Params {
	p := overlay.Params{
		DarkenDelay:    s.DarkenDelay,
		DarkenMaxAlpha: s.DarkenMaxAlpha,
		Sizing:         overlay.LineHeightSizing(s.IconScale),
	}
	if terminal {
		p.Sizing = overlay.TerminalSizing()
	}
	return p
}
