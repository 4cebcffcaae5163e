package host

import "time"

// Event is a UI event delivered to a LayerUI.
type Event interface {
	// Category returns the event category bit.
	Category() EventMask
}

// Key identifies a keyboard key.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyShift:     "shift",
	KeyControl:   "ctrl",
	KeyAlt:       "alt",
	KeyMeta:      "meta",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
}

// String returns the lower-case key name.
func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKey maps a key name back to a Key. It reports false for unknown names.
func ParseKey(name string) (Key, bool) {
	for k, s := range keyNames {
		if s == name {
			return k, true
		}
	}
	return KeyNone, false
}

// IsModifier reports whether k is a modifier key.
func (k Key) IsModifier() bool {
	switch k {
	case KeyShift, KeyControl, KeyAlt, KeyMeta:
		return true
	}
	return false
}

// KeyAction distinguishes press from release.
type KeyAction uint8

const (
	KeyPressed KeyAction = iota + 1
	KeyReleased
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Action KeyAction
	Key    Key
	Rune   rune
	When   time.Time
}

// Category implements Event.
func (KeyEvent) Category() EventMask { return KeyEvents }

// FocusEvent reports focus changes.
type FocusEvent struct {
	Gained bool
}

// Category implements Event.
func (FocusEvent) Category() EventMask { return FocusEvents }
