package focustime

import (
	"fmt"
	"image/color"
)

// Color is a packed 0xAARRGGBB color, the form settings are stored in.
type Color uint32

// Common colors
const (
	White Color = 0xFFFFFFFF
	Black Color = 0xFF000000
	Red   Color = 0xFFFF0000
)

// ARGB packs the four channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// NRGBA converts c to a non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(c >> 24),
	}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// String formats c as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ParseColor parses "RGB", "RRGGBB" or "AARRGGBB", with an optional leading
// '#'. Colors without alpha are opaque.
func ParseColor(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var a, r, g, b uint32
	a = 255
	ok := true
	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // AARRGGBB
		ok = parseHex(hex[0:2], &a) && parseHex(hex[2:4], &r) &&
			parseHex(hex[4:6], &g) && parseHex(hex[6:8], &b)
	default:
		ok = false
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return ARGB(uint8(a), uint8(r), uint8(g), uint8(b)), nil
}

// parseHex accumulates the hex digits of s into val. It reports false on a
// non-hex character.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
