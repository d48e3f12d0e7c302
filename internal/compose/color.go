package compose

import (
	"image/color"
	"strings"
)

// ParseColor decodes #RGB, #RRGGBB, #RRGGBBAA and the keywords
// "transparent" / "none". Anything unparseable falls back to opaque
// white, which matches the default text fill.
func ParseColor(s string) color.NRGBA {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "transparent", "none":
		return color.NRGBA{}
	case "black":
		return color.NRGBA{A: 0xff}
	case "white":
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, g, b := hexNibble(hex[0]), hexNibble(hex[1]), hexNibble(hex[2])
		return color.NRGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}
	case 6:
		return color.NRGBA{R: hexByte(hex[0:2]), G: hexByte(hex[2:4]), B: hexByte(hex[4:6]), A: 0xff}
	case 8:
		return color.NRGBA{R: hexByte(hex[0:2]), G: hexByte(hex[2:4]), B: hexByte(hex[4:6]), A: hexByte(hex[6:8])}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return 0
}

func hexByte(s string) uint8 {
	return hexNibble(s[0])<<4 | hexNibble(s[1])
}
