package imagepkg

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// FallbackColor is used wherever a color string cannot be decoded.
var FallbackColor = RGB{R: 155, G: 77, B: 115}

var (
	white = RGB{R: 0xff, G: 0xff, B: 0xff}
)

// ParseHexColor decodes "#RRGGBB" (hash optional). Anything else yields FallbackColor.
func ParseHexColor(s string) RGB {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return FallbackColor
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return FallbackColor
	}
	return RGB{R: b[0], G: b[1], B: b[2]}
}

// NRGBA returns the color with the given alpha.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
