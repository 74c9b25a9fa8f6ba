package color

import (
	"fmt"
	"strconv"
	"strings"
)

// ChromaStep is the decrement used when searching for an in-gamut chroma.
var ChromaStep = 0.01

// Fallback is returned when a color cannot be brought into gamut even at
// zero chroma. It is deliberately loud.
var Fallback = RGB{R: 1, G: 0, B: 1}

// GamutSafe holds lightness and hue fixed and lowers chroma from c.C in steps
// of ChromaStep until the color fits sRGB. Chroma 0 is always tried last.
// It returns Fallback and false if no chroma works.
func GamutSafe(c LCh) (RGB, bool) {
	if c.C > 0 && ChromaStep > 0 {
		for i := 0; ; i++ {
			chroma := c.C - float64(i)*ChromaStep
			if chroma <= 0 {
				break
			}
			if rgb := LChToRGB(LCh{L: c.L, C: chroma, H: c.H}); rgb.InGamut() {
				return rgb, true
			}
		}
	}
	if rgb := LChToRGB(LCh{L: c.L, C: 0, H: c.H}); rgb.InGamut() {
		return rgb, true
	}
	return Fallback, false
}

// GamutSafeString is GamutSafe formatted as a device color string.
func GamutSafeString(c LCh) string {
	rgb, _ := GamutSafe(c)
	return rgb.String()
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return FromBytes(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
