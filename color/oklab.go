// Package color derives chart palettes from a single theme color.
//
// Colors are converted between device sRGB, linear RGB, OKLab and its
// cylindrical form (lightness, chroma, hue). Palette colors are produced by
// fixing a lightness and searching downwards in chroma until the color fits
// the sRGB gamut.
package color

import (
	"fmt"
	"math"
)

// RGB is an sRGB triple with channels nominally in [0,1].
type RGB struct {
	R, G, B float64
}

// Lab is a color in the OKLab perceptual space.
type Lab struct {
	L, A, B float64
}

// LCh is the cylindrical form of Lab. H is in degrees.
type LCh struct {
	L, C, H float64
}

// FromBytes builds an RGB from 0..255 channels.
func FromBytes(r, g, b uint8) RGB {
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ToLinear applies the inverse sRGB transfer curve to one channel.
// Negative inputs keep their sign.
func ToLinear(c float64) float64 {
	abs := math.Abs(c)
	if abs <= 0.04045 {
		return c / 12.92
	}
	return sign(c) * math.Pow((abs+0.055)/1.055, 2.4)
}

// FromLinear applies the sRGB transfer curve to one linear channel.
func FromLinear(c float64) float64 {
	abs := math.Abs(c)
	if abs > 0.0031308 {
		return sign(c) * (1.055*math.Pow(abs, 1/2.4) - 0.055)
	}
	return c * 12.92
}

func sign(c float64) float64 {
	if c < 0 {
		return -1
	}
	return 1
}

// Linear returns the linear-light version of an sRGB color.
func (c RGB) Linear() RGB {
	return RGB{R: ToLinear(c.R), G: ToLinear(c.G), B: ToLinear(c.B)}
}

// Encode is the inverse of Linear.
func (c RGB) Encode() RGB {
	return RGB{R: FromLinear(c.R), G: FromLinear(c.G), B: FromLinear(c.B)}
}

// LinearToLab converts linear RGB to OKLab.
func LinearToLab(c RGB) Lab {
	l := math.Cbrt(0.412221469470763*c.R + 0.5363325372617348*c.G + 0.0514459932675022*c.B)
	m := math.Cbrt(0.2119034958178252*c.R + 0.6806995506452344*c.G + 0.1073969535369406*c.B)
	s := math.Cbrt(0.0883024591900564*c.R + 0.2817188391361215*c.G + 0.6299787016738222*c.B)

	return Lab{
		L: 0.210454268309314*l + 0.7936177747023054*m - 0.0040720430116193*s,
		A: 1.9779985324311684*l - 2.4285922420485799*m + 0.450593709617411*s,
		B: 0.0259040424655478*l + 0.7827717124575296*m - 0.8086757549230774*s,
	}
}

// LabToLinear converts OKLab to linear RGB.
func LabToLinear(c Lab) RGB {
	l := math.Pow(c.L+0.3963377773761749*c.A+0.2158037573099136*c.B, 3)
	m := math.Pow(c.L-0.1055613458156586*c.A-0.0638541728258133*c.B, 3)
	s := math.Pow(c.L-0.0894841775298119*c.A-1.2914855480194092*c.B, 3)

	return RGB{
		R: 4.0767416360759574*l - 3.3077115392580616*m + 0.2309699031821044*s,
		G: -1.2684379732850317*l + 2.6097573492876887*m - 0.3413193760026573*s,
		B: -0.0041960761386756*l - 0.7034186179359362*m + 1.7076146940746117*s,
	}
}

// RGBToLab converts sRGB to OKLab.
func RGBToLab(c RGB) Lab { return LinearToLab(c.Linear()) }

// LabToRGB converts OKLab to sRGB. The result may be out of gamut.
func LabToRGB(c Lab) RGB { return LabToLinear(c).Encode() }

// LCh returns the cylindrical form of c.
func (c Lab) LCh() LCh {
	return LCh{
		L: c.L,
		C: math.Sqrt(c.A*c.A + c.B*c.B),
		H: math.Atan2(c.B, c.A) * 180 / math.Pi,
	}
}

// Lab returns the Cartesian form of c.
func (c LCh) Lab() Lab {
	rad := c.H * math.Pi / 180
	return Lab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// RGBToLCh converts sRGB to OKLCh.
func RGBToLCh(c RGB) LCh { return RGBToLab(c).LCh() }

// LChToRGB converts OKLCh to sRGB. The result may be out of gamut.
func LChToRGB(c LCh) RGB { return LabToRGB(c.Lab()) }

// InGamut reports whether every channel lies in [0,1].
func (c RGB) InGamut() bool {
	return 0 <= c.R && c.R <= 1 && 0 <= c.G && c.G <= 1 && 0 <= c.B && c.B <= 1
}

// Bytes returns the channels scaled to 0..255 and rounded.
// Out of range channels are clamped.
func (c RGB) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// String formats c as a CSS/SVG device color, e.g. "rgb(172, 228, 68)".
func (c RGB) String() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
