package color

// Lightness targets for the derived palette.
const (
	TitleLightness      = 0.6
	NumberLightness     = 0.6
	LabelLightness      = 0.7
	BackgroundLightness = 0.95
)

// Palette is the set of colors a card is drawn with. Label and Line share
// the same lightness.
type Palette struct {
	Title      RGB `json:"title"`
	Number     RGB `json:"number"`
	Label      RGB `json:"label"`
	Line       RGB `json:"line"`
	Background RGB `json:"background"`
}

// Derive computes a palette from a theme color by keeping its chroma and hue
// and moving it to fixed lightness levels. It is cheap and stateless, so
// callers recompute it on every render.
func Derive(theme RGB) Palette {
	t := RGBToLCh(theme)
	at := func(l float64) RGB {
		rgb, _ := GamutSafe(LCh{L: l, C: t.C, H: t.H})
		return rgb
	}
	label := at(LabelLightness)
	return Palette{
		Title:      at(TitleLightness),
		Number:     at(NumberLightness),
		Label:      label,
		Line:       label,
		Background: at(BackgroundLightness),
	}
}

// Strings returns the palette as device color strings keyed by role.
func (p Palette) Strings() map[string]string {
	return map[string]string{
		"title":      p.Title.String(),
		"number":     p.Number.String(),
		"label":      p.Label.String(),
		"line":       p.Line.String(),
		"background": p.Background.String(),
	}
}
