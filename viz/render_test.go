package viz

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func sampleDocument() *Document {
	c := NewCanvas(Viewport{Width: 120, Height: 80}).
		SetWindow(Domain{Min: 0, Max: 10}, Range{Min: 0, Max: 10})
	c.Background(ink)
	c.Axis(AxisX, 5, 5, 0, ink, nil)
	c.Line([]Sample{{0, 1}, {5, 9}, {10, 4}}, ink, Dashed, 2)
	c.Points([]Sample{{5, 9}}, ink, 3)
	c.Title("a < b & c", ink)
	c.ValueLabel(PlaceholderLabel("NoData"), ink, 0.6)
	return c.Document()
}

func TestSVGRenderer(t *testing.T) {
	r := &SVGRenderer{}
	svg := r.String(sampleDocument())

	assert.Assert(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 80"`))
	assert.Assert(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Assert(t, is.Contains(svg, `<rect x="0" y="0" width="120" height="80" fill="rgb(51, 102, 153)" />`))
	assert.Assert(t, is.Contains(svg, `<line x1="0" y1="40" x2="120" y2="40"`))
	assert.Assert(t, is.Contains(svg, `<path d="M0 72 L60 8 L120 48"`))
	assert.Assert(t, is.Contains(svg, `stroke-dasharray="5,5"`))
	assert.Assert(t, is.Contains(svg, `<circle cx="60" cy="8" r="3"`))
	assert.Assert(t, is.Contains(svg, `>a &lt; b &amp; c</text>`))
	assert.Assert(t, is.Contains(svg, `font-size="48" font-weight="bold" text-anchor="middle" dominant-baseline="middle" opacity="0.3">NoData</text>`))
	assert.Equal(t, r.ContentType(), "image/svg+xml")
}

func TestSVGRendererFontFamily(t *testing.T) {
	r := &SVGRenderer{FontFamily: "Inter"}
	svg := r.String(&Document{Viewport: Viewport{Width: 1, Height: 1}})
	assert.Assert(t, is.Contains(svg, `font-family="Inter">`))
}

func TestPNGRenderer(t *testing.T) {
	r := &PNGRenderer{}
	var buf bytes.Buffer
	assert.NilError(t, r.Render(&buf, sampleDocument()))

	img, err := png.Decode(&buf)
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 120)
	assert.Equal(t, img.Bounds().Dy(), 80)

	// background fills the corner
	cr, cg, cb, _ := img.At(1, 79).RGBA()
	near := func(got uint32, want int) bool { d := int(got>>8) - want; return d >= -1 && d <= 1 }
	assert.Assert(t, near(cr, 51), "red %d", cr>>8)
	assert.Assert(t, near(cg, 102), "green %d", cg>>8)
	assert.Assert(t, near(cb, 153), "blue %d", cb>>8)
}

func TestPNGRendererRejectsEmptyViewport(t *testing.T) {
	r := &PNGRenderer{}
	err := r.Render(&bytes.Buffer{}, &Document{})
	assert.ErrorContains(t, err, "cannot rasterize")
}

func TestRendererFor(t *testing.T) {
	r, err := RendererFor("PNG")
	assert.NilError(t, err)
	assert.Equal(t, r.ContentType(), "image/png")

	r, err = RendererFor("")
	assert.NilError(t, err)
	assert.Equal(t, r.ContentType(), "image/svg+xml")

	_, err = RendererFor("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
