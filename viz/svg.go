package viz

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
)

// SVGRenderer writes documents as standalone SVG.
type SVGRenderer struct {
	// FontFamily is applied to the root element when set.
	FontFamily string
}

func (r *SVGRenderer) ContentType() string { return "image/svg+xml" }

// Render writes doc to w.
func (r *SVGRenderer) Render(w io.Writer, doc *Document) error {
	var svg bytes.Buffer
	vp := doc.Viewport
	svg.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d"`,
		vp.Width, vp.Height, vp.Width, vp.Height))
	if r.FontFamily != "" {
		svg.WriteString(fmt.Sprintf(` font-family="%s"`, html.EscapeString(r.FontFamily)))
	}
	svg.WriteString(">\n")
	for _, p := range doc.Primitives {
		writePrimitive(&svg, p)
	}
	svg.WriteString("</svg>\n")
	_, err := w.Write(svg.Bytes())
	return err
}

// String renders doc and returns the SVG text.
func (r *SVGRenderer) String(doc *Document) string {
	var b strings.Builder
	_ = r.Render(&b, doc)
	return b.String()
}

func writePrimitive(svg *bytes.Buffer, p Primitive) {
	switch p := p.(type) {
	case Rect:
		svg.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" />`+"\n",
			num(p.X), num(p.Y), num(p.W), num(p.H), p.Fill))
	case Segment:
		svg.WriteString(fmt.Sprintf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" />`+"\n",
			num(p.X1), num(p.Y1), num(p.X2), num(p.Y2), p.Stroke, num(p.Width)))
	case Path:
		parts := make([]string, len(p.Points))
		for i, pt := range p.Points {
			parts[i] = num(pt.X) + " " + num(pt.Y)
		}
		dash := ""
		if p.Style == Dashed {
			dash = ` stroke-dasharray="5,5"`
		}
		svg.WriteString(fmt.Sprintf(`  <path d="M%s" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" fill="none"%s />`+"\n",
			strings.Join(parts, " L"), p.Stroke, num(p.Width), dash))
	case Circle:
		svg.WriteString(fmt.Sprintf(`  <circle cx="%s" cy="%s" r="%s" fill="%s" />`+"\n",
			num(p.CX), num(p.CY), num(p.R), p.Fill))
	case Text:
		svg.WriteString(fmt.Sprintf(`  <text x="%s" y="%s" fill="%s" font-size="%s"`, num(p.X), num(p.Y), p.Fill, num(p.Size)))
		if p.Bold {
			svg.WriteString(` font-weight="bold"`)
		}
		switch p.Anchor {
		case AnchorMiddle:
			svg.WriteString(` text-anchor="middle"`)
		case AnchorEnd:
			svg.WriteString(` text-anchor="end"`)
		}
		if p.Baseline == BaselineMiddle {
			svg.WriteString(` dominant-baseline="middle"`)
		}
		if p.Opacity > 0 && p.Opacity < 1 {
			svg.WriteString(fmt.Sprintf(` opacity="%s"`, num(p.Opacity)))
		}
		svg.WriteString(">" + html.EscapeString(p.Content) + "</text>\n")
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string { return formatValue(v, 2) }
