package viz

import (
	"fmt"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// PNGRenderer rasterizes documents with gg. Text uses the Go fonts.
// It is safe for concurrent use.
type PNGRenderer struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

var (
	fontsOnce            sync.Once
	regularFont, boldFnt *opentype.Font
	fontErr              error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontErr = opentype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		boldFnt, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

func (r *PNGRenderer) ContentType() string { return "image/png" }

// Render rasterizes doc and writes it to w as PNG.
func (r *PNGRenderer) Render(w io.Writer, doc *Document) error {
	if doc.Viewport.Width <= 0 || doc.Viewport.Height <= 0 {
		return fmt.Errorf("viz: cannot rasterize a %dx%d viewport", doc.Viewport.Width, doc.Viewport.Height)
	}
	// faces keep scratch buffers, so renders are serialized
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(doc.Viewport.Width, doc.Viewport.Height)
	for _, p := range doc.Primitives {
		if err := r.draw(dc, p); err != nil {
			return err
		}
	}
	return dc.EncodePNG(w)
}

func (r *PNGRenderer) draw(dc *gg.Context, p Primitive) error {
	switch p := p.(type) {
	case Rect:
		dc.SetRGB(p.Fill.R, p.Fill.G, p.Fill.B)
		dc.DrawRectangle(p.X, p.Y, p.W, p.H)
		dc.Fill()
	case Segment:
		dc.SetRGB(p.Stroke.R, p.Stroke.G, p.Stroke.B)
		dc.SetLineWidth(p.Width)
		dc.SetDash()
		dc.DrawLine(p.X1, p.Y1, p.X2, p.Y2)
		dc.Stroke()
	case Path:
		dc.SetRGB(p.Stroke.R, p.Stroke.G, p.Stroke.B)
		dc.SetLineWidth(p.Width)
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
		if p.Style == Dashed {
			dc.SetDash(5, 5)
		} else {
			dc.SetDash()
		}
		for i, pt := range p.Points {
			if i == 0 {
				dc.MoveTo(pt.X, pt.Y)
			} else {
				dc.LineTo(pt.X, pt.Y)
			}
		}
		dc.Stroke()
	case Circle:
		dc.SetRGB(p.Fill.R, p.Fill.G, p.Fill.B)
		dc.DrawCircle(p.CX, p.CY, p.R)
		dc.Fill()
	case Text:
		face, err := r.face(p.Size, p.Bold)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		alpha := 1.0
		if p.Opacity > 0 {
			alpha = p.Opacity
		}
		dc.SetRGBA(p.Fill.R, p.Fill.G, p.Fill.B, alpha)
		ax, ay := 0.0, 0.0
		switch p.Anchor {
		case AnchorMiddle:
			ax = 0.5
		case AnchorEnd:
			ax = 1
		}
		if p.Baseline == BaselineMiddle {
			ay = 0.5
		}
		dc.DrawStringAnchored(p.Content, p.X, p.Y, ax, ay)
	}
	return nil
}

// face must be called with r.mu held.
func (r *PNGRenderer) face(size float64, bold bool) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("viz: loading fonts: %w", err)
	}
	if size <= 0 {
		size = LabelFontSize
	}
	key := faceKey{size: size, bold: bold}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	src := regularFont
	if bold {
		src = boldFnt
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("viz: font face %.1fpt: %w", size, err)
	}
	if r.faces == nil {
		r.faces = make(map[faceKey]font.Face)
	}
	r.faces[key] = f
	return f, nil
}
