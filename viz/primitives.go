package viz

import "github.com/panyam/numcards/color"

// Primitive is one drawing operation recorded by a Canvas. Later primitives
// draw over earlier ones.
type Primitive interface {
	primitive()
}

// LineStyle selects how strokes are drawn.
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
)

// Anchor is the horizontal alignment of a Text.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Baseline is the vertical alignment of a Text.
type Baseline int

const (
	BaselineAuto Baseline = iota
	BaselineMiddle
)

// Rect is a filled rectangle.
type Rect struct {
	X, Y, W, H float64
	Fill       color.RGB
}

// Segment is a straight stroked line.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Stroke         color.RGB
	Width          float64
}

// Path is a stroked polyline with round caps and joins.
type Path struct {
	Points []PixelPoint
	Stroke color.RGB
	Width  float64
	Style  LineStyle
}

// Circle is a filled dot.
type Circle struct {
	CX, CY, R float64
	Fill      color.RGB
}

// Text is a single line of text.
type Text struct {
	X, Y     float64
	Content  string
	Fill     color.RGB
	Size     float64
	Bold     bool
	Anchor   Anchor
	Baseline Baseline
	Opacity  float64 // 0 means opaque
}

func (Rect) primitive()    {}
func (Segment) primitive() {}
func (Path) primitive()    {}
func (Circle) primitive()  {}
func (Text) primitive()    {}

// Document is a finished drawing over the box 0..Width x 0..Height.
type Document struct {
	Viewport   Viewport
	Primitives []Primitive
}
