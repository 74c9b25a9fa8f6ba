package viz

import (
	"strconv"
	"time"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/numcards/color"
)

// Font sizes and offsets used by the card layout.
const (
	TitleFontSize = 16
	LabelFontSize = 12
	TickHalfSize  = 5
	ValueOpacity  = 0.3
)

// AxisKind selects which axis Axis draws.
type AxisKind int

const (
	// AxisX is a horizontal guideline at a fixed value with ticks along time.
	AxisX AxisKind = iota
	// AxisY is a vertical guideline at a fixed time with ticks along values.
	AxisY
)

// LabelValue is what goes in the value slot of a card: a number or a
// placeholder such as "NoData".
type LabelValue struct {
	Number      float64
	Text        string
	Placeholder bool
}

// NumberLabel shows v in its shortest decimal form.
func NumberLabel(v float64) LabelValue {
	return LabelValue{Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// PlaceholderLabel shows s in place of a number.
func PlaceholderLabel(s string) LabelValue {
	return LabelValue{Text: s, Placeholder: true}
}

// String returns the text drawn for l.
func (l LabelValue) String() string { return l.Text }

// Canvas records one chart render. Set the window first, then emit
// primitives in back to front order. A Canvas is not safe for concurrent use.
type Canvas struct {
	viewport Viewport
	domain   Domain
	rng      Range
	loc      *time.Location
	prims    []Primitive
}

// NewCanvas returns an empty canvas for vp with a unit window.
func NewCanvas(vp Viewport) *Canvas {
	return &Canvas{
		viewport: vp,
		domain:   Domain{Min: 0, Max: 1},
		rng:      Range{Min: 0, Max: 1},
		loc:      time.Local,
	}
}

// SetWindow sets the domain and range used to map samples to pixels.
func (c *Canvas) SetWindow(d Domain, r Range) *Canvas {
	c.domain = d
	c.rng = r
	return c
}

// SetLocation sets the time zone used by TimestampLabel.
func (c *Canvas) SetLocation(loc *time.Location) *Canvas {
	if loc != nil {
		c.loc = loc
	}
	return c
}

func (c *Canvas) Viewport() Viewport { return c.viewport }
func (c *Canvas) Domain() Domain     { return c.domain }
func (c *Canvas) Range() Range       { return c.rng }

// MapPoint projects a sample into pixel space. Values grow upwards.
func (c *Canvas) MapPoint(s Sample) PixelPoint {
	return PixelPoint{X: c.mapX(s.Time), Y: c.mapY(s.Value)}
}

func (c *Canvas) mapX(t float64) float64 {
	span := c.domain.Span()
	if span == 0 {
		return 0
	}
	return float64(c.viewport.Width) * (t - c.domain.Min) / span
}

func (c *Canvas) mapY(v float64) float64 {
	span := c.rng.Span()
	if span == 0 {
		return 0
	}
	return float64(c.viewport.Height) * (c.rng.Max - v) / span
}

func (c *Canvas) emit(p Primitive) {
	c.prims = append(c.prims, p)
}

// Document returns a snapshot of everything emitted so far.
func (c *Canvas) Document() *Document {
	prims := make([]Primitive, len(c.prims))
	copy(prims, c.prims)
	return &Document{Viewport: c.viewport, Primitives: prims}
}

// Background fills the whole viewport.
func (c *Canvas) Background(fill color.RGB) {
	c.emit(Rect{W: float64(c.viewport.Width), H: float64(c.viewport.Height), Fill: fill})
}

// Title draws the card title in the top left corner.
func (c *Canvas) Title(text string, fill color.RGB) {
	c.emit(Text{X: 5, Y: 21, Content: text, Fill: fill, Size: TitleFontSize, Bold: true})
}

// ValueLabel draws the large centered value. sizeFraction is the font size
// as a fraction of the viewport height.
func (c *Canvas) ValueLabel(v LabelValue, fill color.RGB, sizeFraction float64) {
	c.emit(Text{
		X:        float64(c.viewport.Width) / 2,
		Y:        float64(c.viewport.Height) / 2,
		Content:  v.String(),
		Fill:     fill,
		Size:     float64(c.viewport.Height) * sizeFraction,
		Bold:     true,
		Anchor:   AnchorMiddle,
		Baseline: BaselineMiddle,
		Opacity:  ValueOpacity,
	})
}

// TimestampLabel draws t (seconds) in the bottom right corner.
func (c *Canvas) TimestampLabel(t float64, fill color.RGB) {
	c.emit(Text{
		X:       float64(c.viewport.Width),
		Y:       float64(c.viewport.Height) - 5,
		Content: unixSeconds(t).In(c.loc).Format("2006/1/2 15:04:05"),
		Fill:    fill,
		Size:    TitleFontSize,
		Anchor:  AnchorEnd,
	})
}

// Caption draws a short note in the bottom left corner.
func (c *Canvas) Caption(text string, fill color.RGB) {
	if text == "" {
		return
	}
	c.emit(Text{X: 5, Y: float64(c.viewport.Height) - 5, Content: text, Fill: fill, Size: LabelFontSize})
}

// Axis draws a guideline plus tick marks and labels every interval,
// aligned to offset. For AxisX, fixed is the value at which the horizontal
// line sits; for AxisY it is the time of the vertical line. A nil format
// uses NumberFormatter(interval).
func (c *Canvas) Axis(kind AxisKind, fixed, interval, offset float64, stroke color.RGB, format func(float64) string) {
	if format == nil {
		format = NumberFormatter(interval)
	}
	w, h := float64(c.viewport.Width), float64(c.viewport.Height)
	switch kind {
	case AxisX:
		y := c.mapY(fixed)
		c.emit(Segment{X1: 0, Y1: y, X2: w, Y2: y, Stroke: stroke, Width: 1})
		for _, t := range TickPositions(c.domain.Min, c.domain.Max, interval, offset) {
			x := c.mapX(t)
			c.emit(Segment{X1: x, Y1: y - TickHalfSize, X2: x, Y2: y + TickHalfSize, Stroke: stroke, Width: 1})
			c.emit(Text{X: x, Y: y - TickHalfSize, Content: format(t), Fill: stroke, Size: LabelFontSize, Anchor: AnchorMiddle})
		}
	case AxisY:
		x := c.mapX(fixed)
		c.emit(Segment{X1: x, Y1: h, X2: x, Y2: 0, Stroke: stroke, Width: 1})
		for _, v := range TickPositions(c.rng.Min, c.rng.Max, interval, offset) {
			y := c.mapY(v)
			c.emit(Segment{X1: x - TickHalfSize, Y1: y, X2: x + TickHalfSize, Y2: y, Stroke: stroke, Width: 1})
			c.emit(Text{X: x - 2*TickHalfSize, Y: y, Content: format(v), Fill: stroke, Size: LabelFontSize, Anchor: AnchorEnd, Baseline: BaselineMiddle})
		}
	}
}

// Line strokes the series. A single visible point is drawn as a dot.
func (c *Canvas) Line(points []Sample, stroke color.RGB, style LineStyle, width float64) {
	px := c.project(points)
	switch len(px) {
	case 0:
		return
	case 1:
		c.emit(Circle{CX: px[0].X, CY: px[0].Y, R: width / 2, Fill: stroke})
	default:
		c.emit(Path{Points: px, Stroke: stroke, Width: width, Style: style})
	}
}

// Points draws a dot of radius r at each sample.
func (c *Canvas) Points(points []Sample, fill color.RGB, r float64) {
	for _, p := range c.project(points) {
		c.emit(Circle{CX: p.X, CY: p.Y, R: r, Fill: fill})
	}
}

// project maps points to pixels and trims the parts that run off the left
// and right edges, keeping one point beyond each edge so the path still
// reaches it.
func (c *Canvas) project(points []Sample) []PixelPoint {
	px := gfn.Map(points, c.MapPoint)
	w := float64(c.viewport.Width)
	for len(px) > 1 && px[1].X < 0 {
		px = px[1:]
	}
	for len(px) > 1 && px[len(px)-2].X > w {
		px = px[:len(px)-1]
	}
	return px
}
