package viz

import (
	"testing"
	"time"

	"github.com/panyam/numcards/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ink = color.RGB{R: 0.2, G: 0.4, B: 0.6}

func newTestCanvas() *Canvas {
	return NewCanvas(Viewport{Width: 200, Height: 100}).
		SetWindow(Domain{Min: 0, Max: 100}, Range{Min: 0, Max: 50})
}

func TestMapPoint(t *testing.T) {
	c := newTestCanvas()
	assert.Equal(t, Viewport{Width: 200, Height: 100}, c.Viewport())
	assert.Equal(t, Domain{Min: 0, Max: 100}, c.Domain())
	assert.Equal(t, Range{Min: 0, Max: 50}, c.Range())
	assert.Equal(t, PixelPoint{X: 0, Y: 100}, c.MapPoint(Sample{0, 0}))
	assert.Equal(t, PixelPoint{X: 200, Y: 0}, c.MapPoint(Sample{100, 50}))
	assert.Equal(t, PixelPoint{X: 100, Y: 50}, c.MapPoint(Sample{50, 25}))
	// outside the window maps outside the viewport
	assert.Equal(t, PixelPoint{X: -20, Y: 120}, c.MapPoint(Sample{-10, -10}))
}

func TestLineClipsInPixelSpace(t *testing.T) {
	c := newTestCanvas()
	points := []Sample{{-50, 0}, {-30, 0}, {-10, 0}, {50, 25}, {110, 0}, {130, 0}, {150, 0}}
	c.Line(points, ink, Solid, 2)

	doc := c.Document()
	require.Len(t, doc.Primitives, 1)
	path, ok := doc.Primitives[0].(Path)
	require.True(t, ok)
	// one point kept beyond each edge
	require.Len(t, path.Points, 3)
	assert.Equal(t, -20.0, path.Points[0].X)
	assert.Equal(t, 100.0, path.Points[1].X)
	assert.Equal(t, 220.0, path.Points[2].X)
	assert.Equal(t, 2.0, path.Width)
}

func TestLineDegenerateInputs(t *testing.T) {
	c := newTestCanvas()
	c.Line(nil, ink, Solid, 2)
	assert.Empty(t, c.Document().Primitives)

	c.Line([]Sample{{50, 25}}, ink, Dashed, 4)
	doc := c.Document()
	require.Len(t, doc.Primitives, 1)
	assert.Equal(t, Circle{CX: 100, CY: 50, R: 2, Fill: ink}, doc.Primitives[0])

	// everything left of the viewport still keeps the last point
	c = newTestCanvas()
	c.Line([]Sample{{-30, 0}, {-20, 0}, {-10, 0}}, ink, Solid, 2)
	doc = c.Document()
	require.Len(t, doc.Primitives, 1)
	assert.IsType(t, Circle{}, doc.Primitives[0])
}

func TestPoints(t *testing.T) {
	c := newTestCanvas()
	c.Points([]Sample{{-50, 0}, {-30, 0}, {10, 5}, {20, 5}}, ink, 3)
	doc := c.Document()
	require.Len(t, doc.Primitives, 3)
	for _, p := range doc.Primitives {
		assert.Equal(t, 3.0, p.(Circle).R)
	}
}

func TestAxisX(t *testing.T) {
	c := newTestCanvas()
	c.Axis(AxisX, 25, 20, 0, ink, nil)
	doc := c.Document()
	// guideline + 6 ticks (0..100) with a label each
	require.Len(t, doc.Primitives, 1+6*2)
	assert.Equal(t, Segment{X1: 0, Y1: 50, X2: 200, Y2: 50, Stroke: ink, Width: 1}, doc.Primitives[0])
	label := doc.Primitives[2].(Text)
	assert.Equal(t, "0", label.Content)
	assert.Equal(t, AnchorMiddle, label.Anchor)
	assert.Equal(t, "100", doc.Primitives[12].(Text).Content)
}

func TestAxisYWithFormatter(t *testing.T) {
	c := newTestCanvas()
	c.Axis(AxisY, 50, 25, 0, ink, func(v float64) string { return "v" + NumberFormatter(25)(v) })
	doc := c.Document()
	require.Len(t, doc.Primitives, 1+3*2)
	assert.Equal(t, Segment{X1: 100, Y1: 100, X2: 100, Y2: 0, Stroke: ink, Width: 1}, doc.Primitives[0])
	assert.Equal(t, "v0", doc.Primitives[2].(Text).Content)
	assert.Equal(t, "v50", doc.Primitives[6].(Text).Content)
	assert.Equal(t, BaselineMiddle, doc.Primitives[6].(Text).Baseline)
}

func TestLabels(t *testing.T) {
	c := newTestCanvas().SetLocation(time.UTC)
	c.Background(ink)
	c.Title("Anki", ink)
	c.ValueLabel(NumberLabel(42.5), ink, 0.6)
	c.ValueLabel(PlaceholderLabel("NoData"), ink, 0.6)
	c.TimestampLabel(float64(time.Date(2024, 3, 5, 14, 3, 1, 0, time.UTC).Unix()), ink)
	c.Caption("", ink)
	c.Caption("cards", ink)

	doc := c.Document()
	require.Len(t, doc.Primitives, 6)
	assert.Equal(t, Rect{W: 200, H: 100, Fill: ink}, doc.Primitives[0])
	assert.Equal(t, "Anki", doc.Primitives[1].(Text).Content)

	value := doc.Primitives[2].(Text)
	assert.Equal(t, "42.5", value.Content)
	assert.Equal(t, 60.0, value.Size)
	assert.Equal(t, ValueOpacity, value.Opacity)
	assert.Equal(t, "NoData", doc.Primitives[3].(Text).Content)
	assert.Equal(t, "2024/3/5 14:03:01", doc.Primitives[4].(Text).Content)
	assert.Equal(t, "cards", doc.Primitives[5].(Text).Content)
}

func TestDocumentIsSnapshot(t *testing.T) {
	c := newTestCanvas()
	c.Background(ink)
	doc := c.Document()
	c.Title("later", ink)
	assert.Len(t, doc.Primitives, 1)
	assert.Len(t, c.Document().Primitives, 2)
}
