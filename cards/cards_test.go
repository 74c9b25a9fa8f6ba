package cards

import (
	"strings"
	"testing"
	"time"

	"github.com/panyam/numcards/color"
	"github.com/panyam/numcards/logger"
	"github.com/panyam/numcards/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
cards:
  anki:
    display_name: Anki
    unit_label: cards
    theme: "#3366cc"
    minimum_floor: 0
    minimum_span: 20
  weight:
    display_name: Weight
    minimum_span: 2
    padding: 0.5
    round: false
`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := DecodeCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	return c
}

func testRenderer(t *testing.T, c *Catalog) *Renderer {
	opts := DefaultOptions()
	opts.Location = time.UTC
	return NewRenderer(c, opts, logger.Nop())
}

func texts(doc *viz.Document) []string {
	var out []string
	for _, p := range doc.Primitives {
		if t, ok := p.(viz.Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := CardOptions{}.Resolve("goldie")
	require.NoError(t, err)
	assert.Equal(t, "goldie", cfg.DisplayName)
	assert.Equal(t, "", cfg.UnitLabel)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Nil(t, cfg.MinimumFloor)
	assert.Equal(t, 20.0, cfg.MinimumSpan)
	assert.Equal(t, 0.0, cfg.Padding)
	assert.True(t, cfg.Round)
}

func TestResolveBadTheme(t *testing.T) {
	bad := "blue"
	cfg, err := CardOptions{Theme: &bad}.Resolve("x")
	assert.Error(t, err)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestDecodeCatalog(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"anki", "weight"}, c.IDs())

	anki, err := c.Resolve("anki")
	require.NoError(t, err)
	assert.Equal(t, "cards", anki.UnitLabel)
	assert.Equal(t, color.FromBytes(0x33, 0x66, 0xcc), anki.Theme)
	require.NotNil(t, anki.MinimumFloor)
	assert.Equal(t, 0.0, *anki.MinimumFloor)

	weight, err := c.Resolve("weight")
	require.NoError(t, err)
	assert.False(t, weight.Round)
	assert.Equal(t, 0.5, weight.Padding)

	unknown, err := c.Resolve("other")
	require.NoError(t, err)
	assert.Equal(t, "other", unknown.DisplayName)
}

func TestDecodeCatalogErrors(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader("cards:\n  a:\n    colour: red\n"))
	assert.Error(t, err)

	_, err = DecodeCatalog(strings.NewReader("cards:\n  a:\n    theme: '#12'\n"))
	assert.Error(t, err)

	c, err := DecodeCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.IDs())
}

func TestDecodeSnapshot(t *testing.T) {
	s, err := DecodeSnapshot(strings.NewReader(`{"b": {"value": 3, "history": [{"time": 1, "value": 2}]}, "a": null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.False(t, s["a"].HasData())
	assert.True(t, s["b"].HasData())
	assert.Equal(t, viz.Sample{Time: 1, Value: 2}, s["b"].History[0])

	_, err = DecodeSnapshot(strings.NewReader(`[1, 2]`))
	assert.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	r := testRenderer(t, nil)
	assert.Equal(t, "12,345.68", r.FormatValue(12345.678))
	assert.Equal(t, "3", r.FormatValue(3))
	assert.Equal(t, "0.25", r.FormatValue(0.25))
}

func TestValueRange(t *testing.T) {
	r := testRenderer(t, testCatalog(t))
	d := viz.Domain{Min: 0, Max: 2}
	flat := []viz.Sample{{Time: 0, Value: 7}, {Time: 1, Value: 7}, {Time: 2, Value: 7}}

	// default config widens around the data
	assert.Equal(t, viz.Range{Min: -3, Max: 17}, r.valueRange(r.Config("plain"), flat, d, 7))
	// the floor shifts the window up
	assert.Equal(t, viz.Range{Min: 0, Max: 20}, r.valueRange(r.Config("anki"), flat, d, 7))
	// the current value is always visible
	assert.Equal(t, viz.Range{Min: 7, Max: 30}, r.valueRange(r.Config("anki"), flat, d, 30))
	// padding without rounding
	assert.Equal(t, viz.Range{Min: 5.5, Max: 8.5}, r.valueRange(r.Config("weight"), flat, d, 7))
}

func TestValueRangeNeverEmpty(t *testing.T) {
	zero := 0.0
	r := testRenderer(t, &Catalog{Cards: map[string]CardOptions{"z": {MinimumSpan: &zero}}})
	rng := r.valueRange(r.Config("z"), nil, viz.Domain{Min: 0, Max: 1}, 4)
	assert.Greater(t, rng.Span(), 0.0)
}

func TestRenderCardNoData(t *testing.T) {
	r := testRenderer(t, testCatalog(t))
	vp := viz.Viewport{Width: 300, Height: 150}
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	for _, m := range []*Metric{nil, {Value: 5}} {
		doc := r.RenderCard("anki", m, vp, now)
		require.Len(t, doc.Primitives, 3)
		assert.IsType(t, viz.Rect{}, doc.Primitives[0])
		assert.Equal(t, []string{"Anki", NoData}, texts(doc))
	}
}

func TestRenderCard(t *testing.T) {
	r := testRenderer(t, testCatalog(t))
	vp := viz.Viewport{Width: 300, Height: 150}
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	day := float64(viz.Day)
	start := float64(now.Unix())

	m := &Metric{Value: 1234, History: []viz.Sample{
		{Time: start - 10*day, Value: 1000},
		{Time: start - 3*day, Value: 1100},
		{Time: start - day, Value: 1234},
	}}
	doc := r.RenderCard("anki", m, vp, now)
	assert.Equal(t, vp, doc.Viewport)

	pal := color.Derive(color.FromBytes(0x33, 0x66, 0xcc))
	assert.Equal(t, viz.Rect{W: 300, H: 150, Fill: pal.Background}, doc.Primitives[0])

	var paths []viz.Path
	for _, p := range doc.Primitives {
		if path, ok := p.(viz.Path); ok {
			paths = append(paths, path)
		}
	}
	require.Len(t, paths, 1)
	assert.Equal(t, pal.Line, paths[0].Stroke)
	assert.Equal(t, 2.0, paths[0].Width)
	// the line starts at the left edge and is held flat to the right edge
	pts := paths[0].Points
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, 300, pts[len(pts)-1].X, 1e-9)
	assert.Equal(t, pts[len(pts)-2].Y, pts[len(pts)-1].Y)

	labels := texts(doc)
	assert.Contains(t, labels, "Anki")
	assert.Contains(t, labels, "1,234")
	assert.Contains(t, labels, "cards")
	assert.Contains(t, labels, "2024/3/4 12:00:00")
	// day ticks at local midnight
	assert.Contains(t, labels, "5")
	assert.Contains(t, labels, "3/1")
}

func TestRenderCardSortsHistory(t *testing.T) {
	r := testRenderer(t, nil)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	base := float64(now.Unix())
	history := []viz.Sample{{Time: base - 100, Value: 2}, {Time: base - 200, Value: 1}}
	doc := r.RenderCard("x", &Metric{Value: 2, History: history}, viz.Viewport{Width: 100, Height: 50}, now)
	assert.Contains(t, texts(doc), "x")
	// caller data is left alone
	assert.Equal(t, base-100, history[0].Time)
}

func TestRenderSnapshot(t *testing.T) {
	r := testRenderer(t, testCatalog(t))
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	s := Snapshot{
		"anki":  {Value: 3, History: []viz.Sample{{Time: float64(now.Unix()) - 60, Value: 3}}},
		"extra": nil,
	}
	docs := r.RenderSnapshot(s, viz.Viewport{Width: 200, Height: 100}, now)
	require.Len(t, docs, 3)
	assert.Contains(t, texts(docs["weight"]), NoData)
	assert.Contains(t, texts(docs["extra"]), NoData)
	assert.NotContains(t, texts(docs["anki"]), NoData)
}

func TestLoadCatalogFile(t *testing.T) {
	c, err := LoadCatalog("../configs/cards.yaml")
	require.NoError(t, err)
	assert.Len(t, c.IDs(), 9)

	goldie, err := c.Resolve("goldie")
	require.NoError(t, err)
	assert.Nil(t, goldie.MinimumFloor)
	assert.Equal(t, 50.0, goldie.MinimumSpan)
	assert.Equal(t, color.FromBytes(172, 228, 68), goldie.Theme)

	empty, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Empty(t, empty.IDs())

	_, err = LoadCatalog("does-not-exist.yaml")
	assert.Error(t, err)
}
