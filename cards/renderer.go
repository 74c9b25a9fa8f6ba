package cards

import (
	"sort"
	"sync"
	"time"

	"github.com/panyam/numcards/color"
	"github.com/panyam/numcards/logger"
	"github.com/panyam/numcards/viz"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NoData is shown in place of the value when a card has no history.
const NoData = "NoData"

// Options control the layout shared by all cards.
type Options struct {
	// Before and After size the time window around "now".
	Before time.Duration
	After  time.Duration

	// Location is used for day ticks and the timestamp.
	Location *time.Location

	// Locale formats the big value.
	Locale language.Tag

	// ValueDigits is the most fraction digits shown in the big value.
	ValueDigits int

	// ValueSize is the value font size as a fraction of card height.
	ValueSize float64

	LineWidth   float64
	MinTickGapX float64
	MinTickGapY float64

	// Workers bounds concurrent card renders in RenderSnapshot.
	Workers int
}

// DefaultOptions returns the standard weekly card layout.
func DefaultOptions() Options {
	return Options{
		Before:      156 * time.Hour,
		After:       12 * time.Hour,
		Location:    time.Local,
		Locale:      language.English,
		ValueDigits: 2,
		ValueSize:   0.6,
		LineWidth:   2,
		MinTickGapX: 30,
		MinTickGapY: 20,
		Workers:     4,
	}
}

// Renderer turns metrics into chart documents. It is safe for concurrent use.
type Renderer struct {
	catalog *Catalog
	opts    Options
	log     logger.Logger
	printer *message.Printer
}

// NewRenderer creates a renderer. A nil catalog renders every card with
// default options, and a nil log uses the package default.
func NewRenderer(catalog *Catalog, opts Options, log logger.Logger) *Renderer {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if log == nil {
		log = logger.Default()
	}
	return &Renderer{
		catalog: catalog,
		opts:    opts,
		log:     log,
		printer: message.NewPrinter(opts.Locale),
	}
}

// Config resolves the card config for id, falling back to the default theme
// if the configured one is invalid.
func (r *Renderer) Config(id string) CardConfig {
	cfg, err := r.catalog.Resolve(id)
	if err != nil {
		r.log.Warn("card %s: %v, using default theme", id, err)
	}
	return cfg
}

// Window returns the time window of a card rendered at now.
func (r *Renderer) Window(now time.Time) viz.Domain {
	t := float64(now.UnixNano()) / 1e9
	return viz.Domain{Min: t - r.opts.Before.Seconds(), Max: t + r.opts.After.Seconds()}
}

// FormatValue formats v for the value slot in the renderer's locale.
func (r *Renderer) FormatValue(v float64) string {
	return r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(r.opts.ValueDigits)))
}

// RenderCard draws a single card. It never fails: a nil metric or empty
// history produces the no-data card, and unsorted history is sorted.
func (r *Renderer) RenderCard(id string, m *Metric, vp viz.Viewport, now time.Time) *viz.Document {
	cfg := r.Config(id)
	pal := color.Derive(cfg.Theme)
	if !m.HasData() {
		return r.noDataCard(cfg, pal, vp)
	}

	history := m.History
	if err := viz.CheckSorted(history); err != nil {
		r.log.Warn("card %s: %v, sorting", id, err)
		history = append([]viz.Sample(nil), history...)
		sort.SliceStable(history, func(i, j int) bool { return history[i].Time < history[j].Time })
	}

	d := r.Window(now)
	clipped, err := viz.ClipToDomain(history, d)
	if err != nil {
		// only reachable on NaN times
		r.log.Error("card %s: %v", id, err)
		return r.noDataCard(cfg, pal, vp)
	}
	rng := r.valueRange(cfg, clipped, d, m.Value)

	c := viz.NewCanvas(vp).SetWindow(d, rng).SetLocation(r.opts.Location)
	c.Background(pal.Background)

	xAt := clamp(rng.Min+cfg.MinimumSpan/2, rng.Min, rng.Max)
	xInterval := viz.ChooseTickInterval(d.Span(), float64(vp.Width), viz.Day, r.opts.MinTickGapX)
	c.Axis(viz.AxisX, xAt, xInterval, viz.LocalMidnightOffset(r.opts.Location, now), pal.Label, viz.DayFormatter(r.opts.Location))

	yInterval := viz.ChooseTickInterval(rng.Span(), float64(vp.Height), 0, r.opts.MinTickGapY)
	c.Axis(viz.AxisY, float64(now.UnixNano())/1e9, yInterval, 0, pal.Label, nil)

	c.Line(clipped, pal.Line, viz.Solid, r.opts.LineWidth)
	c.Title(cfg.DisplayName, pal.Title)
	c.ValueLabel(viz.LabelValue{Number: m.Value, Text: r.FormatValue(m.Value)}, pal.Number, r.opts.ValueSize)
	c.Caption(cfg.UnitLabel, pal.Label)
	c.TimestampLabel(history[len(history)-1].Time, pal.Title)
	return c.Document()
}

func (r *Renderer) noDataCard(cfg CardConfig, pal color.Palette, vp viz.Viewport) *viz.Document {
	c := viz.NewCanvas(vp).SetLocation(r.opts.Location)
	c.Background(pal.Background)
	c.Title(cfg.DisplayName, pal.Title)
	c.ValueLabel(viz.PlaceholderLabel(NoData), pal.Number, r.opts.ValueSize)
	return c.Document()
}

// valueRange runs the range pipeline: fit the visible data and the current
// value, widen to the minimum span, clamp to the floor, pad, then round.
func (r *Renderer) valueRange(cfg CardConfig, clipped []viz.Sample, d viz.Domain, current float64) viz.Range {
	rng, ok := viz.AutoRange(clipped, d)
	if !ok {
		rng = viz.Range{Min: current, Max: current}
	}
	rng = rng.Include(current)
	rng = viz.EnforceMinimumSpan(rng, cfg.MinimumSpan)
	rng = viz.EnforceFloor(rng, cfg.MinimumFloor)
	rng = viz.PadRange(rng, cfg.Padding)
	if cfg.Round {
		rng = viz.RoundOutward(rng)
	}
	if rng.Span() <= 0 {
		rng = viz.EnforceMinimumSpan(rng, 1)
	}
	return rng
}

// RenderSnapshot draws every card in the snapshot plus every catalog card
// missing from it, which get the no-data card.
func (r *Renderer) RenderSnapshot(s Snapshot, vp viz.Viewport, now time.Time) map[string]*viz.Document {
	ids := s.IDs()
	for _, id := range r.catalog.IDs() {
		if _, ok := s[id]; !ok {
			ids = append(ids, id)
		}
	}

	var mu sync.Mutex
	out := make(map[string]*viz.Document, len(ids))
	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for _, id := range ids {
		g.Go(func() error {
			doc := r.RenderCard(id, s[id], vp, now)
			mu.Lock()
			out[id] = doc
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	r.log.Debug("rendered %d cards", len(out))
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
