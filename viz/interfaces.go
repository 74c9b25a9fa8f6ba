// Package viz turns time series into small chart documents.
//
// It covers axis range selection, tick layout, domain clipping, and the
// mapping of samples into pixel space. Drawing operations are recorded as
// primitives on a Canvas and written out by a Renderer (SVG or PNG).
package viz

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrDegenerateInterval is returned when interpolating between two
	// samples that share the same time.
	ErrDegenerateInterval = errors.New("viz: interpolation between samples with equal time")

	// ErrUnsorted is returned for series whose times decrease.
	ErrUnsorted = errors.New("viz: series is not sorted by time")

	// ErrUnknownFormat is returned by RendererFor for unsupported formats.
	ErrUnknownFormat = errors.New("viz: unknown output format")
)

// Sample is a single measurement. Time is in seconds.
type Sample struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// Domain is the visible time window. Min < Max.
type Domain struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Range is the visible value window. Min < Max once finalized.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Include widens r so that it covers v.
func (r Range) Include(v float64) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Viewport is the output size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// PixelPoint is a point in output pixel space, y growing downwards.
type PixelPoint struct {
	X float64
	Y float64
}

// Renderer writes a finished canvas document to an output stream.
type Renderer interface {
	Render(w io.Writer, doc *Document) error

	// ContentType is the MIME type of the rendered output.
	ContentType() string
}

// RendererFor returns the renderer for an output format name, "svg" or
// "png".
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "svg":
		return &SVGRenderer{}, nil
	case "png":
		return &PNGRenderer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
