// Package server exposes card rendering over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/panyam/numcards/cards"
	"github.com/panyam/numcards/color"
	"github.com/panyam/numcards/logger"
	"github.com/panyam/numcards/viz"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 8 << 20

// Options configure a Server.
type Options struct {
	// Viewport is used when a request does not pass width and height.
	Viewport viz.Viewport

	// Format is the default output format of single card renders.
	Format string

	// Now returns the render time when a request does not pass one.
	Now func() time.Time
}

// Server serves rendered cards.
type Server struct {
	cards *cards.Renderer
	opts  Options
	log   logger.Logger
	svg   *viz.SVGRenderer
	png   *viz.PNGRenderer
}

// New creates a server on top of a card renderer.
func New(r *cards.Renderer, opts Options, log logger.Logger) *Server {
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = viz.Viewport{Width: 300, Height: 150}
	}
	if opts.Format == "" {
		opts.Format = "svg"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logger.Default()
	}
	return &Server{cards: r, opts: opts, log: log, svg: &viz.SVGRenderer{}, png: &viz.PNGRenderer{}}
}

// Handler returns the HTTP routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/cards/{id}/render", s.handleRenderCard)
	mux.HandleFunc("POST /api/render", s.handleRenderSnapshot)
	mux.HandleFunc("GET /api/palette", s.handlePalette)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "ok\n")
	})
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.log.Info("%s %s %d %dB %v", r.Method, r.URL.Path, m.Code, m.Written, m.Duration)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) handleRenderCard(w http.ResponseWriter, r *http.Request) {
	vp, now, err := s.renderParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.opts.Format
	}
	var out viz.Renderer
	switch format {
	case "svg":
		out = s.svg
	case "png":
		out = s.png
	default:
		http.Error(w, fmt.Sprintf("%v: %q", viz.ErrUnknownFormat, format), http.StatusBadRequest)
		return
	}

	var m *cards.Metric
	if err := decodeBody(w, r, &m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := s.cards.RenderCard(r.PathValue("id"), m, vp, now)
	w.Header().Set("Content-Type", out.ContentType())
	if err := out.Render(w, doc); err != nil {
		s.log.Error("rendering %s: %v", r.PathValue("id"), err)
	}
}

func (s *Server) handleRenderSnapshot(w http.ResponseWriter, r *http.Request) {
	vp, now, err := s.renderParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var snap cards.Snapshot
	if err := decodeBody(w, r, &snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	docs := s.cards.RenderSnapshot(snap, vp, now)
	out := make(map[string]string, len(docs))
	for id, doc := range docs {
		out[id] = s.svg.String(doc)
	}
	writeJSON(w, out)
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	theme, err := color.ParseHex(r.URL.Query().Get("theme"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, color.Derive(theme).Strings())
}

// renderParams reads the optional width, height and now query parameters.
func (s *Server) renderParams(r *http.Request) (viz.Viewport, time.Time, error) {
	q := r.URL.Query()
	vp := s.opts.Viewport
	now := s.opts.Now()
	for name, dst := range map[string]*int{"width": &vp.Width, "height": &vp.Height} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 4096 {
			return vp, now, fmt.Errorf("invalid %s %q", name, raw)
		}
		*dst = n
	}
	if raw := q.Get("now"); raw != "" {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return vp, now, fmt.Errorf("invalid now %q", raw)
		}
		whole, frac := math.Modf(secs)
		now = time.Unix(int64(whole), int64(frac*1e9))
	}
	return vp, now, nil
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	err := json.NewDecoder(body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
