package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/panyam/numcards/cards"
	"github.com/panyam/numcards/viz"
	"github.com/spf13/cobra"
)

var (
	renderOut  string
	renderCard string
	renderNow  string
)

var renderCmd = &cobra.Command{
	Use:   "render [snapshot.json]",
	Short: "Render cards from a metrics snapshot",
	Long: `Render one file per card from a JSON snapshot of the form

  {"<id>": {"value": 12, "history": [{"time": 1709640000, "value": 11}, ...]}}

The snapshot is read from the given file, or from stdin when the file is "-"
or omitted. Cards listed in the catalog but missing from the snapshot are
rendered as no-data cards.

Example:
  numcards render --cards configs/cards.yaml --out build/ snapshot.json
  curl -s http://host/numbers | numcards render --format png --card anki`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		snap, err := cards.DecodeSnapshot(in)
		if err != nil {
			return err
		}
		now, err := parseNow(renderNow)
		if err != nil {
			return err
		}
		out, err := viz.RendererFor(cfg.Format)
		if err != nil {
			return err
		}

		vp := viz.Viewport{Width: cfg.Width, Height: cfg.Height}
		var docs map[string]*viz.Document
		if renderCard != "" {
			docs = map[string]*viz.Document{renderCard: renderer.RenderCard(renderCard, snap[renderCard], vp, now)}
		} else {
			docs = renderer.RenderSnapshot(snap, vp, now)
		}
		if err := os.MkdirAll(renderOut, 0o755); err != nil {
			return err
		}

		ids := make([]string, 0, len(docs))
		for id := range docs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		ok := color.New(color.FgGreen)
		for _, id := range ids {
			path := filepath.Join(renderOut, fileName(id)+"."+cfg.Format)
			if err := writeDocument(path, out, docs[id]); err != nil {
				return err
			}
			ok.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
		return nil
	},
}

func writeDocument(path string, r viz.Renderer, doc *viz.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// fileName keeps card ids from escaping the output directory.
func fileName(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, id)
}

// parseNow accepts unix seconds or RFC 3339. Empty means the current time.
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.UnixMilli(int64(secs * 1000)), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: want unix seconds or RFC 3339", s)
	}
	return t, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "Output directory")
	renderCmd.Flags().StringVar(&renderCard, "card", "", "Render only this card")
	renderCmd.Flags().StringVar(&renderNow, "now", "", "Render time as unix seconds or RFC 3339 (default: now)")
	rootCmd.AddCommand(renderCmd)
}
