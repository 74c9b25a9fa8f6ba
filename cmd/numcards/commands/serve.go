package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/panyam/numcards/logger"
	"github.com/panyam/numcards/server"
	"github.com/panyam/numcards/viz"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the card rendering server",
	Long: `Start an HTTP server that renders cards on request.

Endpoints:
  POST /api/cards/{id}/render   render one metric (JSON body) as svg or png
  POST /api/render              render a snapshot, returns {"id": "<svg>"}
  GET  /api/palette?theme=      palette derived from a theme color
  GET  /healthz                 liveness

Example:
  numcards serve --addr :9090 --cards configs/cards.yaml
  curl -X POST -d @metric.json 'localhost:9090/api/cards/anki/render?format=png' > anki.png`,
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(renderer, server.Options{
			Viewport: viz.Viewport{Width: cfg.Width, Height: cfg.Height},
			Format:   cfg.Format,
		}, logger.Default())

		bold := color.New(color.Bold)
		out := cmd.OutOrStdout()
		bold.Fprintf(out, "numcards server %s\n", Version)
		fmt.Fprintf(out, "  listening on  %s\n", cfg.Addr)
		fmt.Fprintf(out, "  cards         %d configured\n", len(catalog.Cards))
		fmt.Fprintf(out, "  default size  %dx%d %s\n\n", cfg.Width, cfg.Height, cfg.Format)

		if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(out, "server stopped gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (default: NUMCARDS_ADDR env var or :8080)")
	cobra.CheckErr(v.BindPFlag("addr", serveCmd.Flags().Lookup("addr")))
	rootCmd.AddCommand(serveCmd)
}
