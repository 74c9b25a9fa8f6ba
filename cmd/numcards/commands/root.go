package commands

import (
	"fmt"
	"os"

	"github.com/panyam/numcards/cards"
	"github.com/panyam/numcards/config"
	"github.com/panyam/numcards/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logJSON bool
	v       = config.New()

	// Populated by setup before any subcommand runs.
	cfg      config.Config
	renderer *cards.Renderer
	catalog  *cards.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "numcards",
	Short: "numcards renders metric cards",
	Long: `numcards draws small cards for numeric metrics: the current value over a
week of history, with colors derived from a single theme color per card.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&logJSON, "log-json", false, "Log JSON lines instead of console text")
	pf.String("cards", "", "Card catalog file (default: NUMCARDS_CARDS env var)")
	pf.String("timezone", "", "IANA zone for day ticks and timestamps (default: local)")
	pf.String("locale", "en", "Locale used to format values")
	pf.Int("width", 300, "Card width in pixels")
	pf.Int("height", 150, "Card height in pixels")
	pf.String("format", "svg", "Output format: svg or png")
	cobra.CheckErr(config.BindFlags(v, pf))
}

// setup resolves the configuration and builds the shared card renderer.
func setup(v *viper.Viper) error {
	var err error
	if cfg, err = config.Load(v, cfgFile); err != nil {
		return err
	}
	level, err := logger.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(os.Stderr, level, !logJSON))

	if catalog, err = cards.LoadCatalog(cfg.Cards); err != nil {
		return err
	}
	opts := cards.DefaultOptions()
	if opts.Location, err = cfg.Location(); err != nil {
		return err
	}
	if opts.Locale, err = cfg.Language(); err != nil {
		return err
	}
	renderer = cards.NewRenderer(catalog, opts, logger.Default())
	logger.Debug("loaded %d card configs from %q", len(catalog.Cards), cfg.Cards)
	return nil
}

func preRun(cmd *cobra.Command, args []string) error {
	return setup(v)
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
