package commands

import (
	"fmt"

	"github.com/fatih/color"
	numcolor "github.com/panyam/numcards/color"
	"github.com/spf13/cobra"
)

var paletteRoles = []string{"title", "number", "label", "line", "background"}

var paletteCmd = &cobra.Command{
	Use:   "palette <#rrggbb>...",
	Short: "Show the card palette derived from theme colors",
	Long: `Show the five card colors derived from each theme color, with a swatch
when the terminal supports true color.

Example:
  numcards palette '#b35b33' '#3366cc'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, arg := range args {
			theme, err := numcolor.ParseHex(arg)
			if err != nil {
				return err
			}
			pal := numcolor.Derive(theme)
			colors := map[string]numcolor.RGB{
				"title":      pal.Title,
				"number":     pal.Number,
				"label":      pal.Label,
				"line":       pal.Line,
				"background": pal.Background,
			}
			color.New(color.Bold).Fprintf(out, "%s\n", theme.Hex())
			for _, role := range paletteRoles {
				c := colors[role]
				r, g, b := c.Bytes()
				swatch := color.BgRGB(int(r), int(g), int(b)).Sprint("      ")
				fmt.Fprintf(out, "  %s %-10s %s %s\n", swatch, role, c.Hex(), c)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}
