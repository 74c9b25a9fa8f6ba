// Package cards renders metric cards: a title, the current value and a week
// of history, themed from a single color.
package cards

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/panyam/numcards/color"
	"gopkg.in/yaml.v3"
)

// Defaults applied to options a card does not set.
var (
	DefaultTheme       = color.FromBytes(179, 91, 51)
	DefaultMinimumSpan = 20.0
)

// CardOptions is the per-card configuration as written in the catalog.
// A nil field means "use the default".
type CardOptions struct {
	DisplayName  *string  `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	UnitLabel    *string  `yaml:"unit_label,omitempty" json:"unit_label,omitempty"`
	Theme        *string  `yaml:"theme,omitempty" json:"theme,omitempty"`
	MinimumFloor *float64 `yaml:"minimum_floor,omitempty" json:"minimum_floor,omitempty"`
	MinimumSpan  *float64 `yaml:"minimum_span,omitempty" json:"minimum_span,omitempty"`
	Padding      *float64 `yaml:"padding,omitempty" json:"padding,omitempty"`
	Round        *bool    `yaml:"round,omitempty" json:"round,omitempty"`
}

// CardConfig is a fully resolved card configuration.
type CardConfig struct {
	ID           string
	DisplayName  string
	UnitLabel    string
	Theme        color.RGB
	MinimumFloor *float64
	MinimumSpan  float64
	Padding      float64
	Round        bool
}

// Resolve fills in defaults for every unset option. If the theme does not
// parse, the default theme is used and the parse error is returned along
// with an otherwise usable config.
func (o CardOptions) Resolve(id string) (CardConfig, error) {
	cfg := CardConfig{
		ID:           id,
		DisplayName:  id,
		Theme:        DefaultTheme,
		MinimumFloor: o.MinimumFloor,
		MinimumSpan:  DefaultMinimumSpan,
		Round:        true,
	}
	if o.DisplayName != nil {
		cfg.DisplayName = *o.DisplayName
	}
	if o.UnitLabel != nil {
		cfg.UnitLabel = *o.UnitLabel
	}
	if o.MinimumSpan != nil && *o.MinimumSpan >= 0 {
		cfg.MinimumSpan = *o.MinimumSpan
	}
	if o.Padding != nil {
		cfg.Padding = *o.Padding
	}
	if o.Round != nil {
		cfg.Round = *o.Round
	}
	if o.Theme != nil {
		theme, err := color.ParseHex(*o.Theme)
		if err != nil {
			return cfg, fmt.Errorf("card %s: %w", id, err)
		}
		cfg.Theme = theme
	}
	return cfg, nil
}

// Catalog maps card identifiers to their options.
type Catalog struct {
	Cards map[string]CardOptions `yaml:"cards" json:"cards"`
}

// Resolve returns the resolved config for id. Unknown ids get all defaults.
func (c *Catalog) Resolve(id string) (CardConfig, error) {
	var opts CardOptions
	if c != nil {
		opts = c.Cards[id]
	}
	return opts.Resolve(id)
}

// IDs returns the configured identifiers in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Cards))
	for id := range c.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks that every card resolves cleanly.
func (c *Catalog) Validate() error {
	for _, id := range c.IDs() {
		if _, err := c.Resolve(id); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCatalog reads a YAML catalog.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding card catalog: %w", err)
	}
	if c.Cards == nil {
		c.Cards = map[string]CardOptions{}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a YAML catalog from path. An empty path yields an empty
// catalog where every card uses the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{Cards: map[string]CardOptions{}}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening card catalog: %w", err)
	}
	defer f.Close()
	return DecodeCatalog(f)
}
