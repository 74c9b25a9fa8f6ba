// Package config loads numcards settings from defaults, an optional config
// file, NUMCARDS_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "NUMCARDS"

// Keys understood by Load. Flags bound with BindFlags use the same names.
const (
	KeyAddr     = "addr"
	KeyLogLevel = "log_level"
	KeyCards    = "cards"
	KeyWidth    = "width"
	KeyHeight   = "height"
	KeyFormat   = "format"
	KeyTimezone = "timezone"
	KeyLocale   = "locale"
)

// Config is the resolved configuration.
type Config struct {
	Addr     string
	LogLevel string
	Cards    string
	Width    int
	Height   int
	Format   string
	Timezone string
	Locale   string
}

// Location resolves Timezone. An empty timezone is the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Language parses Locale as a BCP 47 tag.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("config: locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// Validate checks the numeric and enumerated settings.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: card size %dx%d must be positive", c.Width, c.Height)
	}
	switch c.Format {
	case "svg", "png":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	_, err := c.Language()
	return err
}

// New returns a viper instance with defaults and the environment wired up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCards, "")
	v.SetDefault(KeyWidth, 300)
	v.SetDefault(KeyHeight, 150)
	v.SetDefault(KeyFormat, "svg")
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyLocale, "en")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds any of the flags in fs that share a name with a config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch key {
		case KeyAddr, KeyLogLevel, KeyCards, KeyWidth, KeyHeight, KeyFormat, KeyTimezone, KeyLocale:
			errs = append(errs, v.BindPFlag(key, f))
		}
	})
	return errors.Join(errs...)
}

// Load reads the optional config file at path into v and returns the
// resolved configuration.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	c := Config{
		Addr:     v.GetString(KeyAddr),
		LogLevel: v.GetString(KeyLogLevel),
		Cards:    v.GetString(KeyCards),
		Width:    v.GetInt(KeyWidth),
		Height:   v.GetInt(KeyHeight),
		Format:   strings.ToLower(v.GetString(KeyFormat)),
		Timezone: v.GetString(KeyTimezone),
		Locale:   v.GetString(KeyLocale),
	}
	return c, c.Validate()
}
