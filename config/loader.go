package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrFeedNotFound is returned by SelectFeed when no feed matches.
var ErrFeedNotFound = errors.New("config: feed not found")

// Config is the global application configuration
var Config AppConfig

// DefaultPaths are tried in order by LoadAppConfig
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// LoadAppConfig loads and validates the application configuration from the
// first readable file in DefaultPaths
func LoadAppConfig() error {
	var data []byte
	var err error
	for _, p := range DefaultPaths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = *cfg
	return nil
}

// LoadFromFile loads and validates the configuration at path into Config
func LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	Config = *cfg
	return nil
}

// Parse decodes YAML, validates it and fills defaults
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Validate checks struct tags on the whole configuration
func Validate(cfg *AppConfig) error {
	// nested feeds and their optional reader overrides are validated recursively
	return validator.New().Struct(cfg)
}

// Default returns the configuration used when no file is present
func Default() AppConfig {
	var cfg AppConfig
	cfg.applyDefaults()
	return cfg
}

func (c *AppConfig) applyDefaults() {
	if c.Reader.Separator == "" {
		c.Reader.Separator = ","
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Scan.Concurrency == 0 {
		c.Scan.Concurrency = 4
	}
	if c.Scan.MaxFailures == 0 {
		c.Scan.MaxFailures = 100
	}
}

// SeparatorRune returns the configured separator, defaulting to ','
func (r ReaderConfig) SeparatorRune() rune {
	if r.Separator == "" {
		return ','
	}
	sep, _ := utf8.DecodeRuneInString(r.Separator)
	return sep
}

// SelectFeed chooses a feed by name; fallback to first when name is empty
func SelectFeed(name string) (Feed, error) {
	if name != "" {
		for _, f := range Config.Feeds {
			if f.Name == name {
				return f, nil
			}
		}
		return Feed{}, fmt.Errorf("%w: %s", ErrFeedNotFound, name)
	}
	if len(Config.Feeds) > 0 {
		return Config.Feeds[0], nil
	}
	return Feed{}, ErrFeedNotFound
}

// ReaderFor returns the feed's reader override, or the top-level reader config
func ReaderFor(f Feed) ReaderConfig {
	if f.Reader != nil {
		r := *f.Reader
		if r.Separator == "" {
			r.Separator = Config.Reader.Separator
		}
		return r
	}
	return Config.Reader
}
