package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tendant/content-kit/pkg/content"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		LogLevel: "info",
	}
}

// Config represents configuration for a record scan run
type Config struct {
	// RecordsFile is a JSON array of records to load. Empty uses demo records.
	RecordsFile string

	// Visibilities limits the scan. Empty scans every visibility.
	Visibilities []content.Visibility

	DryRun      bool
	StopOnError bool

	LogLevel string // debug, info, warn, error
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	for _, v := range c.Visibilities {
		if !v.IsValid() {
			return fmt.Errorf("%w: %d", content.ErrInvalidVisibility, int(v))
		}
	}
	return nil
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return 0, errors.New("log level is required")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// WithRecordsFile sets the JSON records file
func WithRecordsFile(path string) Option {
	return func(c *Config) error {
		c.RecordsFile = path
		return nil
	}
}

// WithVisibilities limits the scan to the named visibilities
func WithVisibilities(names ...string) Option {
	return func(c *Config) error {
		visibilities, err := parseVisibilities(names)
		if err != nil {
			return err
		}
		c.Visibilities = visibilities
		return nil
	}
}

// WithDryRun toggles dry-run mode
func WithDryRun(enabled bool) Option {
	return func(c *Config) error {
		c.DryRun = enabled
		return nil
	}
}

// WithStopOnError makes the first processing failure end the scan
func WithStopOnError(enabled bool) Option {
	return func(c *Config) error {
		c.StopOnError = enabled
		return nil
	}
}

// WithLogLevel sets the log level (debug, info, warn, error)
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		if _, err := parseLevel(level); err != nil {
			return err
		}
		c.LogLevel = level
		return nil
	}
}

func parseVisibilities(names []string) ([]content.Visibility, error) {
	var out []content.Visibility
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, err := content.ParseVisibility(strings.ToLower(name))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
