// Package config loads the tourguide YAML configuration.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Zereker/tourguide"
)

// Config holds the settings shared by the serve, ask and tour commands.
type Config struct {
	Address         string        `yaml:"address"`
	Port            uint16        `yaml:"port"`
	Stops           []string      `yaml:"stops"`
	Editable        bool          `yaml:"editable"`
	MaxFrameSize    int           `yaml:"max_frame_size"`
	ExchangeTimeout time.Duration `yaml:"exchange_timeout"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	LogLevel        string        `yaml:"log_level"`
	Output          string        `yaml:"output"`
}

// DefaultPort is the port the tour-guide listens on when none is configured.
const DefaultPort = 7878

// Default returns the configuration used when no file exists.
func Default() *Config {
	stops := make([]string, 0, len(tourguide.Locations()))
	for _, l := range tourguide.Locations() {
		stops = append(stops, l.String())
	}
	return &Config{
		Address:         "127.0.0.1",
		Port:            DefaultPort,
		Stops:           stops,
		MaxFrameSize:    tourguide.DefaultMaxFrameSize,
		ExchangeTimeout: tourguide.DefaultExchangeTimeout,
		RetryDelay:      tourguide.DefaultRetryDelay,
		LogLevel:        "info",
		Output:          "text",
	}
}

// DefaultPath returns ~/.tourguide/config.yaml.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", ".tourguide", "config.yaml")
	}
	return filepath.Join(home, ".tourguide", "config.yaml")
}

// Load reads the configuration at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.Route(); err != nil {
		return err
	}
	if c.MaxFrameSize < 0 {
		return errors.Errorf("max_frame_size must not be negative, got %d", c.MaxFrameSize)
	}
	switch strings.ToLower(c.Output) {
	case "", "text", "json", "yaml":
	default:
		return errors.Errorf("unknown output format %q", c.Output)
	}
	return nil
}

// Route parses the configured stops.
func (c *Config) Route() ([]tourguide.Location, error) {
	route := make([]tourguide.Location, 0, len(c.Stops))
	for _, s := range c.Stops {
		l, err := tourguide.ParseLocation(s)
		if err != nil {
			return nil, errors.Wrap(err, "stops")
		}
		route = append(route, l)
	}
	return route, nil
}

// Level maps LogLevel to a slog level; unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Options converts the configuration into core options.
func (c *Config) Options(logger tourguide.Logger) []tourguide.Option {
	return []tourguide.Option{
		tourguide.LoggerOption(logger),
		tourguide.MessageMaxSize(c.MaxFrameSize),
		tourguide.ExchangeTimeoutOption(c.ExchangeTimeout),
		tourguide.RetryDelayOption(c.RetryDelay),
	}
}
