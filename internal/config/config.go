// Package config loads fwcsv run settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds run settings. Command-line flags override the values parsed here.
type Config struct {
	Dir       string `env:"FWCSV_DIR"        envDefault:"."`
	Output    string `env:"FWCSV_OUTPUT"     envDefault:"OUTFILE.CSV"`
	Pattern   string `env:"FWCSV_PATTERN"    envDefault:"C????L%d"`
	RoleIndex int    `env:"FWCSV_ROLE_INDEX" envDefault:"5"`
	MinSuffix int    `env:"FWCSV_MIN_SUFFIX" envDefault:"1"`
	MaxSuffix int    `env:"FWCSV_MAX_SUFFIX" envDefault:"99"`
	Layouts   string `env:"FWCSV_LAYOUTS"`
	Format    string `env:"FWCSV_FORMAT"     envDefault:"csv"`
	CRLF      bool   `env:"FWCSV_CRLF"`
	LogLevel  string `env:"FWCSV_LOG_LEVEL"  envDefault:"info"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that cannot be caught by parsing alone.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if strings.Count(c.Pattern, "%d") != 1 {
		errs = append(errs, fmt.Errorf("pattern %q must contain exactly one %%d", c.Pattern))
	}
	if c.RoleIndex < 1 {
		errs = append(errs, fmt.Errorf("role index %d must be 1 or greater", c.RoleIndex))
	}
	if c.MinSuffix < 0 || c.MaxSuffix < 1 || c.MinSuffix > c.MaxSuffix {
		errs = append(errs, fmt.Errorf("suffix range %d..%d is empty or negative", c.MinSuffix, c.MaxSuffix))
	}
	switch c.Format {
	case "csv", "xlsx":
	default:
		errs = append(errs, fmt.Errorf("format %q must be csv or xlsx", c.Format))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
