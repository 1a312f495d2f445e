package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	want := Config{
		Dir:       ".",
		Output:    "OUTFILE.CSV",
		Pattern:   "C????L%d",
		RoleIndex: 5,
		MinSuffix: 1,
		MaxSuffix: 99,
		Format:    "csv",
		LogLevel:  "info",
	}
	if cfg != want {
		t.Fatalf("LoadFrom() = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() defaults error = %v", err)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{
		"FWCSV_DIR":        "/data",
		"FWCSV_OUTPUT":     "out.xlsx",
		"FWCSV_FORMAT":     "xlsx",
		"FWCSV_MAX_SUFFIX": "9",
		"FWCSV_CRLF":       "true",
		"FWCSV_LAYOUTS":    "layouts.yaml",
		"FWCSV_LOG_LEVEL":  "debug",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Dir != "/data" || cfg.Output != "out.xlsx" || cfg.Format != "xlsx" || cfg.MaxSuffix != 9 || !cfg.CRLF || cfg.Layouts != "layouts.yaml" || cfg.LogLevel != "debug" {
		t.Fatalf("LoadFrom() = %+v", cfg)
	}
}

func TestLoadFromBadNumber(t *testing.T) {
	t.Parallel()

	if _, err := LoadFrom(map[string]string{"FWCSV_MIN_SUFFIX": "one"}); err == nil {
		t.Fatalf("LoadFrom() should reject a non-numeric suffix")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "noOutput", mutate: func(c *Config) { c.Output = " " }, want: "output is required"},
		{name: "patternWithoutVerb", mutate: func(c *Config) { c.Pattern = "C????L" }, want: "exactly one %d"},
		{name: "negativeRoleIndex", mutate: func(c *Config) { c.RoleIndex = -1 }, want: "role index"},
		{name: "invertedRange", mutate: func(c *Config) { c.MinSuffix = 10; c.MaxSuffix = 2 }, want: "suffix range"},
		{name: "zeroRange", mutate: func(c *Config) { c.MinSuffix = 0; c.MaxSuffix = 0 }, want: "suffix range"},
		{name: "format", mutate: func(c *Config) { c.Format = "json" }, want: "csv or xlsx"},
		{name: "logLevel", mutate: func(c *Config) { c.LogLevel = "loud" }, want: "unknown log level"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
