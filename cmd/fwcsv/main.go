// Command fwcsv converts every C????L<n> / C????E<n> fixed-width file pair in a directory into one CSV file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oleg578/fwcsv"
	"github.com/oleg578/fwcsv/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 on any fatal error, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fatal(stdout, err)
		return 1
	}

	fs := flag.NewFlagSet("fwcsv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding the L and E files")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "output file")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "glob for L files with one %d for the suffix")
	fs.IntVar(&cfg.RoleIndex, "role-index", cfg.RoleIndex, "byte of the file name that holds the L/E role")
	fs.IntVar(&cfg.MinSuffix, "min", cfg.MinSuffix, "first suffix to scan")
	fs.IntVar(&cfg.MaxSuffix, "max", cfg.MaxSuffix, "last suffix to scan")
	fs.StringVar(&cfg.Layouts, "layouts", cfg.Layouts, "YAML file overriding the built-in column layouts")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: csv or xlsx")
	fs.BoolVar(&cfg.CRLF, "crlf", cfg.CRLF, "terminate CSV rows with \\r\\n")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fatal(stdout, err)
		return 1
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.Must(uuid.NewV7()).String())

	layouts := fwcsv.DefaultLayouts()
	if cfg.Layouts != "" {
		layouts, err = fwcsv.LoadLayoutFile(cfg.Layouts)
		if err != nil {
			logger.Error("load layouts", "path", cfg.Layouts, "error", err)
			fatal(stdout, err)
			return 1
		}
		logger.Debug("layouts loaded", "path", cfg.Layouts, "l_columns", layouts.L.Len(), "e_columns", layouts.E.Len())
	}

	sum, err := fwcsv.Run(fwcsv.RunConfig{
		Discovery: fwcsv.Discovery{
			Dir:       cfg.Dir,
			Pattern:   cfg.Pattern,
			RoleIndex: cfg.RoleIndex,
			MinSuffix: cfg.MinSuffix,
			MaxSuffix: cfg.MaxSuffix,
		},
		Layouts: layouts,
		Output:  cfg.Output,
		Format:  cfg.Format,
		UseCRLF: cfg.CRLF,
		Log:     logger,
	})
	if err != nil {
		fatal(stdout, err)
		return 1
	}

	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(stdout, "%d files processed\n", sum.Files)
	return 0
}

func fatal(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}
