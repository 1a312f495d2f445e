package fwcsv

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DefaultOutput is the output file name used when RunConfig.Output is empty.
const DefaultOutput = "OUTFILE.CSV"

// ErrUnknownFormat is returned for an output format other than FormatCSV or FormatXLSX.
var ErrUnknownFormat = errors.New("fwcsv: unknown output format")

// RunConfig describes one conversion run.
type RunConfig struct {
	Discovery Discovery
	Layouts   LayoutSet
	Output    string
	Format    string
	UseCRLF   bool
	Log       *slog.Logger
}

// Summary reports what a run processed. Files counts both members of every pair.
type Summary struct {
	Pairs int
	Files int
	Rows  int
}

// sink is the output side of a run: a row writer plus whatever finishing it needs.
type sink interface {
	RowWriter
	finish(dst io.Writer) error
}

type csvSink struct{ *Writer }

func (s csvSink) finish(io.Writer) error { return s.Flush() }

type xlsxSink struct{ *XLSXWriter }

func (s xlsxSink) finish(dst io.Writer) error { return s.Close(dst) }

func checkFormat(format string) error {
	switch format {
	case "", FormatCSV, FormatXLSX:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func newSink(format string, dst io.Writer, crlf bool) (sink, error) {
	switch format {
	case "", FormatCSV:
		w := NewWriter(dst)
		w.UseCRLF = crlf
		return csvSink{w}, nil
	case FormatXLSX:
		x, err := NewXLSXWriter(DefaultSheet)
		if err != nil {
			return nil, err
		}
		return xlsxSink{x}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Run creates the output file, translates every discovered pair into it in suffix order and closes it.
//
// The first error stops the run. Rows already produced are still flushed to the output.
func Run(cfg RunConfig) (sum Summary, err error) {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	layouts := cfg.Layouts
	if layouts.E.Columns == nil && layouts.L.Columns == nil {
		layouts = DefaultLayouts()
	}
	if err := layouts.Validate(); err != nil {
		return sum, err
	}
	if err := checkFormat(cfg.Format); err != nil {
		return sum, err
	}
	out := cfg.Output
	if out == "" {
		out = DefaultOutput
	}

	f, err := os.Create(out)
	if err != nil {
		return sum, &OpenError{Role: RoleOutput, Path: out, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("fwcsv: close %s: %w", out, cerr)
		}
	}()

	s, err := newSink(cfg.Format, f, cfg.UseCRLF)
	if err != nil {
		return sum, err
	}

	tr := layouts.Translator()
	tr.Log = log
	log.Info("run started", "output", out, "format", cfg.Format, "pattern", cfg.Discovery.withDefaults().Pattern)

	walkErr := cfg.Discovery.Each(func(p Pair) error {
		rows, err := tr.TranslateFiles(s, p.L, p.E)
		sum.Rows += rows
		if err != nil {
			return err
		}
		sum.Pairs++
		sum.Files += 2
		return nil
	})
	if ferr := s.finish(f); ferr != nil && walkErr == nil {
		walkErr = fmt.Errorf("fwcsv: finish %s: %w", out, ferr)
	}
	if walkErr != nil {
		log.Error("run failed", "error", walkErr, "pairs", sum.Pairs, "rows", sum.Rows)
		return sum, walkErr
	}
	log.Info("run finished", "pairs", sum.Pairs, "files", sum.Files, "rows", sum.Rows)
	return sum, nil
}
