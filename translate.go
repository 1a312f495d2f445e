package fwcsv

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// File roles, as reported by OpenError.
const (
	RoleLedger   = "Ledger"
	RoleEstimate = "Estimate"
	RoleOutput   = "output"
)

// OpenError reports a file that could not be opened or created.
type OpenError struct {
	Role string
	Path string
	Err  error
}

// Error formats the message as "could not open <Role> file <Path>: <Err>".
func (e *OpenError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("could not open %s file %s: %v", e.Role, e.Path, e.Err)
}

// Unwrap returns the underlying Err.
func (e *OpenError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Projection selects the output row from an E record.
//
// The first output field concatenates the Composite fields with no separator; the Fields follow in order.
type Projection struct {
	Composite []int
	Fields    []int
}

// EstimateProjection emits the item number (Item Code followed by Item Key) and then Contract Number,
// Project Number, Estimate Key, Estimate Number and Estimate Date.
var EstimateProjection = Projection{
	Composite: []int{EItemCode, EItemKey},
	Fields:    []int{EContractNumber, EProjectNumber, EEstimateKey, EEstimateNumber, EEstimateDate},
}

// Row builds the output row for rec.
func (p Projection) Row(rec Record) []string {
	row := make([]string, 0, len(p.Fields)+1)
	if len(p.Composite) > 0 {
		var b strings.Builder
		for _, i := range p.Composite {
			b.WriteString(rec.Field(i))
		}
		row = append(row, b.String())
	}
	for _, i := range p.Fields {
		row = append(row, rec.Field(i))
	}
	return row
}

// Translator turns an L/E file pair into output rows.
// The zero value uses LLayout, ELayout and EstimateProjection.
type Translator struct {
	L, E       Layout
	Projection Projection
	Log        *slog.Logger
}

func (t *Translator) layouts() (Layout, Layout, Projection) {
	l, e, p := t.L, t.E, t.Projection
	if l.Columns == nil {
		l = LLayout
	}
	if e.Columns == nil {
		e = ELayout
	}
	if p.Composite == nil && p.Fields == nil {
		p = EstimateProjection
	}
	return l, e, p
}

func (t *Translator) logger() *slog.Logger {
	if t.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t.Log
}

// Translate reads one line from each source per row and writes the projected E record to out.
//
// It stops as soon as either source runs out of lines, so the row count is that of the shorter
// source. The L line is extracted and discarded. The first read or write error is returned.
func (t *Translator) Translate(out RowWriter, l, e io.Reader) (int, error) {
	lLayout, eLayout, proj := t.layouts()
	lr := NewLineReader(l)
	er := NewLineReader(e)
	rows := 0

	for {
		lLine, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("fwcsv: %s: %w", RoleLedger, err)
		}
		eLine, err := er.ReadLine()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("fwcsv: %s: %w", RoleEstimate, err)
		}

		_ = Extract(lLine, lLayout)
		rec := Extract(eLine, eLayout)

		if err := out.Write(proj.Row(rec)); err != nil {
			return rows, fmt.Errorf("fwcsv: write row %d: %w", rows+1, err)
		}
		rows++
	}
}

// TranslateFiles opens the pair, translates it into out and closes both files on every path.
func (t *Translator) TranslateFiles(out RowWriter, lPath, ePath string) (int, error) {
	lf, err := os.Open(lPath)
	if err != nil {
		return 0, &OpenError{Role: RoleLedger, Path: lPath, Err: err}
	}
	defer lf.Close()

	ef, err := os.Open(ePath)
	if err != nil {
		return 0, &OpenError{Role: RoleEstimate, Path: ePath, Err: err}
	}
	defer ef.Close()

	rows, err := t.Translate(out, lf, ef)
	t.logger().Debug("pair translated", "l", lPath, "e", ePath, "rows", rows)
	return rows, err
}
