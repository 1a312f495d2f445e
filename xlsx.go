package fwcsv

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet name used by NewXLSXWriter when none is given.
const DefaultSheet = "Sheet1"

var errXLSXClosed = errors.New("fwcsv: xlsx writer is closed")

// XLSXWriter collects rows into a single worksheet. Values are stored as text cells without CSV escaping.
type XLSXWriter struct {
	file   *excelize.File
	sw     *excelize.StreamWriter
	row    int
	closed bool
}

// NewXLSXWriter creates a workbook with one worksheet named sheet.
func NewXLSXWriter(sheet string) (*XLSXWriter, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("fwcsv: xlsx sheet %q: %w", sheet, err)
		}
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fwcsv: xlsx stream: %w", err)
	}
	return &XLSXWriter{file: f, sw: sw}, nil
}

// Write appends row as the next worksheet row.
func (x *XLSXWriter) Write(row []string) error {
	if x.closed {
		return errXLSXClosed
	}
	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}
	vals := make([]any, len(row))
	for i, v := range row {
		vals[i] = v
	}
	return x.sw.SetRow(cell, vals)
}

// Rows reports how many rows have been written.
func (x *XLSXWriter) Rows() int { return x.row }

// Close finishes the worksheet and writes the workbook to dst.
func (x *XLSXWriter) Close(dst io.Writer) error {
	if x.closed {
		return errXLSXClosed
	}
	x.closed = true
	defer x.file.Close()
	if err := x.sw.Flush(); err != nil {
		return fmt.Errorf("fwcsv: xlsx flush: %w", err)
	}
	if _, err := x.file.WriteTo(dst); err != nil {
		return fmt.Errorf("fwcsv: xlsx write: %w", err)
	}
	return nil
}
