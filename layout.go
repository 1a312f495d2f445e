package fwcsv

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnStart is returned when a column does not start at byte 1 or later.
	ErrColumnStart = errors.New("fwcsv: column start must be 1 or greater")
	// ErrColumnLength is returned when a column declares a negative length.
	ErrColumnLength = errors.New("fwcsv: column length must not be negative")
)

// Column describes one field of a fixed-width record.
type Column struct {
	// Start is the 1-based byte offset of the field.
	Start int `yaml:"start"`
	// Length is the width of the field in bytes.
	Length int `yaml:"length"`
	// Label names the field. An empty label is allowed.
	Label string `yaml:"label"`
}

// ColumnError reports the offending column of an invalid Layout.
type ColumnError struct {
	Layout string
	Index  int
	Err    error
}

// Error formats the column error with the layout name and column index.
func (e *ColumnError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("fwcsv: layout %q column %d: %v", e.Layout, e.Index, e.Err)
}

// Unwrap returns the underlying Err.
func (e *ColumnError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Layout is an ordered list of columns describing one file type.
// Layouts are shared between goroutines and must not be modified after creation.
type Layout struct {
	Name    string
	Columns []Column
}

// Len returns the number of columns, which is also the length of every Record extracted with l.
func (l Layout) Len() int { return len(l.Columns) }

// Index returns the position of the first column labelled label, or -1.
func (l Layout) Index(label string) int {
	for i, c := range l.Columns {
		if c.Label == label {
			return i
		}
	}
	return -1
}

// Width returns the smallest line length that fills every column.
func (l Layout) Width() int {
	w := 0
	for _, c := range l.Columns {
		if end := c.Start - 1 + c.Length; end > w {
			w = end
		}
	}
	return w
}

// Validate reports the first column with an impossible extent.
func (l Layout) Validate() error {
	for i, c := range l.Columns {
		switch {
		case c.Start < 1:
			return &ColumnError{Layout: l.Name, Index: i, Err: ErrColumnStart}
		case c.Length < 0:
			return &ColumnError{Layout: l.Name, Index: i, Err: ErrColumnLength}
		}
	}
	return nil
}

// ELayout describes the estimate ("E") file.
var ELayout = Layout{
	Name: "E",
	Columns: []Column{
		{1, 4, "Contract Number"},
		{5, 4, "Project Number"},
		{9, 1, "Estimate Key"},
		{10, 2, "Estimate Number"},
		{12, 6, "Estimate Date"}, // YYMMDD
		{18, 4, "Record Type"},
		{22, 4, "Item Key"},
		{26, 8, "Item Code"},
		{34, 4, "Unit of Measure"},
		{38, 25, "Item Description1"},
		{63, 25, "Item Description2"},
		{88, 14, "Bid Quantity"},
		{102, 14, "Authorized Quantity"},
		{116, 10, "Bidder Unit Price"},
		{160, 14, "On-hand Invoice Quant."},
		{174, 14, "On-hand Invoice Price"},
		{188, 15, "Estimate Quantity to Date"},
		{259, 2, "Item percent retained"},
		{339, 3, "Material Source"},
		{342, 3, "Material Source"},
		{345, 1, "Material Source"},
		{386, 10, ""},
	},
}

// LLayout describes the ledger ("L") file. Its fields are not projected into the output.
var LLayout = Layout{
	Name: "L",
	Columns: []Column{
		{1, 10, "Unknown"},
		{11, 10, "Unknown"},
	},
}

// E record positions used by EstimateProjection.
const (
	EContractNumber = iota
	EProjectNumber
	EEstimateKey
	EEstimateNumber
	EEstimateDate
	ERecordType
	EItemKey
	EItemCode
)
