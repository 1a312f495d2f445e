package fwcsv

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const defaultBufferSize = 1 << 12 // 4096 bytes

var (
	errNilWriter      = errors.New("fwcsv: writer is nil")
	errWriterNoTarget = errors.New("fwcsv: writer destination cannot be nil")
)

// EncodeField returns the CSV form of value.
//
// A value containing a double quote is wrapped in quotes with every inner quote doubled. Otherwise a value
// containing a comma is wrapped in quotes as is. Any other value is returned unchanged. The quote check
// runs first so values holding both characters are still escaped.
func EncodeField(value string) string {
	switch {
	case strings.IndexByte(value, '"') >= 0:
		var b strings.Builder
		b.Grow(len(value) + 4)
		writeQuoted(&b, value)
		return b.String()
	case strings.IndexByte(value, ',') >= 0:
		return `"` + value + `"`
	default:
		return value
	}
}

// EncodeFieldPtr is EncodeField for an optional value; nil encodes to "".
func EncodeFieldPtr(value *string) string {
	if value == nil {
		return ""
	}
	return EncodeField(*value)
}

// RowWriter receives translated output rows.
type RowWriter interface {
	Write(row []string) error
}

// Writer emits rows of CSV-encoded fields.
//
// By default every field is preceded by a single space, so a row reads " a, b, c" followed by "\n".
type Writer struct {
	dst *bufio.Writer

	// LeadingSpace writes a space before every field. NewWriter enables it.
	LeadingSpace bool
	// UseCRLF writes rows terminated with \r\n when set.
	UseCRLF bool

	err error
}

// NewWriter creates a buffered Writer with LeadingSpace enabled.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:          bufio.NewWriterSize(w, defaultBufferSize),
		LeadingSpace: true,
	}
}

// Reset updates the underlying writer while preserving the configuration flags.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write encodes and emits a single row followed by the configured line terminator.
func (w *Writer) Write(row []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	for i := range row {
		if i > 0 {
			if err := w.dst.WriteByte(','); err != nil {
				w.err = err
				return err
			}
		}
		if w.LeadingSpace {
			if err := w.dst.WriteByte(' '); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(row[i]); err != nil {
			w.err = err
			return err
		}
	}

	var err error
	if w.UseCRLF {
		_, err = w.dst.WriteString("\r\n")
	} else {
		err = w.dst.WriteByte('\n')
	}
	if err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple rows, stopping at the first error.
func (w *Writer) WriteAll(rows [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) writeField(field string) error {
	switch {
	case strings.IndexByte(field, '"') >= 0:
		return writeQuoted(w.dst, field)
	case strings.IndexByte(field, ',') >= 0:
		if err := w.dst.WriteByte('"'); err != nil {
			return err
		}
		if _, err := w.dst.WriteString(field); err != nil {
			return err
		}
		return w.dst.WriteByte('"')
	default:
		_, err := w.dst.WriteString(field)
		return err
	}
}

type byteStringWriter interface {
	io.ByteWriter
	io.StringWriter
}

// writeQuoted writes field wrapped in quotes, doubling each inner quote.
func writeQuoted(dst byteStringWriter, field string) error {
	if err := dst.WriteByte('"'); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			if _, err := dst.WriteString(field[start : i+1]); err != nil {
				return err
			}
			if err := dst.WriteByte('"'); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(field) {
		if _, err := dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return dst.WriteByte('"')
}
