package fwcsv

import (
	"bytes"
	"fmt"
	"io"
)

const defaultReadSize = 1 << 10 // 1024 bytes

// ReadError contains the line being read when the source failed.
type ReadError struct {
	Line int
	Err  error
}

// Error formats the read error message with the stored Line and Err values.
func (e *ReadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("fwcsv: read error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying Err so ReadError participates in errors.Unwrap.
func (e *ReadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LineReader returns the lines of a fixed-width file one at a time.
//
// Lines end at "\n"; one "\r" right before it is dropped so "\r\n" files read the same. A "\r" anywhere
// else is line data. A final line without terminator is still returned. The line buffer grows to fit
// the longest line.
type LineReader struct {
	src io.Reader

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	lineBuf  []byte
	finished bool
	line     int
}

// NewLineReader creates a LineReader that consumes r, panicking if r is nil.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("fwcsv: reader source cannot be nil")
	}
	return &LineReader{
		src:     r,
		buf:     make([]byte, defaultReadSize),
		lineBuf: make([]byte, 0, 512),
	}
}

// Line reports the 1-based number of the last line returned by ReadLine.
func (r *LineReader) Line() int {
	if r == nil {
		return 0
	}
	return r.line
}

// ReadLine returns the next line. io.EOF signals that no more lines remain; any other source
// error is returned as a *ReadError.
func (r *LineReader) ReadLine() (string, error) {
	b, err := r.ReadLineBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadLineBytes is ReadLine without the copy: the returned slice is only valid until the next call.
func (r *LineReader) ReadLineBytes() ([]byte, error) {
	if r == nil || r.src == nil || r.finished {
		return nil, io.EOF
	}
	r.lineBuf = r.lineBuf[:0]
	pending := false

	for {
		if r.bufPos >= r.bufLen {
			if r.bufErr != nil {
				err := r.bufErr
				r.bufErr = nil
				if err != io.EOF {
					r.finished = true
					return nil, &ReadError{Line: r.line + 1, Err: err}
				}
				r.finished = true
				// Flush a trailing line if data ended without a terminator.
				if pending {
					r.line++
					return r.lineBuf, nil
				}
				return nil, io.EOF
			}
			if err := r.fill(); err != nil {
				r.bufErr = err
			}
			continue
		}

		data := r.buf[r.bufPos:r.bufLen]
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			r.lineBuf = append(r.lineBuf, data...)
			r.bufPos = r.bufLen
			pending = true
			continue
		}

		r.lineBuf = append(r.lineBuf, data[:i]...)
		r.bufPos += i + 1
		if n := len(r.lineBuf); n > 0 && r.lineBuf[n-1] == '\r' {
			r.lineBuf = r.lineBuf[:n-1]
		}
		r.line++
		return r.lineBuf, nil
	}
}

// fill pulls the next chunk from src into the working buffer.
func (r *LineReader) fill() error {
	n, err := r.src.Read(r.buf)
	r.bufPos = 0
	r.bufLen = n
	if n == 0 && err == nil {
		return nil
	}
	return err
}
