package fwcsv

// Record holds the fields of one line, one per layout column, in column order.
type Record []string

// Field returns the i-th field, or "" when i is out of range.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Extract slices line into one field per column of l.
//
// Fields are verbatim byte ranges: padding is kept and nothing is trimmed. A line shorter than a column
// yields the bytes that are present, or "" when the column starts past the end. A trailing "\n" or "\r\n"
// is ignored.
func Extract(line string, l Layout) Record {
	line = trimEOL(line)
	rec := make(Record, len(l.Columns))
	for i, c := range l.Columns {
		rec[i] = slice(line, c.Start-1, c.Length)
	}
	return rec
}

// ExtractBytes is Extract for a byte slice. The returned fields do not alias b.
func ExtractBytes(b []byte, l Layout) Record {
	return Extract(string(b), l)
}

func slice(s string, off, n int) string {
	if off < 0 {
		off = 0
	}
	if off >= len(s) || n <= 0 {
		return ""
	}
	end := off + n
	if end > len(s) {
		end = len(s)
	}
	return s[off:end]
}

func trimEOL(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
