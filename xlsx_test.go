package fwcsv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter(t *testing.T) {
	t.Parallel()

	x, err := NewXLSXWriter("Estimates")
	if err != nil {
		t.Fatalf("NewXLSXWriter() error = %v", err)
	}
	rows := [][]string{
		{"ITEM0001ABCD", "1234", "a,\"b"},
		{"ITEM0002ABCD", "5678", "plain"},
	}
	for _, row := range rows {
		if err := x.Write(row); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if x.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", x.Rows())
	}

	var buf bytes.Buffer
	if err := x.Close(&buf); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := x.Write([]string{"late"}); !errors.Is(err, errXLSXClosed) {
		t.Fatalf("Write() after Close = %v, want errXLSXClosed", err)
	}
	if err := x.Close(&buf); !errors.Is(err, errXLSXClosed) {
		t.Fatalf("second Close() = %v, want errXLSXClosed", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	got, err := f.GetRows("Estimates")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(got) != 2 || got[0][2] != "a,\"b" || got[1][1] != "5678" {
		t.Fatalf("GetRows() = %q", got)
	}
}
