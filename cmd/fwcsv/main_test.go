package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// eLine lays out contract 1234, project 5678, estimate key 9, number 01, date 250101,
// item key ABCD and item code ITEM0001 at their E columns.
const eLine = "12345678901250101" + "    " + "ABCD" + "ITEM0001"

func TestRunSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CABCDL1"), "ledger\n")
	writeFile(t, filepath.Join(dir, "CABCDE1"), eLine+"\n")
	writeFile(t, filepath.Join(dir, "CABCDL7"), "ledger\n")
	writeFile(t, filepath.Join(dir, "CABCDE7"), eLine+"\n")
	out := filepath.Join(dir, "OUTFILE.CSV")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-dir", dir, "-o", out, "-log-level", "debug"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stdout=%q stderr=%q", code, stdout.String(), stderr.String())
	}
	if got := stdout.String(); got != "4 files processed\n" {
		t.Fatalf("stdout = %q", got)
	}
	if !strings.Contains(stderr.String(), `"run_id"`) {
		t.Fatalf("stderr log lacks run_id: %q", stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	row := " ITEM0001ABCD, 1234, 5678, 9, 01, 250101\n"
	if string(data) != row+row {
		t.Fatalf("output = %q", data)
	}
}

func TestRunMissingEstimateFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CABCDL1"), "ledger\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-dir", dir, "-o", filepath.Join(dir, "out.csv")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.HasPrefix(stdout.String(), "Error: could not open Estimate file ") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunOutputNotCreatable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-dir", dir, "-o", filepath.Join(dir, "nope", "out.csv")}, &stdout, &stderr)
	if code != 1 || !strings.HasPrefix(stdout.String(), "Error: could not open output file ") {
		t.Fatalf("run() = %d, stdout = %q", code, stdout.String())
	}
}

func TestRunBadUsage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Fatalf("run() with unknown flag = %d, want 2", code)
	}

	stdout.Reset()
	if code := run([]string{"-format", "json", "-dir", t.TempDir()}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() with bad format = %d, want 1", code)
	}
	if !strings.HasPrefix(stdout.String(), "Error: ") {
		t.Fatalf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"-min", "0", "-max", "0", "-dir", t.TempDir()}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() with empty suffix range = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "suffix range") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunLayoutFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	layouts := filepath.Join(dir, "layouts.yaml")
	writeFile(t, layouts, "layouts:\n  E:\n    - {start: 1, length: 2, label: A}\n    - {start: 3, length: 2, label: B}\nprojection:\n  composite: [1, 0]\n  fields: [0]\n")
	writeFile(t, filepath.Join(dir, "CABCDL1"), "x\n")
	writeFile(t, filepath.Join(dir, "CABCDE1"), "aabb\n")
	out := filepath.Join(dir, "out.csv")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-dir", dir, "-o", out, "-layouts", layouts}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stdout=%q stderr=%q", code, stdout.String(), stderr.String())
	}
	data, _ := os.ReadFile(out)
	if string(data) != " bbaa, aa\n" {
		t.Fatalf("output = %q", data)
	}

	stdout.Reset()
	code := run([]string{"-dir", dir, "-o", out, "-layouts", filepath.Join(dir, "missing.yaml")}, &stdout, &stderr)
	if code != 1 || !strings.HasPrefix(stdout.String(), "Error: ") {
		t.Fatalf("run() with missing layouts = %d, stdout = %q", code, stdout.String())
	}
}
