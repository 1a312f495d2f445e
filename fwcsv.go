// # fwcsv: Fixed-Width Record Pairs to CSV
//
// fwcsv converts paired fixed-column data files ("L" and "E" files) into a single CSV file. Column layouts are plain
// data tables of (1-based start, byte length, label) triples; every line is sliced positionally, never parsed.
//
// # Features
//
// - Declarative column layouts (`Layout`, `Column`) with built-in `ELayout` and `LLayout`, overridable from YAML.
// - Positional extraction (`Extract`) that tolerates short lines without errors or padding.
// - CSV field encoding (`EncodeField`) that doubles inner quotes and quotes comma-bearing values.
// - A line-pair `Translator` that stops as soon as either input is exhausted.
// - File-pair `Discovery` over a numbered naming pattern and a `Run` driver producing one CSV (or XLSX) file.
//
// # Getting Started
//
// The command in `cmd/fwcsv` scans the working directory for `C????L1` .. `C????L99`, pairs each with its `E`
// companion and writes `OUTFILE.CSV`. Library users call `Extract`, `EncodeField` and `Translator.Translate` directly.
package fwcsv
