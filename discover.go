package fwcsv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Discovery defaults.
const (
	DefaultPattern   = "C????L%d"
	DefaultRoleIndex = 5
	DefaultMinSuffix = 1
	DefaultMaxSuffix = 99
)

var (
	// ErrRoleIndex is returned when a matched file name is too short to carry the role byte.
	ErrRoleIndex = errors.New("fwcsv: file name too short for role index")
	// ErrSuffixRange is returned when MinSuffix exceeds MaxSuffix.
	ErrSuffixRange = errors.New("fwcsv: min suffix greater than max suffix")
)

// Pair is one discovered L/E file pair.
type Pair struct {
	Suffix int
	L      string
	E      string
}

// Discovery finds L files by a numbered glob pattern and derives their E companions.
//
// Pattern is a glob with one %d verb for the suffix, matched against file names in Dir. Dir and any
// directory part of Pattern are taken literally, never as glob syntax. The E name is the L base name
// with the byte at RoleIndex replaced by ERole. The zero value scans "C????L1" .. "C????L99" in the
// working directory.
type Discovery struct {
	Dir       string
	Pattern   string
	RoleIndex int
	ERole     byte
	MinSuffix int
	MaxSuffix int
}

func (d Discovery) withDefaults() Discovery {
	if d.Dir == "" {
		d.Dir = "."
	}
	if d.Pattern == "" {
		d.Pattern = DefaultPattern
	}
	if d.RoleIndex == 0 {
		d.RoleIndex = DefaultRoleIndex
	}
	if d.ERole == 0 {
		d.ERole = 'E'
	}
	if d.MinSuffix == 0 && d.MaxSuffix == 0 {
		d.MinSuffix, d.MaxSuffix = DefaultMinSuffix, DefaultMaxSuffix
	}
	return d
}

// Each calls fn for every pair in increasing suffix order. Suffixes without a matching file are
// skipped; the scan always runs to MaxSuffix. An error from fn stops the scan and is returned.
func (d Discovery) Each(fn func(Pair) error) error {
	d = d.withDefaults()
	if d.MinSuffix > d.MaxSuffix {
		return ErrSuffixRange
	}
	listings := make(map[string][]fs.DirEntry)
	for n := d.MinSuffix; n <= d.MaxSuffix; n++ {
		lPath, ok, err := d.match(n, listings)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		ePath, err := d.companion(lPath)
		if err != nil {
			return err
		}
		if err := fn(Pair{Suffix: n, L: lPath, E: ePath}); err != nil {
			return err
		}
	}
	return nil
}

// Discover collects every pair Each would visit.
func (d Discovery) Discover() ([]Pair, error) {
	var pairs []Pair
	err := d.Each(func(p Pair) error {
		pairs = append(pairs, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// match returns the first regular file, in lexical order, matching the pattern for suffix n.
// Directory listings are read once and kept in listings.
func (d Discovery) match(n int, listings map[string][]fs.DirEntry) (string, bool, error) {
	sub, pattern := filepath.Split(fmt.Sprintf(d.Pattern, n))
	if _, err := filepath.Match(pattern, ""); err != nil {
		return "", false, fmt.Errorf("fwcsv: pattern %q: %w", pattern, err)
	}
	dir := filepath.Join(d.Dir, sub)
	entries, ok := listings[dir]
	if !ok {
		var err error
		entries, err = os.ReadDir(dir)
		if err != nil && !(sub != "" && errors.Is(err, fs.ErrNotExist)) {
			return "", false, fmt.Errorf("fwcsv: list %s: %w", dir, err)
		}
		listings[dir] = entries
	}
	// os.ReadDir sorts by name.
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		return path, true, nil
	}
	return "", false, nil
}

func (d Discovery) companion(lPath string) (string, error) {
	dir, base := filepath.Split(lPath)
	if d.RoleIndex < 0 || d.RoleIndex >= len(base) {
		return "", fmt.Errorf("%w: %q index %d", ErrRoleIndex, base, d.RoleIndex)
	}
	b := []byte(base)
	b[d.RoleIndex] = d.ERole
	return dir + string(b), nil
}
