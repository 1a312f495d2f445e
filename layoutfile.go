package fwcsv

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrProjectionIndex is returned when a projection refers to a column the E layout does not have.
var ErrProjectionIndex = errors.New("fwcsv: projection index out of range")

// LayoutSet groups the layouts and projection used for one run.
type LayoutSet struct {
	L          Layout
	E          Layout
	Projection Projection
}

// DefaultLayouts returns the built-in tables.
func DefaultLayouts() LayoutSet {
	return LayoutSet{L: LLayout, E: ELayout, Projection: EstimateProjection}
}

// Translator returns a Translator configured with s.
func (s LayoutSet) Translator() *Translator {
	return &Translator{L: s.L, E: s.E, Projection: s.Projection}
}

type layoutFile struct {
	Layouts struct {
		L []Column `yaml:"L"`
		E []Column `yaml:"E"`
	} `yaml:"layouts"`
	Projection *struct {
		Composite []int `yaml:"composite"`
		Fields    []int `yaml:"fields"`
	} `yaml:"projection"`
}

// LoadLayouts reads a YAML layout document:
//
//	layouts:
//	  E:
//	    - {start: 1, length: 4, label: Contract Number}
//	  L:
//	    - {start: 1, length: 10, label: Unknown}
//	projection:
//	  composite: [7, 6]
//	  fields: [0, 1, 2, 3, 4]
//
// Roles or a projection missing from the document keep their built-in values.
func LoadLayouts(r io.Reader) (LayoutSet, error) {
	set := DefaultLayouts()

	var doc layoutFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return LayoutSet{}, fmt.Errorf("fwcsv: parse layouts: %w", err)
	}

	if len(doc.Layouts.L) > 0 {
		set.L = Layout{Name: "L", Columns: doc.Layouts.L}
	}
	if len(doc.Layouts.E) > 0 {
		set.E = Layout{Name: "E", Columns: doc.Layouts.E}
	}
	if doc.Projection != nil {
		set.Projection = Projection{Composite: doc.Projection.Composite, Fields: doc.Projection.Fields}
	}
	if err := set.Validate(); err != nil {
		return LayoutSet{}, err
	}
	return set, nil
}

// LoadLayoutFile reads a YAML layout document from path.
func LoadLayoutFile(path string) (LayoutSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return LayoutSet{}, fmt.Errorf("fwcsv: read layouts %s: %w", path, err)
	}
	defer f.Close()
	return LoadLayouts(f)
}

// Validate checks both layouts and that every projected index exists in the E layout.
func (s LayoutSet) Validate() error {
	if err := s.L.Validate(); err != nil {
		return err
	}
	if err := s.E.Validate(); err != nil {
		return err
	}
	for _, idx := range [][]int{s.Projection.Composite, s.Projection.Fields} {
		for _, i := range idx {
			if i < 0 || i >= s.E.Len() {
				return fmt.Errorf("%w: %d (E has %d columns)", ErrProjectionIndex, i, s.E.Len())
			}
		}
	}
	return nil
}
