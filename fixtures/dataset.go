// Package fixtures holds the literal record sets written by the generators.
//
// A Dataset is a small table: an ordered list of typed columns and rows of
// Go values, one per column. Datasets are constructed once at init and never
// mutated; accessors hand out copies.
package fixtures

import (
	"fmt"
	"sort"

	"github.com/gear6io/fixturegen/pkg/errors"
)

// Package-specific error codes
var (
	FixturesUnknownDataset = errors.MustNewCode("fixtures.unknown_dataset")
	FixturesRowWidth       = errors.MustNewCode("fixtures.row_width_mismatch")
	FixturesValueType      = errors.MustNewCode("fixtures.value_type_mismatch")
	FixturesUnknownColumn  = errors.MustNewCode("fixtures.unknown_column")
)

// ColumnType is the logical type of a column, independent of any file format.
type ColumnType int

const (
	String ColumnType = iota
	Int32
	Int64
)

func (t ColumnType) String() string {
	switch t {
	case String:
		return "string"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Column is a named, typed column.
type Column struct {
	Name string
	Type ColumnType
}

// Record is one row keyed by column name.
type Record map[string]any

// Dataset is a literal table.
type Dataset struct {
	// Name is the lookup key, e.g. "users".
	Name string
	// RecordName names the row type in formats that need one (Avro).
	RecordName string
	// Sheet names the worksheet in formats that have one (XLSX).
	Sheet   string
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns the values of one column, top to bottom.
func (d *Dataset) ColumnValues(name string) ([]any, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, errors.New(FixturesUnknownColumn, "column not found", nil).
			AddContext("dataset", d.Name).
			AddContext("column", name)
	}

	values := make([]any, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Records returns the rows as records, in row order.
func (d *Dataset) Records() []Record {
	records := make([]Record, len(d.Rows))
	for i, row := range d.Rows {
		rec := make(Record, len(d.Columns))
		for j, c := range d.Columns {
			rec[c.Name] = row[j]
		}
		records[i] = rec
	}
	return records
}

// Clone returns a copy that shares nothing mutable with d. Values are
// scalars, so copying each row is enough.
func (d *Dataset) Clone() *Dataset {
	c := *d
	c.Columns = append([]Column(nil), d.Columns...)
	c.Rows = make([][]any, len(d.Rows))
	for i, row := range d.Rows {
		c.Rows[i] = append([]any(nil), row...)
	}
	return &c
}

// Validate checks that every row has one value per column and that each value
// converts to its column type.
func (d *Dataset) Validate() error {
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return errors.Newf(FixturesRowWidth, "row %d has %d values, want %d", i, len(row), len(d.Columns)).
				AddContext("dataset", d.Name)
		}
		for j, c := range d.Columns {
			if err := checkValue(c.Type, row[j]); err != nil {
				return errors.New(FixturesValueType, "value does not match column type", err).
					AddContext("dataset", d.Name).
					AddContext("column", c.Name).
					AddContext("row", fmt.Sprintf("%d", i))
			}
		}
	}
	return nil
}

func checkValue(t ColumnType, v any) error {
	switch t {
	case String:
		_, err := AsString(v)
		return err
	case Int32:
		_, err := AsInt32(v)
		return err
	case Int64:
		_, err := AsInt64(v)
		return err
	default:
		return errors.Newf(FixturesValueType, "unsupported column type %s", t)
	}
}

var registry = map[string]*Dataset{}

func register(d *Dataset) {
	if err := d.Validate(); err != nil {
		panic(err)
	}
	registry[d.Name] = d
}

// Lookup returns a copy of the builtin dataset with the given name.
func Lookup(name string) (*Dataset, error) {
	d, ok := registry[name]
	if !ok {
		return nil, errors.New(FixturesUnknownDataset, "unknown dataset", nil).
			AddContext("dataset", name)
	}
	return d.Clone(), nil
}

// Names lists the builtin datasets, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
