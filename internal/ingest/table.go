package ingest

import "fmt"

// Table is the merged, numeric measurement table produced by Normalize. Cells are aligned
// with Columns; a nil cell is missing.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row is one measurement row with its provenance.
type Row struct {
	Source string
	Sheet  string
	Cells  []*float64
}

// Index returns the position of a column label, or -1.
func (t *Table) Index(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// Cell returns the value of row i under label; nil if the label is absent or the cell missing.
func (t *Table) Cell(i int, label string) *float64 {
	j := t.Index(label)
	if j < 0 {
		return nil
	}
	return t.Rows[i].Cells[j]
}

// Column returns a copy of the values under label, one per row. ok is false if the
// label is absent.
func (t *Table) Column(label string) (values []*float64, ok bool) {
	j := t.Index(label)
	if j < 0 {
		return nil, false
	}
	values = make([]*float64, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Cells[j]
	}
	return values, true
}

// SetColumn stores values under label, replacing an existing column of the same name or
// appending a new one.
func (t *Table) SetColumn(label string, values []*float64) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q: %d values for %d rows", label, len(values), len(t.Rows))
	}
	j := t.Index(label)
	if j < 0 {
		t.Columns = append(t.Columns, label)
		for i := range t.Rows {
			t.Rows[i].Cells = append(t.Rows[i].Cells, values[i])
		}
		return nil
	}
	for i := range t.Rows {
		t.Rows[i].Cells[j] = values[i]
	}
	return nil
}
