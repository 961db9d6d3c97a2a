package dataset

// Dataset is an ordered, immutable sequence of records sharing the canonical schema.
// Filtering returns new slices; the dataset itself is never mutated after New.
type Dataset struct {
	id      string
	records []Record
}

// New builds a dataset from records. The slice is copied.
func New(id string, records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{id: id, records: cp}
}

// ID identifies the dataset (persisted id or source description). May be empty.
func (d *Dataset) ID() string { return d.id }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Columns returns the canonical schema.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return cols
}

// Records returns a copy of the records in dataset order.
func (d *Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// At returns the i-th record.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Complete returns, in dataset order, the records that have every given column present.
func (d *Dataset) Complete(columns ...string) []Record {
	out := make([]Record, 0, len(d.records))
	for _, rec := range d.records {
		if hasAll(rec, columns) {
			out = append(out, rec)
		}
	}
	return out
}

// Pairs returns the (x, y) values of the records that have both columns present, in dataset order.
func (d *Dataset) Pairs(x, y string) (xs, ys []float64) {
	for _, rec := range d.records {
		xv, _ := rec.Value(x)
		yv, _ := rec.Value(y)
		if xv == nil || yv == nil {
			continue
		}
		xs = append(xs, *xv)
		ys = append(ys, *yv)
	}
	return xs, ys
}

func hasAll(rec Record, columns []string) bool {
	for _, col := range columns {
		v, ok := rec.Value(col)
		if !ok || v == nil {
			return false
		}
	}
	return true
}
