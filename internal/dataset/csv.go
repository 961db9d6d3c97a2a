package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// WriteCSV writes the dataset as a delimited table with the canonical header.
// Missing values are written as empty cells.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(Columns))
	for i, rec := range d.records {
		for j, col := range Columns {
			if col == ColSheet {
				row[j] = rec.Sheet
				continue
			}
			v, _ := rec.Value(col)
			row[j] = FormatValue(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV. Columns are matched by header name; unknown
// columns are ignored and absent canonical columns read as missing.
func ReadCSV(r io.Reader, id string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		var rec Record
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			col := header[i]
			if col == ColSheet {
				rec.Sheet = cell
				continue
			}
			if _, ok := rec.Value(col); !ok {
				continue
			}
			v, err := ParseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, col, err)
			}
			rec.Set(col, v)
		}
		records = append(records, rec)
	}

	return New(id, records), nil
}

// FormatValue renders a value for a delimited table; nil renders empty.
func FormatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// ParseValue parses a canonical cell. Empty cells are missing; non-finite values are rejected.
func ParseValue(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil
	}
	return &f, nil
}
