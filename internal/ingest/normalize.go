// Package ingest merges raw engine-test captures into one numeric measurement table.
package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
)

// RawCapture is one sheet of one source file: positional text cells, empty string for an
// empty cell. Rows may be ragged. Err is set when the adapter could not read the sheet;
// Normalize skips such a capture with a warning.
type RawCapture struct {
	Source string
	Sheet  string
	Rows   [][]string
	Err    error
}

// Options controls how captures are cut and cleaned.
type Options struct {
	// HeaderRows is the number of metadata rows preceding the label row.
	HeaderRows int
	// SummaryMarkers are matched case-insensitively against the first column's text.
	SummaryMarkers []string
	// TimeMarkers identify timestamp columns by case-insensitive substring of the label.
	TimeMarkers []string
}

// DefaultOptions matches the layout of the engine mapping workbooks.
func DefaultOptions() Options {
	return Options{
		HeaderRows:     3,
		SummaryMarkers: []string{"mittel", "moyenne", "average", "ø"},
		TimeMarkers:    []string{"zeit", "time"},
	}
}

// sheetTable is one capture after cutting, before merging.
type sheetTable struct {
	source string
	sheet  string
	labels []string
	rows   [][]string
}

// Normalize merges captures into a Table. A capture that cannot be cut into labels and data
// is skipped with a warning; the call fails only if nothing usable remains.
func Normalize(captures []RawCapture, opts Options) (*Table, []errs.Warning, error) {
	var warnings []errs.Warning
	var sheets []sheetTable

	for _, c := range captures {
		if c.Err != nil {
			warnings = append(warnings, errs.Warning{Source: c.Source, Sheet: c.Sheet, Reason: "unreadable sheet: " + c.Err.Error()})
			continue
		}
		st, reason := cutSheet(c, opts.HeaderRows)
		if reason != "" {
			warnings = append(warnings, errs.Warning{Source: c.Source, Sheet: c.Sheet, Reason: reason})
			continue
		}
		sheets = append(sheets, st)
	}
	if len(sheets) == 0 {
		return nil, warnings, errs.Data("ingest.normalize", "", "no usable sheet in %d captures", len(captures))
	}

	columns, text := merge(sheets)
	text = dropSummaryRows(columns, text, opts.SummaryMarkers)
	columns, text = dropTimeColumns(columns, text, opts.TimeMarkers)

	table := &Table{Columns: columns}
	for _, r := range text {
		cells := make([]*float64, len(columns))
		empty := true
		for j := range columns {
			cells[j] = coerce(r.cells[j])
			if cells[j] != nil {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, Row{Source: r.source, Sheet: r.sheet, Cells: cells})
	}

	if len(table.Rows) == 0 {
		return nil, warnings, errs.Data("ingest.normalize", "", "no measurement rows left after cleaning")
	}
	return table, warnings, nil
}

// cutSheet promotes the label row, drops duplicate, blank and all-empty columns and
// all-empty rows. A non-empty reason means the capture is unusable.
func cutSheet(c RawCapture, headerRows int) (sheetTable, string) {
	if headerRows < 0 || len(c.Rows) <= headerRows {
		return sheetTable{}, "no label row"
	}

	labelRow := c.Rows[headerRows]
	data := c.Rows[headerRows+1:]

	seen := make(map[string]bool)
	var keep []int
	for i, raw := range labelRow {
		label := strings.TrimSpace(raw)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		if columnEmpty(data, i) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 {
		return sheetTable{}, "no labelled column with data"
	}

	st := sheetTable{source: c.Source, sheet: c.Sheet}
	for _, i := range keep {
		st.labels = append(st.labels, strings.TrimSpace(labelRow[i]))
	}
	for _, row := range data {
		cells := make([]string, len(keep))
		empty := true
		for j, i := range keep {
			cells[j] = strings.TrimSpace(cell(row, i))
			if cells[j] != "" {
				empty = false
			}
		}
		if !empty {
			st.rows = append(st.rows, cells)
		}
	}
	if len(st.rows) == 0 {
		return sheetTable{}, "no data rows"
	}
	return st, ""
}

type textRow struct {
	source string
	sheet  string
	cells  []string
}

// merge concatenates sheets over the union of their labels in first-appearance order.
// Cells of labels a sheet does not carry are empty.
func merge(sheets []sheetTable) ([]string, []textRow) {
	var columns []string
	index := make(map[string]int)
	for _, st := range sheets {
		for _, l := range st.labels {
			if _, ok := index[l]; !ok {
				index[l] = len(columns)
				columns = append(columns, l)
			}
		}
	}

	var rows []textRow
	for _, st := range sheets {
		for _, r := range st.rows {
			cells := make([]string, len(columns))
			for j, l := range st.labels {
				cells[index[l]] = r[j]
			}
			rows = append(rows, textRow{source: st.source, sheet: st.sheet, cells: cells})
		}
	}
	return columns, rows
}

func dropSummaryRows(columns []string, rows []textRow, markers []string) []textRow {
	if len(columns) == 0 {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if !containsAny(r.cells[0], markers) {
			out = append(out, r)
		}
	}
	return out
}

func dropTimeColumns(columns []string, rows []textRow, markers []string) ([]string, []textRow) {
	var keep []int
	var kept []string
	for i, c := range columns {
		if containsAny(c, markers) {
			continue
		}
		keep = append(keep, i)
		kept = append(kept, c)
	}
	if len(kept) == len(columns) {
		return columns, rows
	}

	for k, r := range rows {
		cells := make([]string, len(keep))
		for j, i := range keep {
			cells[j] = r.cells[i]
		}
		rows[k].cells = cells
	}
	return kept, rows
}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if m != "" && strings.Contains(s, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

func columnEmpty(rows [][]string, i int) bool {
	for _, row := range rows {
		if strings.TrimSpace(cell(row, i)) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// coerce parses a cell as a finite number; anything else is missing.
func coerce(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
