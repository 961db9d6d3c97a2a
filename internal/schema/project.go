package schema

import (
	"slices"
	"sort"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
)

// MeasurementColumns is the number of raw measurement columns kept by the projection.
const MeasurementColumns = 18

// SelectMeasurementLabels picks the raw measurement labels of a table: every known sensor
// column that is neither derived nor intermediate, sorted by code point, truncated to
// MeasurementColumns. Labels without a canonical name are returned as skipped.
func SelectMeasurementLabels(columns []string) (selected, skipped []string) {
	for _, c := range columns {
		if slices.Contains(DerivedLabels, c) || slices.Contains(IntermediateLabels, c) {
			continue
		}
		if _, ok := Canonical[c]; !ok {
			skipped = append(skipped, c)
			continue
		}
		selected = append(selected, c)
	}
	sort.Strings(selected)
	if len(selected) > MeasurementColumns {
		skipped = append(skipped, selected[MeasurementColumns:]...)
		selected = selected[:MeasurementColumns]
	}
	return selected, skipped
}

// Project selects and renames the measurement and derived columns of a derived table into the
// canonical dataset. Values are copied unchanged; canonical columns the table lacks stay
// missing. The labels left out of the projection are returned alongside.
func Project(t *ingest.Table, id string) (*dataset.Dataset, []string, error) {
	type binding struct {
		index int
		name  string
	}

	selected, skipped := SelectMeasurementLabels(t.Columns)
	bindings := make([]binding, 0, len(selected)+len(DerivedLabels))
	for _, label := range selected {
		bindings = append(bindings, binding{index: t.Index(label), name: Canonical[label]})
	}
	for _, label := range DerivedLabels {
		i := t.Index(label)
		if i < 0 {
			return nil, nil, errs.Data("schema.project", label, "derived column missing; derive features before projecting")
		}
		bindings = append(bindings, binding{index: i, name: Canonical[label]})
	}

	records := make([]dataset.Record, len(t.Rows))
	for r, row := range t.Rows {
		rec := dataset.Record{Sheet: row.Sheet}
		for _, b := range bindings {
			rec.Set(b.name, row.Cells[b.index])
		}
		records[r] = rec
	}
	return dataset.New(id, records), skipped, nil
}
