package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
)

var rawLabels = []string{
	LabelGasValvePosition,
	LabelMeasuredCH4Percent,
	LabelVoltage,
	LabelDieselMassFlow,
	LabelWaterFlow,
	LabelCH4VolumeFlowRaw,
	LabelCurrentPhase1,
	LabelCurrentPhase2,
	LabelPowerOutput,
	LabelBoostPressure,
	LabelExhaustPressure,
	LabelCH4VolumeFlow,
	LabelCO2VolumeFlowRaw,
	LabelCO2VolumeFlowProcessed,
	LabelGeneratorFrequency,
	LabelCoolingWaterOutTemp,
	LabelCoolingWaterInTemp,
	LabelExhaustTemp,
}

func TestSelectMeasurementLabelsSortsAndSkips(t *testing.T) {
	columns := []string{LabelExhaustTemp, "Nr", LabelCH4MassFlowDensity, LabelDESPercent}
	columns = append(columns, rawLabels[:17]...)

	selected, skipped := SelectMeasurementLabels(columns)
	assert.Equal(t, rawLabels, selected, "sorted known labels follow canonical order")
	assert.Equal(t, []string{"Nr"}, skipped)
}

func TestCanonicalOrderMatchesSortedLabels(t *testing.T) {
	for i, label := range rawLabels {
		assert.Equal(t, dataset.Columns[i], Canonical[label])
	}
	for i, label := range DerivedLabels {
		assert.Equal(t, dataset.Columns[MeasurementColumns+i], Canonical[label])
	}
}

func TestProjectCopiesValues(t *testing.T) {
	columns := append([]string{"Nr", LabelCH4MassFlowDensity, LabelCH4Energy}, rawLabels...)
	columns = append(columns, DerivedLabels...)

	cells := make([]*float64, len(columns))
	for i := range cells {
		v := float64(i) + 0.5
		cells[i] = &v
	}
	cells[len(columns)-1] = nil

	table := &ingest.Table{Columns: columns, Rows: []ingest.Row{{Sheet: "S7", Cells: cells}}}
	ds, skipped, err := Project(table, "ds")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nr"}, skipped)
	require.Equal(t, 1, ds.Len())

	rec := ds.At(0)
	assert.Equal(t, "S7", rec.Sheet)
	assert.Equal(t, 3.5, *rec.GasValvePosition)
	assert.Equal(t, *cells[table.Index(LabelPowerOutput)], *rec.PowerOutput)
	assert.Equal(t, *cells[table.Index(LabelDESPercent)], *rec.DESPercent)
	assert.Nil(t, rec.EfficiencyThermal)
}

func TestProjectRequiresDerivedColumns(t *testing.T) {
	table := &ingest.Table{Columns: rawLabels, Rows: []ingest.Row{{Cells: make([]*float64, len(rawLabels))}}}

	_, _, err := Project(table, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrData))
}
