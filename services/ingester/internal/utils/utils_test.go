package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
)

func TestBuildRows(t *testing.T) {
	ds := dataset.New("", []dataset.Record{
		{PowerOutput: dataset.Float(10), DESPercent: dataset.Float(80), Sheet: "S1"},
		{ExhaustTemp: dataset.Float(400), Sheet: "S2"},
	})
	id := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	run := BuildDatasetRow(id, ds, []string{"a.xlsx"}, at)
	assert.Equal(t, 2, run.RecordCount)
	assert.Equal(t, at, run.CreatedAt)

	rows := BuildMeasurementRows(id, ds)
	require.Len(t, rows, 2)
	assert.Equal(t, id, rows[1].DatasetID)
	assert.Equal(t, 1, rows[1].RowIdx)
	assert.Equal(t, "S2", rows[1].Sheet)
	require.Len(t, rows[0].Values, len(dataset.NumericColumns))

	power := -1
	for i, col := range dataset.NumericColumns {
		if col == dataset.ColPowerOutput {
			power = i
		}
	}
	assert.Equal(t, 10.0, *rows[0].Values[power])
	assert.Nil(t, rows[1].Values[power])
}

func TestValuePtrString(t *testing.T) {
	assert.Equal(t, "null", ValuePtrString(nil))
	assert.Equal(t, "12.346", ValuePtrString(dataset.Float(12.3456)))
}
