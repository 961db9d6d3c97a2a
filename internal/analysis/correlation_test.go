package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
)

func sample() *dataset.Dataset {
	var records []dataset.Record
	for i := 0; i < 10; i++ {
		p := float64(i)
		rec := dataset.Record{
			PowerOutput:        dataset.Float(p),
			EfficiencyElectric: dataset.Float(2*p + 1),
			ExhaustTemp:        dataset.Float(500 - 3*p),
			Voltage:            dataset.Float(230),
			WaterFlow:          dataset.Float(float64((i * 7) % 10)),
		}
		if i == 4 {
			rec.EfficiencyElectric = nil
		}
		records = append(records, rec)
	}
	return dataset.New("", records)
}

func TestCorrelationsPairwiseComplete(t *testing.T) {
	cols := []string{dataset.ColPowerOutput, dataset.ColEfficiencyElectric, dataset.ColExhaustTemp, dataset.ColVoltage}
	m := Correlations(sample(), cols...)

	require.Len(t, m.Values, 4)
	assert.InDelta(t, 1.0, *m.Values[0][1], 1e-12, "missing row is skipped for that pair only")
	assert.InDelta(t, -1.0, *m.Values[0][2], 1e-12)
	assert.Equal(t, m.Values[2][0], m.Values[0][2])
	assert.InDelta(t, 1.0, *m.Values[0][0], 1e-12)
	assert.Nil(t, m.Values[0][3], "constant column is undefined")
}

func TestCorrelationsDefaultsToNumericColumns(t *testing.T) {
	m := Correlations(sample())
	assert.Equal(t, dataset.NumericColumns, m.Columns)
	assert.Nil(t, m.Values[0][0], "column without data is undefined")
}

func TestTopOrdersByMagnitude(t *testing.T) {
	cols := []string{dataset.ColPowerOutput, dataset.ColWaterFlow, dataset.ColExhaustTemp, dataset.ColVoltage}
	top := Correlations(sample(), cols...).Top(2)

	var power []Pair
	for _, p := range top {
		if p.Feature == dataset.ColPowerOutput {
			power = append(power, p)
		}
	}
	require.Len(t, power, 2)
	assert.Equal(t, dataset.ColExhaustTemp, power[0].With)
	assert.InDelta(t, -1.0, power[0].Correlation, 1e-12)
	assert.Equal(t, dataset.ColWaterFlow, power[1].With)

	for _, p := range top {
		assert.NotEqual(t, dataset.ColVoltage, p.Feature, "undefined rows contribute nothing")
		assert.NotEqual(t, p.Feature, p.With)
	}
}
