package features

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/schema"
)

func f(v float64) *float64 { return &v }

func operatingPoint() Inputs {
	return Inputs{
		CH4VolumeFlowRaw:       f(20),
		CO2VolumeFlowProcessed: f(5),
		DieselMassFlow:         f(1),
		PowerOutput:            f(10),
		WaterFlow:              f(10),
		CoolingWaterOutTemp:    f(80),
		CoolingWaterInTemp:     f(70),
	}
}

func TestDeriveOperatingPoint(t *testing.T) {
	d := Derive(operatingPoint(), physics.Default())

	require.NotNil(t, d.CH4MassFlowDensity)
	assert.InDelta(t, 0.0192, *d.CH4MassFlowDensity, 1e-12)
	assert.InDelta(t, 0.960576, *d.CH4Energy, 1e-12)
	assert.InDelta(t, 16.115489509738655, *d.CH4SharePercent, 1e-9)
	assert.InDelta(t, 0.13813276722633133, *d.CH4MassFlowCalc, 1e-12)
	assert.InDelta(t, 86.06999926675674, *d.DESPercent, 1e-9)
	assert.InDelta(t, 72.56487057618834, *d.EfficiencyElectric, 1e-9)
	assert.InDelta(t, 50.553526501411206, *d.EfficiencyThermal, 1e-9)

	assert.NotEqual(t, *d.CH4MassFlowDensity, *d.CH4MassFlowCalc, "corrected and uncorrected flows are distinct")
}

func TestDeriveMissingAndZeroDenominators(t *testing.T) {
	in := operatingPoint()
	in.PowerOutput = nil
	d := Derive(in, physics.Default())
	assert.Nil(t, d.EfficiencyElectric)
	assert.NotNil(t, d.DESPercent)

	zero := Inputs{
		CH4VolumeFlowRaw:       f(0),
		CO2VolumeFlowProcessed: f(0),
		DieselMassFlow:         f(0),
		PowerOutput:            f(10),
		WaterFlow:              f(10),
		CoolingWaterOutTemp:    f(80),
		CoolingWaterInTemp:     f(70),
	}
	d = Derive(zero, physics.Default())
	assert.Nil(t, d.CH4SharePercent, "0/0 share is missing")
	assert.Nil(t, d.CH4MassFlowCalc)
	assert.Nil(t, d.DESPercent)
	assert.Nil(t, d.EfficiencyElectric)
	assert.NotNil(t, d.CH4MassFlowDensity)
}

func sensorTable() *ingest.Table {
	labels := []string{
		"Nr",
		schema.LabelGasValvePosition,
		schema.LabelMeasuredCH4Percent,
		schema.LabelVoltage,
		schema.LabelDieselMassFlow,
		schema.LabelWaterFlow,
		schema.LabelCH4VolumeFlowRaw,
		schema.LabelCurrentPhase1,
		schema.LabelCurrentPhase2,
		schema.LabelPowerOutput,
		schema.LabelBoostPressure,
		schema.LabelExhaustPressure,
		schema.LabelCH4VolumeFlow,
		schema.LabelCO2VolumeFlowRaw,
		schema.LabelCO2VolumeFlowProcessed,
		schema.LabelGeneratorFrequency,
		schema.LabelCoolingWaterOutTemp,
		schema.LabelCoolingWaterInTemp,
		schema.LabelExhaustTemp,
	}
	row := func(sheet string, ft08, co2, ft05, p float64) ingest.Row {
		cells := make([]*float64, len(labels))
		for i := range cells {
			cells[i] = f(float64(i))
		}
		cells[6] = f(ft08)
		cells[14] = f(co2)
		cells[4] = f(ft05)
		cells[9] = f(p)
		cells[5] = f(12)
		cells[16] = f(82)
		cells[17] = f(71)
		return ingest.Row{Sheet: sheet, Cells: cells}
	}
	return &ingest.Table{
		Columns: labels,
		Rows: []ingest.Row{
			row("S1", 20, 5, 1, 10),
			row("S1", 35, 4, 0.8, 12.5),
			row("S2", 0, 0, 0, 0),
		},
	}
}

func TestDeriveTableMatchesDerive(t *testing.T) {
	table := sensorTable()
	require.NoError(t, DeriveTable(table, physics.Default()))

	for _, label := range append(append([]string{}, schema.IntermediateLabels...), schema.DerivedLabels...) {
		assert.GreaterOrEqual(t, table.Index(label), 0, label)
	}

	d := Derive(Inputs{
		CH4VolumeFlowRaw:       f(35),
		CO2VolumeFlowProcessed: f(4),
		DieselMassFlow:         f(0.8),
		PowerOutput:            f(12.5),
		WaterFlow:              f(12),
		CoolingWaterOutTemp:    f(82),
		CoolingWaterInTemp:     f(71),
	}, physics.Default())
	assert.Equal(t, *d.EfficiencyElectric, *table.Cell(1, schema.LabelEfficiencyElectric))
	assert.Nil(t, table.Cell(2, schema.LabelDESPercent), "zero energy row yields missing, batch continues")
}

func TestDeriveTableRequiresSensorColumns(t *testing.T) {
	table := &ingest.Table{Columns: []string{schema.LabelPowerOutput}, Rows: []ingest.Row{{Cells: []*float64{f(1)}}}}

	err := DeriveTable(table, physics.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrData))
}

func TestRederiveFromCanonicalIsIdempotent(t *testing.T) {
	table := sensorTable()
	require.NoError(t, DeriveTable(table, physics.Default()))
	ds, _, err := schema.Project(table, "")
	require.NoError(t, err)

	for _, rec := range ds.Records() {
		again := rec
		Derive(FromRecord(rec), physics.Default()).Apply(&again)
		assert.Equal(t, rec, again)
	}
}

func TestApplyWritesCanonicalDerivedFields(t *testing.T) {
	var rec dataset.Record
	Derive(operatingPoint(), physics.Default()).Apply(&rec)

	require.NotNil(t, rec.EfficiencyElectric)
	require.NotNil(t, rec.CH4MassFlowCalc)
	assert.Nil(t, rec.PowerOutput, "Apply only writes derived fields")
}
