// Package features computes the physics-derived columns of the measurement table.
package features

import (
	"math"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/schema"
)

// Inputs are the raw sensor values one derivation reads. nil is missing.
type Inputs struct {
	CH4VolumeFlowRaw       *float64 // ln/min
	CO2VolumeFlowProcessed *float64 // ln/min
	DieselMassFlow         *float64 // kg/h
	PowerOutput            *float64 // kW
	WaterFlow              *float64 // l/min
	CoolingWaterOutTemp    *float64 // °C
	CoolingWaterInTemp     *float64 // °C
}

// Derived holds the computed values of one record. Any value whose inputs are missing or whose
// denominator is zero is nil.
type Derived struct {
	// CH4MassFlowDensity is the uncorrected density-based methane mass flow (kg/h).
	CH4MassFlowDensity *float64
	// CH4Energy is CH4MassFlowDensity times the methane LHV (MJ/h).
	CH4Energy       *float64
	CH4SharePercent *float64
	// CH4MassFlowCalc is the share-corrected methane mass flow used downstream (kg/h).
	CH4MassFlowCalc    *float64
	DESPercent         *float64
	EfficiencyElectric *float64
	EfficiencyThermal  *float64
}

// Derive computes every derived value of one record.
func Derive(in Inputs, c physics.Constants) Derived {
	ch4Flow := physics.PerMinuteToCubicMetresPerHour(val(in.CH4VolumeFlowRaw))
	diesel := val(in.DieselMassFlow)

	massDensity := ch4Flow * c.MethaneDensity
	energy := massDensity * c.MethaneLHV
	share := 100 * energy / (energy + val(in.CO2VolumeFlowProcessed))
	massCalc := ch4Flow * (share / 100) * (c.MethaneDensity / c.MethaneMolarVolume)

	dieselEnergy := diesel * c.DieselLHV
	des := 100 * (dieselEnergy / (dieselEnergy + massCalc*c.MethaneLHV))

	thermalInput := (c.DieselLHV/physics.MJPerKWh)*diesel + (c.MethaneLHV/physics.MJPerKWh)*massCalc
	effElec := 100 * (val(in.PowerOutput) / thermalInput)

	water := physics.PerMinuteToCubicMetresPerHour(val(in.WaterFlow))
	deltaT := val(in.CoolingWaterOutTemp) - val(in.CoolingWaterInTemp)
	effTherm := 100 * ((water * deltaT * (c.WaterSpecificHeat / physics.MJPerKWh)) / thermalInput)

	return Derived{
		CH4MassFlowDensity: finite(massDensity),
		CH4Energy:          finite(energy),
		CH4SharePercent:    finite(share),
		CH4MassFlowCalc:    finite(massCalc),
		DESPercent:         finite(des),
		EfficiencyElectric: finite(effElec),
		EfficiencyThermal:  finite(effTherm),
	}
}

// requiredLabels are the raw columns DeriveTable reads.
var requiredLabels = []string{
	schema.LabelCH4VolumeFlowRaw,
	schema.LabelCO2VolumeFlowProcessed,
	schema.LabelDieselMassFlow,
	schema.LabelPowerOutput,
	schema.LabelWaterFlow,
	schema.LabelCoolingWaterOutTemp,
	schema.LabelCoolingWaterInTemp,
}

// DeriveTable computes the derived columns for every row in one pass and stores them in t,
// replacing columns of the same label. A required raw column absent from t is a DataError.
func DeriveTable(t *ingest.Table, c physics.Constants) error {
	for _, label := range requiredLabels {
		if t.Index(label) < 0 {
			return errs.Data("features.derive", label, "required sensor column missing")
		}
	}

	n := len(t.Rows)
	cols := map[string][]*float64{
		schema.LabelCH4MassFlowDensity: make([]*float64, n),
		schema.LabelCH4Energy:          make([]*float64, n),
		schema.LabelCH4SharePercent:    make([]*float64, n),
		schema.LabelCH4MassFlowCalc:    make([]*float64, n),
		schema.LabelDESPercent:         make([]*float64, n),
		schema.LabelEfficiencyElectric: make([]*float64, n),
		schema.LabelEfficiencyThermal:  make([]*float64, n),
	}

	for i := range t.Rows {
		d := Derive(Inputs{
			CH4VolumeFlowRaw:       t.Cell(i, schema.LabelCH4VolumeFlowRaw),
			CO2VolumeFlowProcessed: t.Cell(i, schema.LabelCO2VolumeFlowProcessed),
			DieselMassFlow:         t.Cell(i, schema.LabelDieselMassFlow),
			PowerOutput:            t.Cell(i, schema.LabelPowerOutput),
			WaterFlow:              t.Cell(i, schema.LabelWaterFlow),
			CoolingWaterOutTemp:    t.Cell(i, schema.LabelCoolingWaterOutTemp),
			CoolingWaterInTemp:     t.Cell(i, schema.LabelCoolingWaterInTemp),
		}, c)
		cols[schema.LabelCH4MassFlowDensity][i] = d.CH4MassFlowDensity
		cols[schema.LabelCH4Energy][i] = d.CH4Energy
		cols[schema.LabelCH4SharePercent][i] = d.CH4SharePercent
		cols[schema.LabelCH4MassFlowCalc][i] = d.CH4MassFlowCalc
		cols[schema.LabelDESPercent][i] = d.DESPercent
		cols[schema.LabelEfficiencyElectric][i] = d.EfficiencyElectric
		cols[schema.LabelEfficiencyThermal][i] = d.EfficiencyThermal
	}

	order := append(append([]string{}, schema.IntermediateLabels...), schema.DerivedLabels...)
	for _, label := range order {
		if err := t.SetColumn(label, cols[label]); err != nil {
			return err
		}
	}
	return nil
}

// FromRecord reads the derivation inputs from a canonical record.
func FromRecord(r dataset.Record) Inputs {
	return Inputs{
		CH4VolumeFlowRaw:       r.CH4VolumeFlowRaw,
		CO2VolumeFlowProcessed: r.CO2VolumeFlowProcessed,
		DieselMassFlow:         r.DieselMassFlow,
		PowerOutput:            r.PowerOutput,
		WaterFlow:              r.WaterFlow,
		CoolingWaterOutTemp:    r.CoolingWaterOutTemp,
		CoolingWaterInTemp:     r.CoolingWaterInTemp,
	}
}

// Apply writes the canonical derived values of d into r.
func (d Derived) Apply(r *dataset.Record) {
	r.CH4SharePercent = d.CH4SharePercent
	r.CH4MassFlowCalc = d.CH4MassFlowCalc
	r.DESPercent = d.DESPercent
	r.EfficiencyElectric = d.EfficiencyElectric
	r.EfficiencyThermal = d.EfficiencyThermal
}

func val(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
