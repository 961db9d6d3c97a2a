// Package schema maps the test-bench sensor labels onto the canonical 24-column dataset.
package schema

import "github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"

// Sensor labels as they appear in the capture workbooks.
const (
	LabelGasValvePosition       = "% vanne gaz"
	LabelMeasuredCH4Percent     = "AT09(%CH4)"
	LabelVoltage                = "ET12(V)"
	LabelDieselMassFlow         = "FT05(kg/h)"
	LabelWaterFlow              = "FT07(l/min)"
	LabelCH4VolumeFlowRaw       = "FT08(ln/min)"
	LabelCurrentPhase1          = "IT13(A)"
	LabelCurrentPhase2          = "IT15(A)"
	LabelPowerOutput            = "JT11(kW)"
	LabelBoostPressure          = "PT04(bar abs)"
	LabelExhaustPressure        = "PT16(bar abs)"
	LabelCH4VolumeFlow          = "Q CH4(ln/min)"
	LabelCO2VolumeFlowRaw       = "Q CO2gd(ln/min)"
	LabelCO2VolumeFlowProcessed = "Q CO2pd(ln/min)"
	LabelGeneratorFrequency     = "ST14(Hz)"
	LabelCoolingWaterOutTemp    = "TE02(°C)"
	LabelCoolingWaterInTemp     = "TE03(°C)"
	LabelExhaustTemp            = "TE10(°C)"
)

// Derived column labels written by the feature deriver.
const (
	LabelCH4SharePercent    = "% CH4 réel"
	LabelCH4MassFlowCalc    = "ṁ CH4 (kg/h) Formel"
	LabelDESPercent         = "DES (%)"
	LabelEfficiencyElectric = "η elec (%)"
	LabelEfficiencyThermal  = "η therm (%)"
)

// Intermediate derived labels. They stay in the table but never enter the canonical schema.
const (
	LabelCH4MassFlowDensity = "ṁ CH₄ (kg/h)"
	LabelCH4Energy          = "Q_CH4"
)

// DerivedLabels lists the derived columns in canonical order.
var DerivedLabels = []string{
	LabelCH4SharePercent,
	LabelCH4MassFlowCalc,
	LabelDESPercent,
	LabelEfficiencyElectric,
	LabelEfficiencyThermal,
}

// IntermediateLabels lists derived helper columns excluded from projection.
var IntermediateLabels = []string{LabelCH4MassFlowDensity, LabelCH4Energy}

// Canonical maps every known label to its canonical column name.
var Canonical = map[string]string{
	LabelGasValvePosition:       dataset.ColGasValvePosition,
	LabelMeasuredCH4Percent:     dataset.ColMeasuredCH4Percent,
	LabelVoltage:                dataset.ColVoltage,
	LabelDieselMassFlow:         dataset.ColDieselMassFlow,
	LabelWaterFlow:              dataset.ColWaterFlow,
	LabelCH4VolumeFlowRaw:       dataset.ColCH4VolumeFlowRaw,
	LabelCurrentPhase1:          dataset.ColCurrentPhase1,
	LabelCurrentPhase2:          dataset.ColCurrentPhase2,
	LabelPowerOutput:            dataset.ColPowerOutput,
	LabelBoostPressure:          dataset.ColBoostPressure,
	LabelExhaustPressure:        dataset.ColExhaustPressure,
	LabelCH4VolumeFlow:          dataset.ColCH4VolumeFlow,
	LabelCO2VolumeFlowRaw:       dataset.ColCO2VolumeFlowRaw,
	LabelCO2VolumeFlowProcessed: dataset.ColCO2VolumeFlowProcessed,
	LabelGeneratorFrequency:     dataset.ColGeneratorFrequency,
	LabelCoolingWaterOutTemp:    dataset.ColCoolingWaterOutTemp,
	LabelCoolingWaterInTemp:     dataset.ColCoolingWaterInTemp,
	LabelExhaustTemp:            dataset.ColExhaustTemp,
	LabelCH4SharePercent:        dataset.ColCH4SharePercent,
	LabelCH4MassFlowCalc:        dataset.ColCH4MassFlowCalc,
	LabelDESPercent:             dataset.ColDESPercent,
	LabelEfficiencyElectric:     dataset.ColEfficiencyElectric,
	LabelEfficiencyThermal:      dataset.ColEfficiencyThermal,
}
