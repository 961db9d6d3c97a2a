// Package dataset defines the canonical measurement table consumed by the models, the
// nearest-measurement lookup and the presentation layer.
package dataset

// Canonical column names, in output order.
const (
	ColGasValvePosition       = "gas_valve_position_percent"
	ColMeasuredCH4Percent     = "measured_ch4_percent"
	ColVoltage                = "voltage"
	ColDieselMassFlow         = "diesel_mass_flow"
	ColWaterFlow              = "water_flow"
	ColCH4VolumeFlowRaw       = "ch4_volumeflow_raw"
	ColCurrentPhase1          = "current_phase_1"
	ColCurrentPhase2          = "current_phase_2"
	ColPowerOutput            = "power_output"
	ColBoostPressure          = "boost_pressure"
	ColExhaustPressure        = "exhaust_pressure"
	ColCH4VolumeFlow          = "ch4_volumeflow"
	ColCO2VolumeFlowRaw       = "co2_volumeflow_raw"
	ColCO2VolumeFlowProcessed = "co2_volumeflow_processed"
	ColGeneratorFrequency     = "generator_frequency"
	ColCoolingWaterOutTemp    = "cooling_water_out_temp"
	ColCoolingWaterInTemp     = "cooling_water_in_temp"
	ColExhaustTemp            = "exhaust_temp"
	ColCH4SharePercent        = "calculated_ch4_share_percent"
	ColCH4MassFlowCalc        = "ch4_mass_flow_calc"
	ColDESPercent             = "des_percent"
	ColEfficiencyElectric     = "efficiency_electric"
	ColEfficiencyThermal      = "efficiency_thermal"
	ColSheet                  = "sheet"
)

// Columns is the 24-column canonical schema.
var Columns = []string{
	ColGasValvePosition,
	ColMeasuredCH4Percent,
	ColVoltage,
	ColDieselMassFlow,
	ColWaterFlow,
	ColCH4VolumeFlowRaw,
	ColCurrentPhase1,
	ColCurrentPhase2,
	ColPowerOutput,
	ColBoostPressure,
	ColExhaustPressure,
	ColCH4VolumeFlow,
	ColCO2VolumeFlowRaw,
	ColCO2VolumeFlowProcessed,
	ColGeneratorFrequency,
	ColCoolingWaterOutTemp,
	ColCoolingWaterInTemp,
	ColExhaustTemp,
	ColCH4SharePercent,
	ColCH4MassFlowCalc,
	ColDESPercent,
	ColEfficiencyElectric,
	ColEfficiencyThermal,
	ColSheet,
}

// NumericColumns is Columns without the sheet tag.
var NumericColumns = Columns[:len(Columns)-1]

// Record is one engine operating point. A nil field is a missing value; a non-nil field is
// always finite.
type Record struct {
	GasValvePosition       *float64 `json:"gas_valve_position_percent"`
	MeasuredCH4Percent     *float64 `json:"measured_ch4_percent"`
	Voltage                *float64 `json:"voltage"`
	DieselMassFlow         *float64 `json:"diesel_mass_flow"`
	WaterFlow              *float64 `json:"water_flow"`
	CH4VolumeFlowRaw       *float64 `json:"ch4_volumeflow_raw"`
	CurrentPhase1          *float64 `json:"current_phase_1"`
	CurrentPhase2          *float64 `json:"current_phase_2"`
	PowerOutput            *float64 `json:"power_output"`
	BoostPressure          *float64 `json:"boost_pressure"`
	ExhaustPressure        *float64 `json:"exhaust_pressure"`
	CH4VolumeFlow          *float64 `json:"ch4_volumeflow"`
	CO2VolumeFlowRaw       *float64 `json:"co2_volumeflow_raw"`
	CO2VolumeFlowProcessed *float64 `json:"co2_volumeflow_processed"`
	GeneratorFrequency     *float64 `json:"generator_frequency"`
	CoolingWaterOutTemp    *float64 `json:"cooling_water_out_temp"`
	CoolingWaterInTemp     *float64 `json:"cooling_water_in_temp"`
	ExhaustTemp            *float64 `json:"exhaust_temp"`

	CH4SharePercent    *float64 `json:"calculated_ch4_share_percent"`
	CH4MassFlowCalc    *float64 `json:"ch4_mass_flow_calc"`
	DESPercent         *float64 `json:"des_percent"`
	EfficiencyElectric *float64 `json:"efficiency_electric"`
	EfficiencyThermal  *float64 `json:"efficiency_thermal"`

	Sheet string `json:"sheet"`
}

// slot returns the field backing a numeric canonical column, or nil for unknown names.
func (r *Record) slot(column string) **float64 {
	switch column {
	case ColGasValvePosition:
		return &r.GasValvePosition
	case ColMeasuredCH4Percent:
		return &r.MeasuredCH4Percent
	case ColVoltage:
		return &r.Voltage
	case ColDieselMassFlow:
		return &r.DieselMassFlow
	case ColWaterFlow:
		return &r.WaterFlow
	case ColCH4VolumeFlowRaw:
		return &r.CH4VolumeFlowRaw
	case ColCurrentPhase1:
		return &r.CurrentPhase1
	case ColCurrentPhase2:
		return &r.CurrentPhase2
	case ColPowerOutput:
		return &r.PowerOutput
	case ColBoostPressure:
		return &r.BoostPressure
	case ColExhaustPressure:
		return &r.ExhaustPressure
	case ColCH4VolumeFlow:
		return &r.CH4VolumeFlow
	case ColCO2VolumeFlowRaw:
		return &r.CO2VolumeFlowRaw
	case ColCO2VolumeFlowProcessed:
		return &r.CO2VolumeFlowProcessed
	case ColGeneratorFrequency:
		return &r.GeneratorFrequency
	case ColCoolingWaterOutTemp:
		return &r.CoolingWaterOutTemp
	case ColCoolingWaterInTemp:
		return &r.CoolingWaterInTemp
	case ColExhaustTemp:
		return &r.ExhaustTemp
	case ColCH4SharePercent:
		return &r.CH4SharePercent
	case ColCH4MassFlowCalc:
		return &r.CH4MassFlowCalc
	case ColDESPercent:
		return &r.DESPercent
	case ColEfficiencyElectric:
		return &r.EfficiencyElectric
	case ColEfficiencyThermal:
		return &r.EfficiencyThermal
	}
	return nil
}

// Value returns the numeric value stored under a canonical column. ok is false for unknown
// columns and for the sheet tag.
func (r Record) Value(column string) (v *float64, ok bool) {
	s := r.slot(column)
	if s == nil {
		return nil, false
	}
	return *s, true
}

// Set stores a numeric value under a canonical column and reports whether the column exists.
func (r *Record) Set(column string, v *float64) bool {
	s := r.slot(column)
	if s == nil {
		return false
	}
	*s = v
	return true
}

// Float returns a pointer to a copy of v.
func Float(v float64) *float64 {
	return &v
}
