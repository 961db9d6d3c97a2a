// Package physics holds the physical constants shared by feature derivation and mass-flow
// decomposition.
package physics

// Constants is an immutable set of fuel and coolant properties. Pass it by value.
type Constants struct {
	DieselLHV          float64 // MJ/kg
	MethaneLHV         float64 // MJ/kg
	MethaneDensity     float64 // kg/m³ as used by the test bench conversion
	MethaneMolarVolume float64 // m³/mol
	WaterSpecificHeat  float64 // kJ/(kg·K)
}

// MJPerKWh converts a thermal rate in MJ/h to kW.
const MJPerKWh = 3.6

// PerMinuteToCubicMetresPerHour converts a flow in l/min (or ln/min) to m³/h.
func PerMinuteToCubicMetresPerHour(v float64) float64 {
	return v * 0.001 * 60
}

// Default returns the constants of the engine mapping campaign.
func Default() Constants {
	return Constants{
		DieselLHV:          42.7,
		MethaneLHV:         50.03,
		MethaneDensity:     0.016,
		MethaneMolarVolume: 0.0224,
		WaterSpecificHeat:  4.18,
	}
}
