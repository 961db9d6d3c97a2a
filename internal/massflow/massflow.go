// Package massflow splits the fuel energy needed for a power set-point between diesel and
// methane.
package massflow

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
)

// Flows are energy rates (MJ/h) and mass flows (kg/h) at one operating point.
type Flows struct {
	QTotal         float64 `json:"q_total_mj_h"`
	QDiesel        float64 `json:"q_diesel_mj_h"`
	QCH4           float64 `json:"q_ch4_mj_h"`
	DieselMassFlow float64 `json:"diesel_mass_flow_kg_h"`
	CH4MassFlow    float64 `json:"ch4_mass_flow_kg_h"`
}

// Calculator is stateless apart from the heating values it divides by.
type Calculator struct {
	Constants physics.Constants
}

// New returns a calculator over c.
func New(c physics.Constants) Calculator {
	return Calculator{Constants: c}
}

// Compute derives the flows for power (kW) at efficiency (fraction, > 0) with diesel energy
// share des (fraction in [0, 1]). Values are unrounded.
func (c Calculator) Compute(power, efficiency, des float64) (Flows, error) {
	if !(efficiency > 0) {
		return Flows{}, errs.DivisionByZero("massflow.compute", "efficiency", efficiency)
	}
	if math.IsNaN(des) || des < 0 || des > 1 {
		return Flows{}, errs.InvalidRange("massflow.compute", "diesel_energy_share", des, 0, 1)
	}

	total := power / efficiency * physics.MJPerKWh
	qDiesel := des * total
	qCH4 := (1 - des) * total
	return Flows{
		QTotal:         total,
		QDiesel:        qDiesel,
		QCH4:           qCH4,
		DieselMassFlow: qDiesel / c.Constants.DieselLHV,
		CH4MassFlow:    qCH4 / c.Constants.MethaneLHV,
	}, nil
}

// Rounded returns f rounded half away from zero to two decimals, for presentation.
func (f Flows) Rounded() Flows {
	return Flows{
		QTotal:         Round2(f.QTotal),
		QDiesel:        Round2(f.QDiesel),
		QCH4:           Round2(f.QCH4),
		DieselMassFlow: Round2(f.DieselMassFlow),
		CH4MassFlow:    Round2(f.CH4MassFlow),
	}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
