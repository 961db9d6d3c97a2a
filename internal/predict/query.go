// Package predict answers power / diesel-share queries against the fitted twin and compares the
// answer with the closest real measurement.
package predict

import (
	"fmt"
	"math"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
)

// Query is a target operating point: power in kW (> 0) and the diesel energy share as a
// fraction in [0, 1].
type Query struct {
	PowerKW float64 `json:"power_output_kw"`
	DES     float64 `json:"diesel_energy_share"`
}

// QueryFromPercent builds a query from a diesel share given in percent.
func QueryFromPercent(powerKW, desPercent float64) Query {
	return Query{PowerKW: powerKW, DES: desPercent / 100}
}

func (q Query) String() string {
	return fmt.Sprintf("power=%g kW des=%g", q.PowerKW, q.DES)
}

// Validate checks the power set-point. The diesel share is range-checked by the mass flow
// calculator.
func (q Query) Validate() error {
	if math.IsNaN(q.PowerKW) || math.IsInf(q.PowerKW, 0) || q.PowerKW <= 0 {
		return &errs.Error{
			Kind:    errs.KindInvalidRange,
			Op:      "predict.query",
			Field:   "power_output_kw",
			Message: fmt.Sprintf("must be a finite value > 0, got %g", q.PowerKW),
		}
	}
	return nil
}
