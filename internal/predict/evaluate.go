package predict

import (
	"fmt"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/locate"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/massflow"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/model"
)

// Differences are predicted minus nearest-measured values. nil where the measurement is missing.
type Differences struct {
	EfficiencyPercent *float64 `json:"efficiency_percent"`
	DieselMassFlow    *float64 `json:"diesel_mass_flow_kg_h"`
	CH4MassFlow       *float64 `json:"ch4_mass_flow_kg_h"`
	ExhaustTemp       *float64 `json:"exhaust_temp_c"`
}

// Result is the full answer to one query. It is built complete or not at all.
type Result struct {
	Query             Query          `json:"query"`
	EfficiencyPercent float64        `json:"efficiency_percent"`
	Flows             massflow.Flows `json:"flows"`
	ExhaustTemp       float64        `json:"exhaust_temp_c"`
	Nearest           dataset.Record `json:"nearest"`
	Differences       Differences    `json:"differences"`
	Electrical        Electrical     `json:"electrical"`
}

// Evaluate composes the efficiency model, the mass flow split, the exhaust model and the
// nearest measurement for q. Failures carry the query and keep their kind.
func Evaluate(ds *dataset.Dataset, efficiency, exhaust model.Predictor, calc massflow.Calculator, rating Rating, q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("query %s: %w", q, err)
	}

	eff := efficiency.Predict(q.PowerKW)
	flows, err := calc.Compute(q.PowerKW, eff/100, q.DES)
	if err != nil {
		return nil, fmt.Errorf("query %s: predicted efficiency %.4g%%: %w", q, eff, err)
	}
	temp := exhaust.Predict(q.PowerKW)

	nearest, err := locate.Nearest(ds.Records(), q.PowerKW)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q, err)
	}

	return &Result{
		Query:             q,
		EfficiencyPercent: eff,
		Flows:             flows,
		ExhaustTemp:       temp,
		Nearest:           nearest,
		Differences: Differences{
			EfficiencyPercent: diff(eff, nearest.EfficiencyElectric),
			DieselMassFlow:    diff(flows.DieselMassFlow, nearest.DieselMassFlow),
			CH4MassFlow:       diff(flows.CH4MassFlow, nearest.CH4MassFlowCalc),
			ExhaustTemp:       diff(temp, nearest.ExhaustTemp),
		},
		Electrical: rating.estimate(q.PowerKW, *nearest.PowerOutput),
	}, nil
}

func diff(predicted float64, measured *float64) *float64 {
	if measured == nil {
		return nil
	}
	d := predicted - *measured
	return &d
}
