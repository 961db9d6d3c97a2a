package predict

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/locate"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/massflow"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/model"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/physics"
)

// Twin is a dataset with its fitted models. It is read-only after Build and safe for
// concurrent queries.
type Twin struct {
	Dataset    *dataset.Dataset
	Efficiency *model.Artifact
	Exhaust    *model.Artifact
	Calculator massflow.Calculator
	Rating     Rating
}

// Build fits both models on ds.
func Build(ctx context.Context, ds *dataset.Dataset, opts model.Options, c physics.Constants, rating Rating) (*Twin, error) {
	twin := &Twin{Dataset: ds, Calculator: massflow.New(c), Rating: rating}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		art, err := model.SelectEfficiency(gctx, ds, opts)
		if err != nil {
			return fmt.Errorf("efficiency model: %w", err)
		}
		twin.Efficiency = art
		return nil
	})
	g.Go(func() error {
		art, err := model.FitExhaustTemp(ds, opts)
		if err != nil {
			return fmt.Errorf("exhaust temperature model: %w", err)
		}
		twin.Exhaust = art
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return twin, nil
}

// Predict evaluates q against the twin.
func (t *Twin) Predict(q Query) (*Result, error) {
	return Evaluate(t.Dataset, t.Efficiency, t.Exhaust, t.Calculator, t.Rating, q)
}

// ModelReport summarises the efficiency model at one power set-point.
type ModelReport struct {
	TargetPower          float64          `json:"target_power"`
	PredictedEfficiency  float64          `json:"predicted_efficiency"`
	ClosestMeasuredPower float64          `json:"closest_measured_power"`
	MeasuredEfficiency   *float64         `json:"measured_efficiency"`
	Difference           *float64         `json:"difference"`
	BestParams           *model.KNNParams `json:"best_params"`
	CVR2                 float64          `json:"cv_r2"`
	TrainRMSE            float64          `json:"train_rmse"`
	TrainR2              float64          `json:"train_r2"`
}

// Report compares the efficiency model against the closest measurement at power. power must
// be finite and > 0.
func (t *Twin) Report(power float64) (*ModelReport, error) {
	if err := (Query{PowerKW: power}).Validate(); err != nil {
		return nil, fmt.Errorf("model report: %w", err)
	}
	usable := t.Dataset.Complete(dataset.ColPowerOutput, dataset.ColEfficiencyElectric)
	nearest, err := locate.Nearest(usable, power)
	if err != nil {
		return nil, fmt.Errorf("model report at %g kW: %w", power, err)
	}

	eff := t.Efficiency.Predict(power)
	return &ModelReport{
		TargetPower:          power,
		PredictedEfficiency:  eff,
		ClosestMeasuredPower: *nearest.PowerOutput,
		MeasuredEfficiency:   nearest.EfficiencyElectric,
		Difference:           diff(eff, nearest.EfficiencyElectric),
		BestParams:           t.Efficiency.KNN,
		CVR2:                 t.Efficiency.CVR2,
		TrainRMSE:            t.Efficiency.TrainRMSE,
		TrainR2:              t.Efficiency.TrainR2,
	}, nil
}
