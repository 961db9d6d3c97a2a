// Package model fits the power-driven regressors of the twin: a cross-validated k-nearest
// neighbours pipeline for electrical efficiency and an ordinary least squares line for
// exhaust temperature.
package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
)

// Predictor maps a power output (kW) to a target quantity.
type Predictor interface {
	Predict(power float64) float64
}

// Artifact is an immutable fitted regressor with its hyperparameters and quality metrics.
type Artifact struct {
	Name      string        `json:"name"`
	Target    string        `json:"target"`
	KNN       *KNNParams    `json:"knn,omitempty"`
	Linear    *LinearParams `json:"linear,omitempty"`
	CVR2      float64       `json:"cv_r2"`
	TrainR2   float64       `json:"train_r2"`
	TrainRMSE float64       `json:"train_rmse"`
	Rows      int           `json:"rows"`
	// Search holds every evaluated grid combination in enumeration order. Empty for OLS.
	Search []Candidate `json:"search,omitempty"`

	fitted Predictor
}

// Predict evaluates the fitted regressor. It never mutates the artifact.
func (a *Artifact) Predict(power float64) float64 {
	return a.fitted.Predict(power)
}

// usable returns the (power, target) pairs with both values present, in dataset order.
func usable(op string, ds *dataset.Dataset, target string) ([]float64, []float64, error) {
	if ds == nil {
		return nil, nil, errs.InsufficientData(op, 0, 2)
	}
	xs, ys := ds.Pairs(dataset.ColPowerOutput, target)
	if len(xs) < 2 {
		return nil, nil, errs.InsufficientData(op, len(xs), 2)
	}
	return xs, ys, nil
}

// r2 is the coefficient of determination. A constant target scores 1 when predicted exactly
// and 0 otherwise.
func r2(pred, y []float64) float64 {
	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i := range y {
		ssRes += (y[i] - pred[i]) * (y[i] - pred[i])
		ssTot += (y[i] - mean) * (y[i] - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func rmse(pred, y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	return floats.Distance(pred, y, 2) / math.Sqrt(float64(len(y)))
}

func predictAll(p Predictor, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p.Predict(x)
	}
	return out
}
