package model

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
)

// LinearParams are the coefficients of target = Intercept + Slope*power.
type LinearParams struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

func (l LinearParams) Predict(power float64) float64 {
	return l.Intercept + l.Slope*power
}

// fitLine is ordinary least squares. Without spread in xs the line is flat at the mean of ys.
func fitLine(xs, ys []float64) LinearParams {
	_, std := stat.PopMeanStdDev(xs, nil)
	if len(xs) < 2 || std == 0 || math.IsNaN(std) {
		return LinearParams{Intercept: stat.Mean(ys, nil)}
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return LinearParams{Intercept: alpha, Slope: beta}
}

// FitExhaustTemp regresses exhaust temperature on power over the rows carrying both.
func FitExhaustTemp(ds *dataset.Dataset, opts Options) (*Artifact, error) {
	xs, ys, err := usable("model.fit_exhaust_temp", ds, dataset.ColExhaustTemp)
	if err != nil {
		return nil, err
	}

	line := fitLine(xs, ys)
	pred := predictAll(line, xs)
	cv := crossValidate(func(x, y []float64) Predictor { return fitLine(x, y) }, xs, ys, opts.Folds)
	return &Artifact{
		Name:      "ols",
		Target:    dataset.ColExhaustTemp,
		Linear:    &line,
		CVR2:      cv,
		TrainR2:   r2(pred, ys),
		TrainRMSE: rmse(pred, ys),
		Rows:      len(xs),
		fitted:    line,
	}, nil
}
