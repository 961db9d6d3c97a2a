package model

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
)

// Options configures model fitting.
type Options struct {
	Folds     int
	Workers   int
	Neighbors []int
	Weights   []Weighting
	Powers    []float64
}

// DefaultOptions is the efficiency grid: k in {9, 10}, uniform or distance weights,
// Manhattan or Euclidean distance, scored by 5-fold R².
func DefaultOptions() Options {
	return Options{
		Folds:     5,
		Workers:   runtime.NumCPU(),
		Neighbors: []int{9, 10},
		Weights:   []Weighting{Uniform, Distance},
		Powers:    []float64{1, 2},
	}
}

// Grid enumerates the search space with neighbours outermost and the distance power innermost.
func (o Options) Grid() []KNNParams {
	out := make([]KNNParams, 0, len(o.Neighbors)*len(o.Weights)*len(o.Powers))
	for _, k := range o.Neighbors {
		for _, w := range o.Weights {
			for _, p := range o.Powers {
				out = append(out, KNNParams{Neighbors: k, Weights: w, P: p})
			}
		}
	}
	return out
}

// Candidate is the cross-validation outcome of one grid point.
type Candidate struct {
	Params KNNParams `json:"params"`
	MeanR2 float64   `json:"mean_r2"`
	FoldR2 []float64 `json:"fold_r2"`
}

// SelectEfficiency grid-searches the neighbours pipeline for electrical efficiency over power,
// refits the winner on every usable row and reports its metrics. Combination x fold
// evaluations run on up to opts.Workers goroutines; the winner is the highest mean R², the
// earliest combination in Grid order on ties.
func SelectEfficiency(ctx context.Context, ds *dataset.Dataset, opts Options) (*Artifact, error) {
	xs, ys, err := usable("model.select_efficiency", ds, dataset.ColEfficiencyElectric)
	if err != nil {
		return nil, err
	}

	grid := opts.Grid()
	folds := kfold(len(xs), opts.Folds)
	scores := make([][]float64, len(grid))
	for i := range scores {
		scores[i] = make([]float64, len(folds))
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, params := range grid {
		for j, f := range folds {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				fit := func(x, y []float64) Predictor { return fitKNN(params, x, y) }
				scores[i][j] = foldScore(fit, f, xs, ys)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	search := make([]Candidate, len(grid))
	best := 0
	for i, params := range grid {
		var sum float64
		for _, s := range scores[i] {
			sum += s
		}
		search[i] = Candidate{Params: params, MeanR2: sum / float64(len(folds)), FoldR2: scores[i]}
		if search[i].MeanR2 > search[best].MeanR2 {
			best = i
		}
	}

	fitted := fitKNN(grid[best], xs, ys)
	pred := predictAll(fitted, xs)
	params := fitted.params
	return &Artifact{
		Name:      "standard_scaler+knn",
		Target:    dataset.ColEfficiencyElectric,
		KNN:       &params,
		CVR2:      search[best].MeanR2,
		TrainR2:   r2(pred, ys),
		TrainRMSE: rmse(pred, ys),
		Rows:      len(xs),
		Search:    search,
		fitted:    fitted,
	}, nil
}
