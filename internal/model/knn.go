package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Weighting selects how neighbour targets are averaged.
type Weighting string

const (
	Uniform  Weighting = "uniform"
	Distance Weighting = "distance"
)

// KNNParams is one point of the efficiency search grid.
type KNNParams struct {
	Neighbors int       `json:"n_neighbors"`
	Weights   Weighting `json:"weights"`
	P         float64   `json:"p"`
}

func (p KNNParams) String() string {
	return fmt.Sprintf("k=%d weights=%s p=%g", p.Neighbors, p.Weights, p.P)
}

// scaler standardises a feature with the population mean and standard deviation.
type scaler struct {
	mean  float64
	scale float64
}

func fitScaler(xs []float64) scaler {
	mean, std := stat.PopMeanStdDev(xs, nil)
	if std < 10*epsilon || math.IsNaN(std) {
		std = 1
	}
	return scaler{mean: mean, scale: std}
}

const epsilon = 2.220446049250313e-16

func (s scaler) apply(x float64) float64 { return (x - s.mean) / s.scale }

// knn is a fitted standardise-then-neighbours regressor. Only read after construction.
type knn struct {
	params KNNParams
	scaler scaler
	points []float64
	ys     []float64
}

func fitKNN(params KNNParams, xs, ys []float64) *knn {
	sc := fitScaler(xs)
	points := make([]float64, len(xs))
	for i, x := range xs {
		points[i] = sc.apply(x)
	}
	targets := make([]float64, len(ys))
	copy(targets, ys)

	k := params.Neighbors
	if k > len(points) {
		k = len(points)
	}
	params.Neighbors = k
	return &knn{params: params, scaler: sc, points: points, ys: targets}
}

type neighbour struct {
	index int
	dist  float64
}

func (m *knn) Predict(power float64) float64 {
	q := []float64{m.scaler.apply(power)}

	ns := make([]neighbour, len(m.points))
	for i, pt := range m.points {
		ns[i] = neighbour{index: i, dist: floats.Distance(q, []float64{pt}, m.params.P)}
	}
	// Equal distances keep training order.
	sort.SliceStable(ns, func(a, b int) bool { return ns[a].dist < ns[b].dist })
	ns = ns[:m.params.Neighbors]

	if m.params.Weights == Distance {
		var exact []float64
		for _, n := range ns {
			if n.dist == 0 {
				exact = append(exact, m.ys[n.index])
			}
		}
		if len(exact) > 0 {
			return stat.Mean(exact, nil)
		}
		var num, den float64
		for _, n := range ns {
			w := 1 / n.dist
			num += w * m.ys[n.index]
			den += w
		}
		return num / den
	}

	var sum float64
	for _, n := range ns {
		sum += m.ys[n.index]
	}
	return sum / float64(len(ns))
}
