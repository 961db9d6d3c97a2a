// Package analysis computes exploratory statistics over the canonical dataset.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/dataset"
)

// Matrix is a symmetric Pearson correlation matrix. A nil cell is undefined: fewer than two
// shared rows or a constant column.
type Matrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// Pair is one feature's correlation with another.
type Pair struct {
	Feature     string  `json:"feature"`
	With        string  `json:"correlated_with"`
	Correlation float64 `json:"correlation"`
}

// Correlations computes the matrix over columns (all numeric canonical columns when empty),
// each cell over the rows where both columns are present.
func Correlations(ds *dataset.Dataset, columns ...string) Matrix {
	if len(columns) == 0 {
		columns = dataset.NumericColumns
	}
	m := Matrix{Columns: append([]string(nil), columns...), Values: make([][]*float64, len(columns))}
	for i := range columns {
		m.Values[i] = make([]*float64, len(columns))
	}
	for i, a := range columns {
		for j := i; j < len(columns); j++ {
			r := pearson(ds, a, columns[j])
			m.Values[i][j], m.Values[j][i] = r, r
		}
	}
	return m
}

func pearson(ds *dataset.Dataset, a, b string) *float64 {
	xs, ys := ds.Pairs(a, b)
	if len(xs) < 2 {
		return nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	r = math.Max(-1, math.Min(1, r))
	return &r
}

// Top returns, for every column, the n other columns with the largest absolute correlation.
// Undefined cells are skipped; equal magnitudes keep column order.
func (m Matrix) Top(n int) []Pair {
	var out []Pair
	for i, feature := range m.Columns {
		var related []Pair
		for j, with := range m.Columns {
			if i == j || m.Values[i][j] == nil {
				continue
			}
			related = append(related, Pair{Feature: feature, With: with, Correlation: *m.Values[i][j]})
		}
		sort.SliceStable(related, func(a, b int) bool {
			return math.Abs(related[a].Correlation) > math.Abs(related[b].Correlation)
		})
		if len(related) > n {
			related = related[:n]
		}
		out = append(out, related...)
	}
	return out
}
