// Package rsd computes the robust relative standard deviation used to score
// normalisation methods against each other, and exports the combined
// per-method table.
package rsd

import (
	"sort"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/guregu/null.v3"

	"github.com/metanorm/metanorm/intensity"
	"github.com/metanorm/metanorm/normalize"
)

// Default symmetric trim fractions: the central 90% of each sorted row is
// retained.
const (
	DefaultTrimLower = 0.05
	DefaultTrimUpper = 0.95
)

// Record is one metabolite's RSD under one normalisation method. A missing
// RSD (undefined mean, or too few values) serializes as an empty CSV cell.
type Record struct {
	Metabolite string     `csv:"Metabolite"`
	RSD        null.Float `csv:"RSD"`
	Method     string     `csv:"Method"`
}

// Compute returns one Record per metabolite row of m, tagged with method.
//
// Each row's non-missing values are sorted ascending and trimmed to the
// half-open sorted-index window [floor(lower*n), floor(upper*n)) before the
// statistics are taken. If trimming would leave fewer than two values, the
// full sorted row is used instead, so short rows are scored untrimmed rather
// than discarded. The RSD is the sample standard deviation over the mean of
// the trimmed values, as a percentage; a trimmed mean of exactly zero makes
// the row's RSD undefined.
func Compute(m *intensity.Matrix, method normalize.Method, lower, upper float64) []Record {
	out := make([]Record, 0, m.NRows())

	for i, metabolite := range m.Metabolites {
		out = append(out, Record{
			Metabolite: metabolite,
			RSD:        rowRSD(m.RowValues(i), lower, upper),
			Method:     string(method),
		})
	}

	return out
}

func rowRSD(vals []float64, lower, upper float64) null.Float {
	if len(vals) == 0 {
		return null.NewFloat(0, false)
	}

	sort.Float64s(vals)
	trimmed := trim(vals, lower, upper)

	mean := stat.Mean(trimmed, nil)
	if mean == 0 {
		return null.NewFloat(0, false)
	}

	sd := 0.0
	if len(trimmed) > 1 {
		sd = stat.StdDev(trimmed, nil)
	}

	return null.FloatFrom(sd / mean * 100)
}

// trim keeps sorted[floor(lower*n):floor(upper*n)], falling back to the full
// slice when the window retains fewer than two values. The epsilon keeps a
// product like 0.95*20, which is fractionally below 19 in float64, from
// flooring to the wrong index.
func trim(sorted []float64, lower, upper float64) []float64 {
	const eps = 1e-9

	n := len(sorted)
	lo := int(lower*float64(n) + eps)
	hi := int(upper*float64(n) + eps)

	if hi-lo < 2 {
		return sorted
	}

	return sorted[lo:hi]
}
