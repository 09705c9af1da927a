package normalize

import (
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"

	"github.com/metanorm/metanorm/intensity"
)

// PQN applies probabilistic quotient normalisation: each sample column is
// divided by the median of its metabolite-wise ratios against a reference
// profile, where the reference is the per-metabolite median across the
// quality-control samples. The reference is computed once and held fixed
// across every sample in the invocation.
//
// Zero samples in the QC group is a configuration error: there is no
// reference to normalise against, so the method fails outright. A sample
// with no valid overlap against the reference gets a missing factor and an
// all-missing column, and the remaining samples proceed.
func PQN(m *intensity.Matrix, meta intensity.SampleMetadata, qcGroup string) (*intensity.Matrix, error) {
	factors, err := PQNFactors(m, meta, qcGroup)
	if err != nil {
		return nil, err
	}

	return ScaleByFactors(m, factors), nil
}

// ScaleByFactors divides each column by its per-sample factor, in column
// order. A missing or zero factor makes that column all-missing; a zero
// factor is a degenerate divisor like a zero column median, not a license
// to produce infinities.
func ScaleByFactors(m *intensity.Matrix, factors []null.Float) *intensity.Matrix {
	out := m.Clone()
	for j := range out.Samples {
		if !factors[j].Valid || factors[j].Float64 == 0 {
			out.SetColMissing(j)
			continue
		}
		out.ScaleCol(j, factors[j].Float64)
	}

	return out
}

// PQNFactors computes the per-sample scaling factors without applying them,
// one factor per sample in column order. Factors are exported alongside the
// normalised matrices so that aberrant samples are easy to spot.
func PQNFactors(m *intensity.Matrix, meta intensity.SampleMetadata, qcGroup string) ([]null.Float, error) {
	qcSamples := meta.SamplesInGroup(m, qcGroup)
	if len(qcSamples) == 0 {
		return nil, pfx.Err(fmt.Errorf("no samples found in quality-control group %q", qcGroup))
	}

	reference := referenceProfile(m, qcSamples)

	factors := make([]null.Float, len(m.Samples))
	for j := range m.Samples {
		ratios := make([]float64, 0, m.NRows())
		for i := range m.Metabolites {
			v := m.At(i, j)
			ref := reference[i]
			if intensity.IsMissing(v) || intensity.IsMissing(ref) || ref == 0 {
				continue
			}
			ratios = append(ratios, v/ref)
		}

		factor, err := stats.Median(ratios)
		if err != nil {
			// No overlapping metabolites with the reference: this
			// sample's factor is undefined, not the whole run.
			factors[j] = null.NewFloat(0, false)
			continue
		}

		factors[j] = null.FloatFrom(factor)
	}

	return factors, nil
}

// referenceProfile is the per-metabolite median across the QC columns,
// skipping missing values. Metabolites absent from every QC sample get a
// missing reference entry.
func referenceProfile(m *intensity.Matrix, qcSamples []string) []float64 {
	qcCols := make([]int, 0, len(qcSamples))
	for _, sample := range qcSamples {
		if j, ok := m.ColIndex(sample); ok {
			qcCols = append(qcCols, j)
		}
	}

	reference := make([]float64, m.NRows())
	vals := make([]float64, 0, len(qcCols))
	for i := range m.Metabolites {
		vals = vals[:0]
		for _, j := range qcCols {
			if v := m.At(i, j); !intensity.IsMissing(v) {
				vals = append(vals, v)
			}
		}

		med, err := stats.Median(vals)
		if err != nil {
			reference[i] = intensity.Missing()
			continue
		}
		reference[i] = med
	}

	return reference
}
