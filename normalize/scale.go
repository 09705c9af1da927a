package normalize

import (
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/metanorm/metanorm/intensity"
)

// ColumnMedian divides each sample column by the median of its non-missing
// values. A column whose median is zero or undefined becomes all-missing;
// the other columns are unaffected.
func ColumnMedian(m *intensity.Matrix) *intensity.Matrix {
	return scaleByColumnStat(m, func(col []float64) (float64, error) {
		return stats.Median(col)
	})
}

// ColumnSum divides each sample column by the sum of its non-missing values.
// This is both the "TAN" (total area normalisation) and "Sum" method; the
// two names share one implementation.
func ColumnSum(m *intensity.Matrix) *intensity.Matrix {
	return scaleByColumnStat(m, func(col []float64) (float64, error) {
		return stats.Sum(col)
	})
}

// Scale dispatches a per-column scaling method by name. Raw returns an
// independent copy of the input.
func Scale(m *intensity.Matrix, method Method) (*intensity.Matrix, error) {
	switch method {
	case Raw:
		return m.Clone(), nil
	case Median:
		return ColumnMedian(m), nil
	case TAN, Sum:
		return ColumnSum(m), nil
	}

	return nil, pfx.Err(fmt.Errorf("no column scaling defined for method %q", method))
}

// scaleByColumnStat applies divisor(column non-missing values) to each
// column. Divisor failures degrade to an all-missing column rather than an
// error, so one degenerate sample cannot abort the run.
func scaleByColumnStat(m *intensity.Matrix, divisor func([]float64) (float64, error)) *intensity.Matrix {
	out := m.Clone()

	for j := range out.Samples {
		vals := out.ColValues(j)

		d, err := divisor(vals)
		if err != nil || d == 0 || intensity.IsMissing(d) {
			out.SetColMissing(j)
			continue
		}

		out.ScaleCol(j, d)
	}

	return out
}
