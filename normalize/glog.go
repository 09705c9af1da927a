package normalize

import (
	"math"

	"github.com/metanorm/metanorm/intensity"
)

// GLog applies the generalized-logarithm transform
//
//	y = ln((x + sqrt(x² + 1)) / 2)
//
// elementwise. It behaves like ln(x) for large x but is defined, smooth, and
// monotonic for all reals including zero and negatives, which makes it safe
// to apply after normalisation methods that can produce small or zero
// values. Missing values propagate.
func GLog(m *intensity.Matrix) *intensity.Matrix {
	out := m.Clone()

	for i := 0; i < out.NRows(); i++ {
		for j := 0; j < out.NCols(); j++ {
			v := out.At(i, j)
			if intensity.IsMissing(v) {
				continue
			}
			out.Set(i, j, glog(v))
		}
	}

	return out
}

func glog(x float64) float64 {
	return math.Log((x + math.Sqrt(x*x+1)) / 2)
}
