// Package normalize implements the per-sample scaling methods compared by
// the pipeline (median, total-area, sum, and probabilistic quotient
// normalisation) and the generalized-log variance-stabilizing transform.
package normalize

// Method names a normalisation strategy as it appears in reports. TAN and
// Sum are numerically the same transform but are tracked as two methods
// because downstream reporting treats them as distinct labels.
type Method string

const (
	Raw    Method = "Raw"
	Median Method = "Median"
	TAN    Method = "TAN"
	Sum    Method = "Sum"
	PQNorm Method = "PQN"

	MedianGLog Method = "Median_GLOG"
	TANGLog    Method = "TAN_GLOG"
	SumGLog    Method = "Sum_GLOG"
	PQNGLog    Method = "PQN_GLOG"
)

// MethodOrder is the canonical reporting order. Every export and plot walks
// methods in this order so that runs are comparable to one another.
var MethodOrder = []Method{Raw, Median, TAN, Sum, PQNorm, MedianGLog, TANGLog, SumGLog, PQNGLog}

// GLogVariant maps a normalisation method to the name of its glog-transformed
// variant, or "" if none is defined (Raw has no glog variant in reports).
func GLogVariant(m Method) Method {
	switch m {
	case Median:
		return MedianGLog
	case TAN:
		return TANGLog
	case Sum:
		return SumGLog
	case PQNorm:
		return PQNGLog
	}

	return ""
}
