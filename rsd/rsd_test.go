package rsd

import (
	"math"
	"testing"

	"github.com/metanorm/metanorm/intensity"
	"github.com/metanorm/metanorm/normalize"
)

func rowMatrix(t *testing.T, vals []float64) *intensity.Matrix {
	t.Helper()

	samples := make([]string, len(vals))
	for j := range vals {
		samples[j] = "S" + string(rune('A'+j))
	}

	m, err := intensity.NewMatrix([]string{"met1"}, samples)
	if err != nil {
		t.Fatal(err)
	}
	for j, v := range vals {
		m.Set(0, j, v)
	}

	return m
}

func TestConstantRowHasZeroRSD(t *testing.T) {
	for _, vals := range [][]float64{
		{7},
		{7, 7},
		{7, 7, 7, 7, 7, 7},
	} {
		recs := Compute(rowMatrix(t, vals), normalize.Raw, DefaultTrimLower, DefaultTrimUpper)
		if len(recs) != 1 {
			t.Fatalf("expected 1 record, got %d", len(recs))
		}
		if !recs[0].RSD.Valid || recs[0].RSD.Float64 != 0 {
			t.Fatalf("constant row %v: got %+v, expected RSD 0", vals, recs[0].RSD)
		}
	}
}

func TestZeroMeanRowIsMissing(t *testing.T) {
	// An all-zero row has a trimmed mean of exactly zero under any window.
	recs := Compute(rowMatrix(t, []float64{0, 0, 0, 0}), normalize.Raw, DefaultTrimLower, DefaultTrimUpper)
	if recs[0].RSD.Valid {
		t.Fatalf("all-zero row: got %+v, expected a missing RSD", recs[0].RSD)
	}

	// A sign-symmetric row (as glog output can be) with an untrimmed
	// window also averages to exactly zero.
	recs = Compute(rowMatrix(t, []float64{-2, -1, 1, 2}), normalize.Raw, 0, 1)
	if recs[0].RSD.Valid {
		t.Fatalf("symmetric row: got %+v, expected a missing RSD", recs[0].RSD)
	}
}

func TestAllMissingRowIsMissing(t *testing.T) {
	m, err := intensity.NewMatrix([]string{"met1"}, []string{"S1", "S2"})
	if err != nil {
		t.Fatal(err)
	}

	recs := Compute(m, normalize.Raw, DefaultTrimLower, DefaultTrimUpper)
	if recs[0].RSD.Valid {
		t.Fatalf("all-missing row: got %+v, expected a missing RSD", recs[0].RSD)
	}
}

func TestTrimmingRemovesOutlierInfluence(t *testing.T) {
	vals := []float64{10, 10, 10, 10, 10, 1000}

	trimmed := Compute(rowMatrix(t, vals), normalize.Raw, DefaultTrimLower, DefaultTrimUpper)
	if !trimmed[0].RSD.Valid {
		t.Fatal("expected a defined trimmed RSD")
	}
	if got := trimmed[0].RSD.Float64; got >= 5 {
		t.Fatalf("trimmed RSD: got %v%%, expected < 5%%", got)
	}

	// With trim fractions 0 and 1 the full row is retained, and the single
	// outlier dominates.
	untrimmed := Compute(rowMatrix(t, vals), normalize.Raw, 0, 1)
	if got := untrimmed[0].RSD.Float64; !untrimmed[0].RSD.Valid || got <= 100 {
		t.Fatalf("untrimmed RSD: got %v%%, expected far above 100%%", got)
	}
}

func TestTrimmedRSDHandComputed(t *testing.T) {
	// n=20 with values 1..19 and one huge outlier. The window
	// [floor(0.05*20), floor(0.95*20)) = [1,19) drops exactly the minimum
	// and the outlier, leaving 2..19.
	vals := make([]float64, 0, 20)
	for i := 1; i <= 19; i++ {
		vals = append(vals, float64(i))
	}
	vals = append(vals, 1e6)

	recs := Compute(rowMatrix(t, vals), normalize.Raw, DefaultTrimLower, DefaultTrimUpper)
	if !recs[0].RSD.Valid {
		t.Fatal("expected a defined RSD")
	}

	// 2..19: mean 10.5, sample standard deviation sqrt(28.5).
	expected := math.Sqrt(28.5) / 10.5 * 100
	if got := recs[0].RSD.Float64; math.Abs(got-expected) > 1e-9 {
		t.Fatalf("got %v, expected %v", got, expected)
	}
}

func TestRecordsCarryMethodAndOrder(t *testing.T) {
	m := rowMatrix(t, []float64{1, 2, 3})

	byMethod := map[normalize.Method][]Record{
		normalize.PQNorm: Compute(m, normalize.PQNorm, DefaultTrimLower, DefaultTrimUpper),
		normalize.Raw:    Compute(m, normalize.Raw, DefaultTrimLower, DefaultTrimUpper),
		normalize.Median: Compute(m, normalize.Median, DefaultTrimLower, DefaultTrimUpper),
	}

	combined := Combined(byMethod)
	if len(combined) != 3 {
		t.Fatalf("expected 3 records, got %d", len(combined))
	}

	// Canonical order regardless of map insertion order.
	expected := []string{"Raw", "Median", "PQN"}
	for i, rec := range combined {
		if rec.Method != expected[i] {
			t.Fatalf("position %d: got %q, expected %q", i, rec.Method, expected[i])
		}
		if rec.Metabolite != "met1" {
			t.Fatalf("unexpected metabolite %q", rec.Metabolite)
		}
	}
}
