package rsdplot

import (
	"bytes"
	"math"
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/metanorm/metanorm/rsd"
)

func syntheticRecords() []rsd.Record {
	out := make([]rsd.Record, 0)
	for _, method := range []string{"Raw", "Median"} {
		for i, v := range []float64{5, 10, 15, 20, 400} {
			rec := rsd.Record{
				Metabolite: "met" + string(rune('1'+i)),
				RSD:        null.FloatFrom(v),
				Method:     method,
			}
			out = append(out, rec)
		}
	}

	// One missing RSD should simply be ignored by the plot.
	out = append(out, rsd.Record{Metabolite: "met9", RSD: null.NewFloat(0, false), Method: "Raw"})

	return out
}

func TestSummarize(t *testing.T) {
	summaries, err := summarize(syntheticRecords())
	if err != nil {
		t.Fatal(err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(summaries))
	}
	if summaries[0].Method != "Raw" || summaries[1].Method != "Median" {
		t.Fatalf("method order not preserved: %+v", summaries)
	}

	s := summaries[0]
	if s.Min != 5 || s.Max != 400 {
		t.Fatalf("extrema: got [%v, %v], expected [5, 400]", s.Min, s.Max)
	}
	if math.Abs(s.Median-15) > 1e-9 {
		t.Fatalf("median: got %v, expected 15", s.Median)
	}
	if s.Q1 >= s.Median || s.Q3 <= s.Median {
		t.Fatalf("quartiles out of order: %+v", s)
	}
}

func TestSummarizeNeedsEnoughValues(t *testing.T) {
	records := []rsd.Record{
		{Metabolite: "met1", RSD: null.FloatFrom(1), Method: "Raw"},
		{Metabolite: "met2", RSD: null.FloatFrom(2), Method: "Raw"},
	}

	if _, err := summarize(records); err == nil {
		t.Fatal("expected an error when no method has enough values to box")
	}
}

func TestBoxPlotRendersPNG(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	for _, window := range []float64{0, 500} {
		var buf bytes.Buffer
		if err := BoxPlot(&buf, syntheticRecords(), window); err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Fatalf("window %v: output does not look like a PNG", window)
		}
	}
}
