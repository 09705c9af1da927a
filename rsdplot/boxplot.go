// Package rsdplot renders the per-method RSD comparison as a grouped box
// plot, the terminal artifact of a pipeline run.
package rsdplot

import (
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/metanorm/metanorm/rsd"
)

const boxHalfWidth = 0.25

// fiveNumber is the summary a single box is drawn from.
type fiveNumber struct {
	Method string
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// BoxPlot renders one box per method, in the order methods first appear in
// records. When window is nonzero the y-axis is clipped to [-window, window]
// so that methods with wild RSDs do not flatten the rest of the plot;
// window 0 means autoscale to the full range.
func BoxPlot(w io.Writer, records []rsd.Record, window float64) error {
	summaries, err := summarize(records)
	if err != nil {
		return err
	}

	yAxis := chart.YAxis{Name: "RSD (%)"}
	if window != 0 {
		yAxis.Range = &chart.ContinuousRange{Min: -window, Max: window}
	}

	series := make([]chart.Series, 0, 6*len(summaries))
	ticks := []chart.Tick{{Value: 0, Label: ""}}
	for i, s := range summaries {
		x := float64(i + 1)
		series = append(series, boxSeries(x, s)...)
		ticks = append(ticks, chart.Tick{Value: x, Label: s.Method})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(summaries) + 1), Label: ""})

	graph := chart.Chart{
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(summaries) + 1)},
		},
		YAxis:  yAxis,
		Series: series,
	}

	return pfx.Err(graph.Render(chart.PNG, w))
}

// BoxPlotFile renders to a PNG file on disk.
func BoxPlotFile(path string, records []rsd.Record, window float64) error {
	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	return BoxPlot(outFile, records, window)
}

// summarize groups records by method (preserving first-seen order) and
// computes each method's five-number summary over its non-missing RSDs.
// Methods with fewer than 4 values cannot produce quartiles and are left
// out of the plot.
func summarize(records []rsd.Record) ([]fiveNumber, error) {
	order := make([]string, 0)
	byMethod := make(map[string][]float64)
	for _, rec := range records {
		if _, seen := byMethod[rec.Method]; !seen {
			order = append(order, rec.Method)
			byMethod[rec.Method] = nil
		}
		if rec.RSD.Valid {
			byMethod[rec.Method] = append(byMethod[rec.Method], rec.RSD.Float64)
		}
	}

	out := make([]fiveNumber, 0, len(order))
	for _, method := range order {
		vals := byMethod[method]
		if len(vals) < 4 {
			continue
		}

		q, err := stats.Quartile(vals)
		if err != nil {
			continue
		}
		min, err := stats.Min(vals)
		if err != nil {
			continue
		}
		max, err := stats.Max(vals)
		if err != nil {
			continue
		}

		out = append(out, fiveNumber{
			Method: method,
			Min:    min,
			Q1:     q.Q1,
			Median: q.Q2,
			Q3:     q.Q3,
			Max:    max,
		})
	}

	if len(out) == 0 {
		return nil, pfx.Err(fmt.Errorf("no method had enough finite RSD values to plot"))
	}

	return out, nil
}

// boxSeries draws one box as line segments: a whisker from min to max, the
// four box edges between Q1 and Q3, and a median bar.
func boxSeries(x float64, s fiveNumber) []chart.Series {
	boxStyle := chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5}
	whiskerStyle := chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.0}
	medianStyle := chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0}

	left, right := x-boxHalfWidth, x+boxHalfWidth

	segment := func(x0, y0, x1, y1 float64, style chart.Style) chart.Series {
		return chart.ContinuousSeries{
			XValues: []float64{x0, x1},
			YValues: []float64{y0, y1},
			Style:   style,
		}
	}

	return []chart.Series{
		segment(x, s.Min, x, s.Max, whiskerStyle),
		segment(left, s.Q1, right, s.Q1, boxStyle),
		segment(left, s.Q3, right, s.Q3, boxStyle),
		segment(left, s.Q1, left, s.Q3, boxStyle),
		segment(right, s.Q1, right, s.Q3, boxStyle),
		segment(left, s.Median, right, s.Median, medianStyle),
	}
}
