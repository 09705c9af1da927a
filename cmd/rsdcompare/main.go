// rsdcompare loads a two-header metabolite intensity table, applies several
// per-sample normalisation strategies (median, total-area, sum, and
// probabilistic quotient normalisation plus glog-transformed variants), and
// scores every method with a trimmed per-metabolite RSD. It writes one
// normalised matrix per method, a combined RSD table, a PQN scaling-factor
// table, and box plots comparing the methods at full range and clipped to a
// display window.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"

	_ "github.com/metanorm/metanorm/compileinfoprint"
	"github.com/metanorm/metanorm/intensity"
	"github.com/metanorm/metanorm/normalize"
	"github.com/metanorm/metanorm/rsd"
	"github.com/metanorm/metanorm/rsdplot"
)

func main() {
	var input, qcGroup, outputDir string
	var trimLower, trimUpper, plotWindow float64

	flag.StringVar(&input, "input", "", "Intensity matrix file. Row 1: sample IDs. Row 2: group labels. Remaining rows: metabolite name followed by intensities. Delimiter is auto-detected.")
	flag.StringVar(&qcGroup, "qc_group", "QC", "Group label identifying the quality-control samples used as the PQN reference.")
	flag.Float64Var(&trimLower, "trim_lower", rsd.DefaultTrimLower, "Lower trim fraction for the robust RSD.")
	flag.Float64Var(&trimUpper, "trim_upper", rsd.DefaultTrimUpper, "Upper trim fraction for the robust RSD.")
	flag.Float64Var(&plotWindow, "plot_window", 500, "Half-range, in RSD percent, of the clipped comparison plot's y-axis.")
	flag.StringVar(&outputDir, "output_dir", ".", "Directory for output matrices, tables, and plots.")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(input, qcGroup, outputDir, trimLower, trimUpper, plotWindow); err != nil {
		log.Fatalln(err)
	}
}

func run(input, qcGroup, outputDir string, trimLower, trimUpper, plotWindow float64) error {
	raw, meta, err := intensity.LoadFile(input)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d metabolites x %d samples from %s\n", raw.NRows(), raw.NCols(), input)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return pfx.Err(err)
	}

	matrices := normalizeAll(raw, meta, qcGroup, outputDir)

	byMethod := make(map[normalize.Method][]rsd.Record)
	for _, method := range normalize.MethodOrder {
		m, ok := matrices[method]
		if !ok {
			continue
		}
		byMethod[method] = rsd.Compute(m, method, trimLower, trimUpper)
	}
	records := rsd.Combined(byMethod)

	for _, method := range normalize.MethodOrder {
		m, ok := matrices[method]
		if !ok {
			continue
		}
		outPath := filepath.Join(outputDir, "normalized_"+string(method)+".csv")
		if err := intensity.WriteFile(outPath, m, meta); err != nil {
			return err
		}
	}

	if err := rsd.WriteTable(filepath.Join(outputDir, "rsd_all_methods.csv"), records); err != nil {
		return err
	}

	if err := rsdplot.BoxPlotFile(filepath.Join(outputDir, "rsd_boxplot_full.png"), records, 0); err != nil {
		return err
	}
	if err := rsdplot.BoxPlotFile(filepath.Join(outputDir, "rsd_boxplot_clipped.png"), records, plotWindow); err != nil {
		return err
	}

	log.Printf("Wrote %d RSD records across %d methods to %s\n", len(records), len(byMethod), outputDir)

	return nil
}

// normalizeAll produces every normalised matrix the run can support. A PQN
// configuration failure (no QC samples) drops only the PQN-derived methods;
// the column-statistic methods never fail.
func normalizeAll(raw *intensity.Matrix, meta intensity.SampleMetadata, qcGroup, outputDir string) map[normalize.Method]*intensity.Matrix {
	matrices := map[normalize.Method]*intensity.Matrix{
		normalize.Raw: raw,
	}

	for _, method := range []normalize.Method{normalize.Median, normalize.TAN, normalize.Sum} {
		m, err := normalize.Scale(raw, method)
		if err != nil {
			log.Printf("Skipping %s: %v\n", method, err)
			continue
		}
		matrices[method] = m
	}

	if factors, err := normalize.PQNFactors(raw, meta, qcGroup); err != nil {
		log.Printf("Skipping PQN: %v\n", err)
	} else {
		matrices[normalize.PQNorm] = normalize.ScaleByFactors(raw, factors)
		if err := writePQNFactors(filepath.Join(outputDir, "pqn_factors.csv"), raw, meta, factors); err != nil {
			log.Printf("Could not write PQN factors: %v\n", err)
		}
	}

	for _, method := range []normalize.Method{normalize.Median, normalize.TAN, normalize.Sum, normalize.PQNorm} {
		base, ok := matrices[method]
		if !ok {
			continue
		}
		matrices[normalize.GLogVariant(method)] = normalize.GLog(base)
	}

	return matrices
}
