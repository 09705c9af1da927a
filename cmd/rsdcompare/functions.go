package main

import (
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	"github.com/metanorm/metanorm/intensity"
)

type pqnFactorRow struct {
	Sample string     `csv:"Sample"`
	Group  string     `csv:"Group"`
	Factor null.Float `csv:"Factor"`
}

// writePQNFactors exports the per-sample PQN scaling factors alongside each
// sample's group, one row per sample in matrix column order. A blank factor
// marks a sample that had no valid overlap with the reference profile.
func writePQNFactors(path string, m *intensity.Matrix, meta intensity.SampleMetadata, factors []null.Float) error {
	rows := make([]pqnFactorRow, 0, len(m.Samples))
	for j, sample := range m.Samples {
		rows = append(rows, pqnFactorRow{
			Sample: sample,
			Group:  meta[sample],
			Factor: factors[j],
		})
	}

	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	return pfx.Err(gocsv.MarshalFile(&rows, outFile))
}
