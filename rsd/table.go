package rsd

import (
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/metanorm/metanorm/normalize"
)

// Combined flattens per-method record sets into one table, walking methods
// in canonical order so that every run (and every downstream plot) lists
// methods identically. Methods absent from byMethod are skipped.
func Combined(byMethod map[normalize.Method][]Record) []Record {
	out := make([]Record, 0)

	for _, method := range normalize.MethodOrder {
		out = append(out, byMethod[method]...)
	}

	return out
}

// WriteTable writes the combined (Metabolite, RSD, Method) table as CSV.
// Missing RSDs become empty cells.
func WriteTable(path string, records []Record) error {
	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	return pfx.Err(gocsv.MarshalFile(&records, outFile))
}
