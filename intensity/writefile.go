package intensity

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
)

// WriteFile renders m in the same two-header shape it was loaded from: a
// sample-ID header row, a group-label header row, then one row per
// metabolite. Missing values are written as empty cells.
func WriteFile(path string, m *Matrix, meta SampleMetadata) error {
	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	return Write(outFile, m, meta)
}

// Write renders the two-header intensity table to w as CSV.
func Write(w io.Writer, m *Matrix, meta SampleMetadata) error {
	csvWriter := csv.NewWriter(w)

	header := append([]string{""}, m.Samples...)
	if err := csvWriter.Write(header); err != nil {
		return pfx.Err(err)
	}

	groupRow := make([]string, 0, 1+len(m.Samples))
	groupRow = append(groupRow, "")
	for _, sample := range m.Samples {
		groupRow = append(groupRow, meta[sample])
	}
	if err := csvWriter.Write(groupRow); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, 1+len(m.Samples))
	for i, metabolite := range m.Metabolites {
		row[0] = metabolite
		for j := range m.Samples {
			if v := m.At(i, j); IsMissing(v) {
				row[1+j] = ""
			} else {
				row[1+j] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := csvWriter.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	csvWriter.Flush()

	return pfx.Err(csvWriter.Error())
}
