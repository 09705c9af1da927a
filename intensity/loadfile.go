package intensity

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/metanorm/metanorm"
)

// LoadFile parses a two-header intensity table: the first row holds sample
// IDs, the second row holds group labels, and each subsequent row holds a
// metabolite name followed by its intensities. The first column of the two
// header rows is a placeholder and is ignored. The field delimiter is
// sniffed from the file contents.
func LoadFile(path string) (*Matrix, SampleMetadata, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	delim := metanorm.DetermineDelimiter(bytes.NewReader(fileBytes))

	return Load(bytes.NewReader(fileBytes), delim)
}

// Load parses the two-header intensity table format from r using the given
// field delimiter.
func Load(r io.Reader, delim rune) (*Matrix, SampleMetadata, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delim

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	if len(rows) < 3 {
		return nil, nil, pfx.Err(fmt.Errorf("expected at least 2 header rows and 1 metabolite row, got %d rows", len(rows)))
	}
	if len(rows[0]) < 2 {
		return nil, nil, pfx.Err(fmt.Errorf("expected at least 1 sample column, got %d columns", len(rows[0])))
	}

	samples := rows[0][1:]
	groups := rows[1][1:]

	meta := make(SampleMetadata, len(samples))
	for j, sample := range samples {
		meta[sample] = strings.TrimSpace(groups[j])
	}

	metabolites := make([]string, 0, len(rows)-2)
	for _, row := range rows[2:] {
		metabolites = append(metabolites, row[0])
	}

	m, err := NewMatrix(metabolites, samples)
	if err != nil {
		return nil, nil, err
	}

	for i, row := range rows[2:] {
		for j, cell := range row[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, nil, pfx.Err(fmt.Errorf("metabolite %q, sample %q: %v", row[0], samples[j], err))
			}
			m.Set(i, j, v)
		}
	}

	return m, meta, nil
}

// parseCell interprets one intensity cell. Blank and NA-style cells are
// missing, not zero.
func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)

	switch strings.ToUpper(cell) {
	case "", "NA", "NAN", "N/A":
		return Missing(), nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("value [%s] is not numeric", cell)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite intensity [%s]", cell)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative intensity [%s]", cell)
	}

	return v, nil
}
