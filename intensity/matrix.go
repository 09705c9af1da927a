// Package intensity holds the labeled metabolite-by-sample matrix that every
// stage of the pipeline consumes and produces, plus the file formats it is
// read from and written to.
package intensity

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
)

// Missing is the in-memory representation of an absent intensity. It is NaN
// rather than zero so that arithmetic can never silently absorb it.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v represents an absent intensity.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Matrix is a dense metabolite-by-sample intensity matrix with explicit,
// ordered row and column labels. Keeping the label→index maps alongside the
// backing store means lookups are by name, never by guessed position, which
// rules out the silent misalignment that plagues positional tables.
type Matrix struct {
	Metabolites []string
	Samples     []string

	rowIndex map[string]int
	colIndex map[string]int
	data     [][]float64
}

// NewMatrix allocates an all-missing matrix with the given row and column
// labels. Duplicate labels are an error since they would make the index maps
// ambiguous.
func NewMatrix(metabolites, samples []string) (*Matrix, error) {
	m := &Matrix{
		Metabolites: append([]string(nil), metabolites...),
		Samples:     append([]string(nil), samples...),
		rowIndex:    make(map[string]int, len(metabolites)),
		colIndex:    make(map[string]int, len(samples)),
		data:        make([][]float64, len(metabolites)),
	}

	for i, name := range m.Metabolites {
		if _, exists := m.rowIndex[name]; exists {
			return nil, pfx.Err(fmt.Errorf("duplicate metabolite label %q", name))
		}
		m.rowIndex[name] = i
	}
	for j, name := range m.Samples {
		if _, exists := m.colIndex[name]; exists {
			return nil, pfx.Err(fmt.Errorf("duplicate sample label %q", name))
		}
		m.colIndex[name] = j
	}

	for i := range m.data {
		row := make([]float64, len(m.Samples))
		for j := range row {
			row[j] = Missing()
		}
		m.data[i] = row
	}

	return m, nil
}

// Clone returns an independent copy sharing no backing storage with m. Every
// transform in the pipeline starts from a Clone, so the raw matrix is never
// mutated.
func (m *Matrix) Clone() *Matrix {
	out, _ := NewMatrix(m.Metabolites, m.Samples)
	for i := range m.data {
		copy(out.data[i], m.data[i])
	}

	return out
}

// NRows and NCols report the matrix shape.
func (m *Matrix) NRows() int { return len(m.Metabolites) }
func (m *Matrix) NCols() int { return len(m.Samples) }

// At fetches the value at (metabolite i, sample j).
func (m *Matrix) At(i, j int) float64 { return m.data[i][j] }

// Set stores a value at (metabolite i, sample j).
func (m *Matrix) Set(i, j int, v float64) { m.data[i][j] = v }

// RowValues returns the non-missing values of row i, in column order.
func (m *Matrix) RowValues(i int) []float64 {
	out := make([]float64, 0, len(m.Samples))
	for j := range m.Samples {
		if v := m.data[i][j]; !IsMissing(v) {
			out = append(out, v)
		}
	}

	return out
}

// ColValues returns the non-missing values of column j, in row order.
func (m *Matrix) ColValues(j int) []float64 {
	out := make([]float64, 0, len(m.Metabolites))
	for i := range m.Metabolites {
		if v := m.data[i][j]; !IsMissing(v) {
			out = append(out, v)
		}
	}

	return out
}

// ColIndex returns the column position of a sample label.
func (m *Matrix) ColIndex(sample string) (int, bool) {
	j, ok := m.colIndex[sample]
	return j, ok
}

// SetColMissing marks every cell of column j missing. Used when a column's
// scaling factor is degenerate and the whole column becomes undefined.
func (m *Matrix) SetColMissing(j int) {
	for i := range m.Metabolites {
		m.data[i][j] = Missing()
	}
}

// ScaleCol divides every non-missing cell of column j by divisor.
func (m *Matrix) ScaleCol(j int, divisor float64) {
	for i := range m.Metabolites {
		if v := m.data[i][j]; !IsMissing(v) {
			m.data[i][j] = v / divisor
		}
	}
}

// SameShape reports whether other has identical row and column label
// sequences.
func (m *Matrix) SameShape(other *Matrix) bool {
	if len(m.Metabolites) != len(other.Metabolites) || len(m.Samples) != len(other.Samples) {
		return false
	}
	for i, name := range m.Metabolites {
		if other.Metabolites[i] != name {
			return false
		}
	}
	for j, name := range m.Samples {
		if other.Samples[j] != name {
			return false
		}
	}

	return true
}
