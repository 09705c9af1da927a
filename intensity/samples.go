package intensity

// SampleMetadata maps each sample ID to its experimental group label.
type SampleMetadata map[string]string

// SamplesInGroup returns, in the matrix's column order, the samples whose
// group label matches group exactly.
func (meta SampleMetadata) SamplesInGroup(m *Matrix, group string) []string {
	out := make([]string, 0, len(m.Samples))
	for _, sample := range m.Samples {
		if meta[sample] == group {
			out = append(out, sample)
		}
	}

	return out
}
