package dataprep

// LabelEncode encodes categories as integers in order of first appearance.
func LabelEncode(data []string) ([]int, map[string]int) {
	unique := map[string]int{}
	out := make([]int, len(data))
	for i, v := range data {
		if _, ok := unique[v]; !ok {
			unique[v] = len(unique)
		}
		out[i] = unique[v]
	}
	return out, unique
}

// Levels returns the distinct categories ordered by their code.
func Levels(mapping map[string]int) []string {
	out := make([]string, len(mapping))
	for k, code := range mapping {
		out[code] = k
	}
	return out
}

// GroupValues splits values by the category at the same index, one slice per level.
func GroupValues(labels []string, values []float64) (levels []string, groups [][]float64) {
	codes, mapping := LabelEncode(labels)
	levels = Levels(mapping)
	groups = make([][]float64, len(levels))
	for i, c := range codes {
		groups[c] = append(groups[c], values[i])
	}
	return levels, groups
}
