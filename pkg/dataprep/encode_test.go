package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelEncode(t *testing.T) {
	codes, mapping := LabelEncode([]string{"b", "a", "b", "c"})
	assert.Equal(t, []int{0, 1, 0, 2}, codes)
	assert.Equal(t, map[string]int{"b": 0, "a": 1, "c": 2}, mapping)
	assert.Equal(t, []string{"b", "a", "c"}, Levels(mapping))
}

func TestGroupValues(t *testing.T) {
	levels, groups := GroupValues(
		[]string{"x", "y", "x", "y", "z"},
		[]float64{1, 2, 3, 4, 5},
	)
	assert.Equal(t, []string{"x", "y", "z"}, levels)
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}, {5}}, groups)
}

func TestGroupValuesEmpty(t *testing.T) {
	levels, groups := GroupValues(nil, nil)
	assert.Empty(t, levels)
	assert.Empty(t, groups)
}
