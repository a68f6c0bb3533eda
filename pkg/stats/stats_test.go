package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(x, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.InDelta(t, 1.75, Quantile(x, 0.25), 1e-12)
	assert.Equal(t, []float64{4, 1, 3, 2}, x, "input must not be reordered")
	assert.Zero(t, Percentile(nil, 50))
}

func TestMeanStdMedian(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5, Mean(x), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7), SampleStd(x), 1e-12)
	assert.True(t, math.IsNaN(SampleStd([]float64{1})))
	assert.InDelta(t, 4.5, Median(x), 1e-12)
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, Percentile(x, 50), Median(x))
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 2.0, s.Q1)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 4.0, s.Q3)
	assert.Equal(t, 5.0, s.Max)

	assert.Equal(t, Summary{}, Describe(nil))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1, Correlation(x, []float64{2, 4, 6, 8}), 1e-12)
	assert.InDelta(t, -1, Correlation(x, []float64{8, 6, 4, 2}), 1e-12)
	assert.Zero(t, Correlation(x, []float64{1, 1, 1, 1}))
	assert.Zero(t, Correlation(x, []float64{1}))
	assert.Zero(t, Correlation(nil, nil))
	assert.InDelta(t, 0.8, Correlation(x, []float64{1, 3, 2, 4}), 1e-12)
}

func TestRank(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, Rank([]float64{10, 20, 20, 30}))
	assert.Equal(t, []float64{3, 1, 2}, Rank([]float64{0.3, 0.1, 0.2}))
	assert.Equal(t, []float64{2, 2, 2}, Rank([]float64{5, 5, 5}))
	assert.Empty(t, Rank(nil))
}

func TestRankSums(t *testing.T) {
	res, err := RankSums([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, res.N1)
	assert.Equal(t, 3, res.N2)
	assert.InDelta(t, 6, res.RankSum, 1e-12)
	assert.InDelta(t, -1.963961012123931, res.Z, 1e-9)
	assert.InDelta(t, 0.049534613435626, res.P, 1e-9)

	// Swapping the samples flips the sign but not the p-value.
	swapped, err := RankSums([]float64{4, 5, 6}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, -res.Z, swapped.Z, 1e-12)
	assert.InDelta(t, res.P, swapped.P, 1e-12)
}

func TestRankSumsFarTail(t *testing.T) {
	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i + 50)
	}
	res, err := RankSums(x, y)
	require.NoError(t, err)
	assert.InDelta(t, -8.617274844321392, res.Z, 1e-9)
	assert.Greater(t, res.P, 0.0)
	assert.InEpsilon(t, 6.856641447475729e-18, res.P, 1e-9)
}

func TestRankSumsIdenticalSamples(t *testing.T) {
	res, err := RankSums([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Z, 1e-12)
	assert.InDelta(t, 1, res.P, 1e-12)
}

func TestRankSumsEmpty(t *testing.T) {
	_, err := RankSums(nil, []float64{1})
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = MannWhitney([]float64{1}, nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestMannWhitney(t *testing.T) {
	res, err := MannWhitney([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, res.N1)
	assert.Equal(t, 3, res.N2)
	assert.Equal(t, 0.0, res.U)
	assert.Greater(t, res.P, 0.04)
	assert.Less(t, res.P, 0.2)
}

func TestOutliers(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 100}
	lo, hi := Fences(x, 1.5)
	assert.InDelta(t, -3, lo, 1e-12)
	assert.InDelta(t, 13, hi, 1e-12)
	assert.Equal(t, []float64{100}, Outliers(x, 1.5))
	assert.Nil(t, Outliers(nil, 1.5))
}
