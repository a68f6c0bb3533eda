package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	moremath "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrEmptySample is returned when a test is given an empty sample.
var ErrEmptySample = errors.New("empty sample")

// RankSumResult is the outcome of a Wilcoxon rank-sum test.
type RankSumResult struct {
	N1, N2 int
	// RankSum is the sum of the ranks of the first sample in the pooled data.
	RankSum float64
	Z       float64
	P       float64
}

// Rank assigns 1-based ranks to x; tied values share the average of their ranks.
func Rank(x []float64) []float64 {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// RankSums runs the two-sided Wilcoxon rank-sum test of x against y using the
// large-sample normal approximation. No tie correction is applied.
func RankSums(x, y []float64) (RankSumResult, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return RankSumResult{}, ErrEmptySample
	}
	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks := Rank(pooled)

	s := 0.0
	for _, r := range ranks[:n1] {
		s += r
	}
	fn1, fn2 := float64(n1), float64(n2)
	expected := fn1 * (fn1 + fn2 + 1) / 2
	z := (s - expected) / math.Sqrt(fn1*fn2*(fn1+fn2+1)/12)
	// CDF goes through Erfc and keeps precision far into the tail.
	p := 2 * distuv.UnitNormal.CDF(-math.Abs(z))

	return RankSumResult{N1: n1, N2: n2, RankSum: s, Z: z, P: p}, nil
}

// MannWhitneyResult is the tie-corrected Mann-Whitney U test outcome.
type MannWhitneyResult struct {
	N1, N2 int
	U      float64
	P      float64
}

// MannWhitney runs the two-sided Mann-Whitney U test, correcting for ties.
func MannWhitney(x, y []float64) (MannWhitneyResult, error) {
	if len(x) == 0 || len(y) == 0 {
		return MannWhitneyResult{}, ErrEmptySample
	}
	res, err := moremath.MannWhitneyUTest(x, y, moremath.LocationDiffers)
	if err != nil {
		return MannWhitneyResult{}, fmt.Errorf("mann-whitney: %w", err)
	}
	return MannWhitneyResult{N1: res.N1, N2: res.N2, U: res.U, P: res.P}, nil
}
