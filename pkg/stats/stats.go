package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// SampleStd is the n-1 standard deviation. NaN for fewer than two values.
func SampleStd(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.StdDev(x, nil)
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	min, max := x[0], x[0]
	for i := 1; i < len(x); i++ {
		if x[i] < min {
			min = x[i]
		} else if x[i] > max {
			max = x[i]
		}
	}
	return min, max
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Percentile returns the p-th percentile value of the slice (0 <= p <= 100),
// interpolating linearly between the two closest ranks.
func Percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	min, max := MinMax(x)
	if p <= 0 {
		return min
	}
	if p >= 100 {
		return max
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// Quantile is Percentile with q in [0, 1].
func Quantile(x []float64, q float64) float64 {
	return Percentile(x, q*100)
}

// Correlation is the Pearson correlation of x and y. Mismatched, empty or
// constant inputs give 0.
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(y) != len(x) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// Summary holds the describe() measures of one sample.
type Summary struct {
	Count               int
	Mean, Std           float64
	Min, Q1, Median, Q3 float64
	Max                 float64
}

// Describe computes count, mean, sample std, min, quartiles and max.
func Describe(x []float64) Summary {
	s := Summary{Count: len(x)}
	if len(x) == 0 {
		return s
	}
	s.Mean = Mean(x)
	s.Std = SampleStd(x)
	s.Min, s.Max = MinMax(x)
	s.Q1 = Percentile(x, 25)
	s.Median = Median(x)
	s.Q3 = Percentile(x, 75)
	return s
}
