package frame

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"iristour/pkg/stats"
)

// WithProduct adds column name = a * b.
func WithProduct(df dataframe.DataFrame, a, b, name string) (dataframe.DataFrame, error) {
	x, err := Column(df, a)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	y, err := Column(df, b)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	prod := make([]float64, len(x))
	for i := range x {
		prod[i] = x[i] * y[i]
	}
	out := df.Mutate(series.New(prod, series.Float, name))
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("derive %s: %w", name, out.Err)
	}
	return out, nil
}

// Quantiles returns the qs quantiles (each in [0, 1]) of col.
func Quantiles(df dataframe.DataFrame, col string, qs ...float64) ([]float64, error) {
	x, err := Column(df, col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(qs))
	for i, q := range qs {
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("quantile %v out of [0, 1]", q)
		}
		out[i] = stats.Quantile(x, q)
	}
	return out, nil
}
