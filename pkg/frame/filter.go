package frame

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Cond is a single column comparison.
type Cond struct {
	f dataframe.F
}

// Eq keeps rows where col == v.
func Eq(col string, v interface{}) Cond {
	return Cond{dataframe.F{Colname: col, Comparator: series.Eq, Comparando: v}}
}

// Lt keeps rows where col < v.
func Lt(col string, v float64) Cond {
	return Cond{dataframe.F{Colname: col, Comparator: series.Less, Comparando: v}}
}

// Gt keeps rows where col > v.
func Gt(col string, v float64) Cond {
	return Cond{dataframe.F{Colname: col, Comparator: series.Greater, Comparando: v}}
}

// Filter is a boolean mask built from conditions joined by AND or OR.
type Filter struct {
	agg   dataframe.Aggregation
	conds []Cond
}

// All joins conds with AND.
func All(conds ...Cond) Filter { return Filter{agg: dataframe.And, conds: conds} }

// Any joins conds with OR.
func Any(conds ...Cond) Filter { return Filter{agg: dataframe.Or, conds: conds} }

// Where returns the rows of df matching f.
func Where(df dataframe.DataFrame, f Filter) (dataframe.DataFrame, error) {
	if len(f.conds) == 0 {
		return df, nil
	}
	fs := make([]dataframe.F, len(f.conds))
	for i, c := range f.conds {
		if err := requireColumns(df, c.f.Colname); err != nil {
			return dataframe.DataFrame{}, err
		}
		fs[i] = c.f
	}
	out := df.FilterAggregation(f.agg, fs...)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter: %w", out.Err)
	}
	return out, nil
}

// Values returns col of the rows matching f.
func Values(df dataframe.DataFrame, f Filter, col string) ([]float64, error) {
	sub, err := Where(df, f)
	if err != nil {
		return nil, err
	}
	return Column(sub, col)
}
