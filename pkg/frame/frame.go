// Package frame holds the table operations the walkthrough narrates: shape,
// head, group counts and describe, drop, boolean filters, matrix round trip
// and derived columns. Each one is a thin call into gota so the narrated step
// reads as a single operation.
package frame

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"iristour/pkg/stats"
)

// ErrNoColumn is returned when an operation names a column the table does not have.
var ErrNoColumn = errors.New("no such column")

// Shape returns the row and column counts.
func Shape(df dataframe.DataFrame) (rows, cols int) {
	return df.Dims()
}

// FormatShape renders the shape as a (rows, cols) tuple.
func FormatShape(df dataframe.DataFrame) string {
	r, c := df.Dims()
	return fmt.Sprintf("(%d, %d)", r, c)
}

// Head returns the first n rows (all rows if the table is shorter).
func Head(df dataframe.DataFrame, n int) dataframe.DataFrame {
	rows := df.Nrow()
	if n > rows {
		n = rows
	}
	if n <= 0 {
		return df.Subset([]int{})
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return df.Subset(idx)
}

// Drop returns a copy of df without cols.
func Drop(df dataframe.DataFrame, cols ...string) (dataframe.DataFrame, error) {
	if err := requireColumns(df, cols...); err != nil {
		return dataframe.DataFrame{}, err
	}
	out := df.Drop(cols)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop %v: %w", cols, out.Err)
	}
	return out, nil
}

// Column returns a numeric column as float64 values.
func Column(df dataframe.DataFrame, col string) ([]float64, error) {
	if err := requireColumns(df, col); err != nil {
		return nil, err
	}
	s := df.Col(col)
	if s.Err != nil {
		return nil, s.Err
	}
	if t := s.Type(); t != series.Float && t != series.Int {
		return nil, fmt.Errorf("column %q is %s, not numeric", col, t)
	}
	return s.Float(), nil
}

// Labels returns a column as strings.
func Labels(df dataframe.DataFrame, col string) ([]string, error) {
	if err := requireColumns(df, col); err != nil {
		return nil, err
	}
	return df.Col(col).Records(), nil
}

// Count is the number of rows carrying one label value.
type Count struct {
	Group string
	N     int
}

// CountBy counts rows per distinct value of col, sorted by value.
func CountBy(df dataframe.DataFrame, col string) ([]Count, error) {
	groups, err := groupBy(df, col)
	if err != nil {
		return nil, err
	}
	out := make([]Count, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		out = append(out, Count{Group: k, N: groups[k].Nrow()})
	}
	return out, nil
}

// GroupSummary is the describe() output of one column within one group.
type GroupSummary struct {
	Group  string
	Column string
	stats.Summary
}

// DescribeBy computes descriptive statistics of cols for every value of by.
// Results are ordered by group, then by the order of cols.
func DescribeBy(df dataframe.DataFrame, by string, cols []string) ([]GroupSummary, error) {
	if err := requireColumns(df, cols...); err != nil {
		return nil, err
	}
	groups, err := groupBy(df, by)
	if err != nil {
		return nil, err
	}
	var out []GroupSummary
	for _, k := range sortedKeys(groups) {
		for _, c := range cols {
			x, err := Column(groups[k], c)
			if err != nil {
				return nil, err
			}
			out = append(out, GroupSummary{Group: k, Column: c, Summary: stats.Describe(x)})
		}
	}
	return out, nil
}

func groupBy(df dataframe.DataFrame, col string) (map[string]dataframe.DataFrame, error) {
	if err := requireColumns(df, col); err != nil {
		return nil, err
	}
	g := df.GroupBy(col)
	if g.Err != nil {
		return nil, fmt.Errorf("group by %s: %w", col, g.Err)
	}
	return g.GetGroups(), nil
}

func sortedKeys(m map[string]dataframe.DataFrame) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func requireColumns(df dataframe.DataFrame, cols ...string) error {
	have := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}
	for _, c := range cols {
		if _, ok := have[c]; !ok {
			return fmt.Errorf("%w: %q", ErrNoColumn, c)
		}
	}
	return nil
}
