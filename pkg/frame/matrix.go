package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a table converted to a dense numeric matrix. Labels keeps the
// categorical column, which has no place in a float matrix, aligned by row.
type Matrix struct {
	Values      *mat.Dense
	Columns     []string
	Labels      []string
	LabelColumn string
}

// ToMatrix converts every column of df except labelCol into a dense matrix.
// An empty labelCol means the table has no label column.
func ToMatrix(df dataframe.DataFrame, labelCol string) (*Matrix, error) {
	if labelCol != "" {
		if err := requireColumns(df, labelCol); err != nil {
			return nil, err
		}
	}
	var cols []string
	for _, n := range df.Names() {
		if n != labelCol {
			cols = append(cols, n)
		}
	}
	r, c := df.Nrow(), len(cols)
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("to matrix: table is %dx%d", r, c)
	}

	data := make([]float64, r*c)
	for j, name := range cols {
		x, err := Column(df, name)
		if err != nil {
			return nil, fmt.Errorf("to matrix: %w", err)
		}
		for i, v := range x {
			data[i*c+j] = v
		}
	}
	m := &Matrix{Values: mat.NewDense(r, c, data), Columns: cols, LabelColumn: labelCol}
	if labelCol != "" {
		m.Labels = df.Col(labelCol).Records()
	}
	return m, nil
}

// Dims returns the row and column counts, counting the label column.
func (m *Matrix) Dims() (int, int) {
	r, c := m.Values.Dims()
	if m.Labels != nil {
		c++
	}
	return r, c
}

// ErrOutOfRange reports a row or column window outside the matrix.
var ErrOutOfRange = errors.New("out of range")

func checkWindow(what string, from, to, n int) error {
	if from < 0 || to > n || from >= to {
		return fmt.Errorf("%w: %s [%d, %d) of %d", ErrOutOfRange, what, from, to, n)
	}
	return nil
}

// RowRange returns rows [from, to) with every numeric column.
func (m *Matrix) RowRange(from, to int) (*mat.Dense, error) {
	r, c := m.Values.Dims()
	if err := checkWindow("rows", from, to, r); err != nil {
		return nil, err
	}
	return m.Values.Slice(from, to, 0, c).(*mat.Dense), nil
}

// RowSlice returns columns [from, to) of row i.
func (m *Matrix) RowSlice(i, from, to int) ([]float64, error) {
	r, c := m.Values.Dims()
	if err := checkWindow("row", i, i+1, r); err != nil {
		return nil, err
	}
	if err := checkWindow("columns", from, to, c); err != nil {
		return nil, err
	}
	return mat.Row(nil, i, m.Values)[from:to], nil
}

// FormatRows renders rows [from, to) one per line, label last.
func (m *Matrix) FormatRows(from, to int) (string, error) {
	rows, err := m.RowRange(from, to)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	r, c := rows.Dims()
	for i := 0; i < r; i++ {
		sb.WriteString("[")
		for j := 0; j < c; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.FormatFloat(rows.At(i, j), 'g', -1, 64))
		}
		if m.Labels != nil {
			sb.WriteString(" ")
			sb.WriteString(m.Labels[from+i])
		}
		sb.WriteString("]\n")
	}
	return sb.String(), nil
}

// FromMatrix wraps m back into a table named by names. When m carries labels
// the last name is used for the label column.
func FromMatrix(m *Matrix, names []string) (dataframe.DataFrame, error) {
	_, want := m.Dims()
	if len(names) != want {
		return dataframe.DataFrame{}, fmt.Errorf("from matrix: got %d names for %d columns", len(names), want)
	}
	_, c := m.Values.Dims()
	df := dataframe.LoadMatrix(m.Values)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("from matrix: %w", df.Err)
	}
	if err := df.SetNames(names[:c]...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("from matrix: %w", err)
	}
	if m.Labels != nil {
		df = df.Mutate(series.New(m.Labels, series.String, names[c]))
		if df.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("from matrix: %w", df.Err)
		}
	}
	return df, nil
}
