package frame

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
)

// RenderTable writes every row of df under its column names, each row
// prefixed by its index.
func RenderTable(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("render table: %w", df.Err)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for i, rec := range df.Records() {
		idx := ""
		if i > 0 {
			idx = strconv.Itoa(i - 1)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", idx, strings.Join(rec, "\t"))
	}
	return tw.Flush()
}

// RenderCounts writes one "label  n" line per group.
func RenderCounts(w io.Writer, col string, counts []Count) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t\n", col)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Group, c.N)
	}
	return tw.Flush()
}

// RenderDescribe writes the grouped describe table, one row per group and column.
func RenderDescribe(w io.Writer, by string, rows []GroupSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\tcolumn\tcount\tmean\tstd\tmin\t25%%\t50%%\t75%%\tmax\t\n", by)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t\n",
			r.Group, r.Column, r.Count, r.Mean, r.Std, r.Min, r.Q1, r.Median, r.Q3, r.Max)
	}
	return tw.Flush()
}

// RenderQuantiles writes "q  value" lines.
func RenderQuantiles(w io.Writer, col string, qs, values []float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, q := range qs {
		fmt.Fprintf(tw, "%.2f\t%.6f\n", q, values[i])
	}
	fmt.Fprintf(tw, "Name: %s\t\n", col)
	return tw.Flush()
}
