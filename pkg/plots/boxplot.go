package plots

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"iristour/pkg/dataprep"
	"iristour/pkg/frame"
)

// BoxPlot draws one box of y per distinct value of x.
func BoxPlot(df dataframe.DataFrame, x, y, path string, st Style) error {
	labels, err := frame.Labels(df, x)
	if err != nil {
		return err
	}
	values, err := frame.Column(df, y)
	if err != nil {
		return err
	}
	levels, groups := dataprep.GroupValues(labels, values)
	if len(levels) == 0 {
		return fmt.Errorf("box plot of %s: no rows", y)
	}

	p := plot.New()
	st.apply(p)
	p.Title.Text = fmt.Sprintf("%s by %s", y, x)
	p.X.Label.Text = x
	p.Y.Label.Text = y

	width := vg.Points(40)
	for i, g := range groups {
		b, err := plotter.NewBoxPlot(width, float64(i), plotter.Values(g))
		if err != nil {
			return err
		}
		b.FillColor = translucent(hueColor(i), 160)
		p.Add(b)
	}
	p.NominalX(levels...)
	return save(p, st, path)
}
