package plots

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"iristour/pkg/dataprep"
	"iristour/pkg/frame"
	"iristour/pkg/stats"
)

// MinPairCell is the smallest pair plot cell gonum/plot can lay out with
// tick labels and titles.
const MinPairCell = 1.5 * vg.Inch

// ErrFigureTooSmall reports a figure too small for its layout.
var ErrFigureTooSmall = errors.New("figure too small")

// PairPlot draws a scatter matrix of cols colored by hue. Off-diagonal cells
// are pairwise scatters titled with the Pearson r, diagonal cells are
// per-group histograms.
func PairPlot(df dataframe.DataFrame, hue string, cols []string, path string, st Style) error {
	if len(cols) < 2 {
		return fmt.Errorf("pair plot needs at least 2 columns, got %d", len(cols))
	}
	labels, err := frame.Labels(df, hue)
	if err != nil {
		return err
	}
	values := make([][]float64, len(cols))
	for j, c := range cols {
		if values[j], err = frame.Column(df, c); err != nil {
			return err
		}
	}
	codes, mapping := dataprep.LabelEncode(labels)
	levels := dataprep.Levels(mapping)

	n := len(cols)
	if w, h := st.Width/vg.Length(n), st.Height/vg.Length(n); w < MinPairCell || h < MinPairCell {
		return fmt.Errorf("%w: pair plot cells are %.0fx%.0fpt, need at least %.0fpt for %d columns",
			ErrFigureTooSmall, w.Points(), h.Points(), MinPairCell.Points(), n)
	}
	plots := make([][]*plot.Plot, n)
	for r := 0; r < n; r++ {
		plots[r] = make([]*plot.Plot, n)
		for c := 0; c < n; c++ {
			p := plot.New()
			st.apply(p)
			if r == c {
				err = addHistograms(p, values[c], codes, len(levels))
			} else {
				err = addScatters(p, values[c], values[r], codes, len(levels))
				p.Title.Text = fmt.Sprintf("r=%.2f", stats.Correlation(values[c], values[r]))
			}
			if err != nil {
				return err
			}
			if r == n-1 {
				p.X.Label.Text = cols[c]
			}
			if c == 0 {
				p.Y.Label.Text = cols[r]
			}
			plots[r][c] = p
		}
	}

	legend := plots[0][n-1]
	legend.Legend.Top = true
	for i, l := range levels {
		thumb, err := plotter.NewScatter(plotter.XYs{{}})
		if err != nil {
			return err
		}
		thumb.GlyphStyle.Color = hueColor(i)
		thumb.GlyphStyle.Shape = draw.CircleGlyph{}
		legend.Legend.Add(l, thumb)
	}

	img := vgimg.New(st.Width, st.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      n,
		Cols:      n,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
	canvases := plot.Align(plots, tiles, dc)
	if err := checkCanvases(canvases, dc.Rectangle); err != nil {
		return err
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			plots[r][c].Draw(canvases[r][c])
		}
	}
	return writePNG(img, path)
}

// checkCanvases rejects aligned cells that are empty, not finite or outside
// the image. Drawing such a cell never finishes rasterizing.
func checkCanvases(canvases [][]draw.Canvas, bounds vg.Rectangle) error {
	const slack = 0.5
	for r, row := range canvases {
		for c, cv := range row {
			rect := cv.Rectangle
			w, h := rect.Max.X-rect.Min.X, rect.Max.Y-rect.Min.Y
			ok := finite(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y) && w > 0 && h > 0 &&
				rect.Min.X >= bounds.Min.X-slack && rect.Max.X <= bounds.Max.X+slack &&
				rect.Min.Y >= bounds.Min.Y-slack && rect.Max.Y <= bounds.Max.Y+slack
			if !ok {
				return fmt.Errorf("%w: pair plot cell %d,%d does not fit the figure", ErrFigureTooSmall, r, c)
			}
		}
	}
	return nil
}

func finite(vs ...vg.Length) bool {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

func addScatters(p *plot.Plot, x, y []float64, codes []int, nGroups int) error {
	groups := make([]plotter.XYs, nGroups)
	for i, code := range codes {
		groups[code] = append(groups[code], plotter.XY{X: x[i], Y: y[i]})
	}
	for g, pts := range groups {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = hueColor(g)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
	}
	return nil
}

func addHistograms(p *plot.Plot, x []float64, codes []int, nGroups int) error {
	groups := make([]plotter.Values, nGroups)
	for i, code := range codes {
		groups[code] = append(groups[code], x[i])
	}
	for g, vs := range groups {
		h, err := plotter.NewHist(vs, sturges(len(vs)))
		if err != nil {
			return err
		}
		h.FillColor = translucent(hueColor(g), 120)
		h.LineStyle.Color = hueColor(g)
		p.Add(h)
	}
	return nil
}
