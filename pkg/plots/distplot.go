package plots

import (
	"fmt"

	moremath "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"iristour/pkg/stats"
)

// Sample is a named set of observations drawn as one distribution.
type Sample struct {
	Name   string
	Values []float64
}

// kdePoints is the resolution of each density curve.
const kdePoints = 128

// DistPlot overlays a density-normalized histogram and a Gaussian kernel
// density curve for every sample.
func DistPlot(samples []Sample, title, path string, st Style) error {
	if len(samples) == 0 {
		return fmt.Errorf("dist plot: no samples")
	}
	p := plot.New()
	st.apply(p)
	p.Title.Text = title
	p.Y.Label.Text = "density"
	p.Legend.Top = true

	for i, s := range samples {
		if len(s.Values) == 0 {
			return fmt.Errorf("dist plot %s: %w", s.Name, stats.ErrEmptySample)
		}
		h, err := plotter.NewHist(plotter.Values(s.Values), sturges(len(s.Values)))
		if err != nil {
			return err
		}
		h.Normalize(1)
		h.FillColor = translucent(hueColor(i), 100)
		h.LineStyle.Color = hueColor(i)
		p.Add(h)

		curve, err := densityCurve(s.Values)
		if err != nil {
			return err
		}
		if curve == nil {
			p.Legend.Add(s.Name, h)
			continue
		}
		curve.LineStyle.Color = hueColor(i)
		curve.LineStyle.Width = vg.Points(2)
		p.Add(curve)
		p.Legend.Add(s.Name, curve)
	}
	return save(p, st, path)
}

// densityCurve returns nil when the sample has no spread to estimate from.
func densityCurve(x []float64) (*plotter.Line, error) {
	sample := moremath.Sample{Xs: x}
	bw := moremath.BandwidthScott(&sample)
	if !(bw > 0) {
		return nil, nil
	}
	kde := &moremath.KDE{Sample: sample, Bandwidth: bw}

	lo, hi := stats.MinMax(x)
	lo, hi = lo-3*bw, hi+3*bw
	step := (hi - lo) / (kdePoints - 1)
	pts := make(plotter.XYs, kdePoints)
	for i := range pts {
		v := lo + float64(i)*step
		pts[i] = plotter.XY{X: v, Y: kde.PDF(v)}
	}
	return plotter.NewLine(pts)
}
