// Package plots renders the walkthrough figures to PNG with gonum/plot.
package plots

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// Style carries the figure tweaks the walkthrough applies: size, a white
// background with grid lines, and axes pushed away from the data.
type Style struct {
	Width, Height vg.Length
	Grid          bool
	// DespineOffset pads both axes away from the data area.
	DespineOffset vg.Length
}

// DefaultStyle is a 10x10 inch whitegrid figure with a 10pt axis offset.
func DefaultStyle() Style {
	return Style{
		Width:         10 * vg.Inch,
		Height:        10 * vg.Inch,
		Grid:          true,
		DespineOffset: vg.Points(10),
	}
}

func (s Style) apply(p *plot.Plot) {
	p.BackgroundColor = color.White
	if s.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = color.Gray{Y: 220}
		g.Horizontal.Color = color.Gray{Y: 220}
		p.Add(g)
	}
	p.X.Padding = s.DespineOffset
	p.Y.Padding = s.DespineOffset
}

func hueColor(i int) color.Color {
	return plotutil.Color(i)
}

func translucent(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// sturges picks a histogram bin count for n values.
func sturges(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func save(p *plot.Plot, st Style, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(st.Width, st.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writePNG(img *vgimg.Canvas, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
