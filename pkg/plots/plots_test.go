package plots

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"iristour/pkg/data"
	"iristour/pkg/frame"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func smallStyle() Style {
	st := DefaultStyle()
	st.Width, st.Height = 6*vg.Inch, 6*vg.Inch
	return st
}

func loadIris(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df, err := data.LoadFile("")
	require.NoError(t, err)
	return df
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), len(pngMagic))
	assert.Equal(t, pngMagic, b[:len(pngMagic)])
}

func TestPairPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pairplot.png")
	cols := data.IrisSchema.Names(data.KindMeasurement)
	require.NoError(t, PairPlot(loadIris(t), data.ColSpecies, cols, path, smallStyle()))
	assertPNG(t, path)
}

func TestPairPlotErrors(t *testing.T) {
	df := loadIris(t)
	dir := t.TempDir()

	err := PairPlot(df, data.ColSpecies, []string{data.ColSepalLength}, filepath.Join(dir, "a.png"), smallStyle())
	assert.ErrorContains(t, err, "at least 2 columns")

	err = PairPlot(df, "Genus", []string{data.ColSepalLength, data.ColSepalWidth}, filepath.Join(dir, "b.png"), smallStyle())
	assert.ErrorIs(t, err, frame.ErrNoColumn)
}

func TestPairPlotTooSmall(t *testing.T) {
	cols := data.IrisSchema.Names(data.KindMeasurement)
	for _, in := range []vg.Length{2, 4, 5} {
		st := DefaultStyle()
		st.Width, st.Height = in*vg.Inch, 8*vg.Inch
		path := filepath.Join(t.TempDir(), "pairplot.png")
		err := PairPlot(loadIris(t), data.ColSpecies, cols, path, st)
		assert.ErrorIs(t, err, ErrFigureTooSmall, "%v inch wide", float64(in))
		assert.NoFileExists(t, path)
	}
}

func TestBoxPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxplot.png")
	require.NoError(t, BoxPlot(loadIris(t), data.ColSpecies, data.ColPetalWidth, path, DefaultStyle()))
	assertPNG(t, path)

	err := BoxPlot(loadIris(t), data.ColSpecies, data.ColSpecies, path, DefaultStyle())
	assert.ErrorContains(t, err, "not numeric")
}

func TestDistPlot(t *testing.T) {
	df := loadIris(t)
	virginica, err := frame.Values(df, frame.All(frame.Eq(data.ColSpecies, data.Virginica)), data.ColPetalWidth)
	require.NoError(t, err)
	versicolor, err := frame.Values(df, frame.All(frame.Eq(data.ColSpecies, data.Versicolor)), data.ColPetalWidth)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "distplot.png")
	samples := []Sample{{Name: "virginica", Values: virginica}, {Name: "versicolor", Values: versicolor}}
	require.NoError(t, DistPlot(samples, "PetalWidth", path, smallStyle()))
	assertPNG(t, path)
}

func TestDistPlotConstantSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.png")
	require.NoError(t, DistPlot([]Sample{{Name: "flat", Values: []float64{1, 1, 1, 1}}}, "", path, smallStyle()))
	assertPNG(t, path)
}

func TestDistPlotErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	assert.Error(t, DistPlot(nil, "", path, smallStyle()))
	assert.Error(t, DistPlot([]Sample{{Name: "empty"}}, "", path, smallStyle()))
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	df := loadIris(t)
	figs := []Figure{
		{Name: "box", Render: func(p string) error {
			return BoxPlot(df, data.ColSpecies, data.ColPetalLength, p, smallStyle())
		}},
		{Name: "dist", Render: func(p string) error {
			x, err := frame.Column(df, data.ColSepalLength)
			if err != nil {
				return err
			}
			return DistPlot([]Sample{{Name: "all", Values: x}}, "", p, smallStyle())
		}},
	}
	paths, err := RenderAll(context.Background(), dir, figs)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "box.png"), filepath.Join(dir, "dist.png")}, paths)
	for _, p := range paths {
		assertPNG(t, p)
	}
}

func TestRenderAllError(t *testing.T) {
	boom := errors.New("boom")
	_, err := RenderAll(context.Background(), t.TempDir(), []Figure{
		{Name: "bad", Render: func(string) error { return boom }},
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "bad")
}

func TestSturges(t *testing.T) {
	assert.Equal(t, 1, sturges(0))
	assert.Equal(t, 7, sturges(50))
	assert.Equal(t, 9, sturges(150))
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blank.png")
	require.NoError(t, writePNG(vgimg.New(vg.Inch, vg.Inch), path))
	assertPNG(t, path)

	// A directory sitting where the file should go.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "taken.png"), 0o755))
	assert.Error(t, writePNG(vgimg.New(vg.Inch, vg.Inch), filepath.Join(dir, "taken.png")))
}
