package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"iristour/pkg/data"
	"iristour/pkg/dataprep"
	"iristour/pkg/frame"
	"iristour/pkg/plots"
	"iristour/pkg/stats"
)

// Step names, in tour order.
const (
	StepLoad     = "load"
	StepHead     = "head"
	StepCount    = "count"
	StepDescribe = "describe"
	StepDrop     = "drop"
	StepPlots    = "plots"
	StepSubset   = "subset"
	StepMatrix   = "matrix"
	StepRebuild  = "rebuild"
	StepDerive   = "derive"
	StepRankSum  = "ranksum"
	StepDistPlot = "distplot"
)

// RenamedColumns names the table rebuilt from the matrix.
var RenamedColumns = []string{"SepalLength", "SepalWidth", "PetalLength", "PetalWidth", "Species"}

// Rows shown by the matrix and rebuild steps.
const (
	matrixRows  = 9
	sliceRow    = 20
	rebuildRows = 20
)

// Subset names.
const (
	SubSetosa        = "sub1"
	SubNarrowShort   = "sub2"
	SubNarrowOrShort = "sub3"
)

type tourStep struct {
	name     string
	requires []string
	run      func(ctx context.Context, s *State) error
}

var tourSteps = []tourStep{
	{StepLoad, nil, runLoad},
	{StepHead, []string{StepLoad}, runHead},
	{StepCount, []string{StepLoad}, runCount},
	{StepDescribe, []string{StepLoad}, runDescribe},
	{StepDrop, []string{StepLoad}, runDrop},
	{StepPlots, []string{StepDrop}, runPlots},
	{StepSubset, []string{StepDrop}, runSubset},
	{StepMatrix, []string{StepDrop}, runMatrix},
	{StepRebuild, []string{StepMatrix}, runRebuild},
	{StepDerive, []string{StepRebuild}, runDerive},
	{StepRankSum, []string{StepRebuild}, runRankSum},
	{StepDistPlot, []string{StepRankSum}, runDistPlot},
}

// StepNames lists every tour step in run order.
func StepNames() []string {
	out := make([]string, len(tourSteps))
	for i, t := range tourSteps {
		out[i] = t.name
	}
	return out
}

// Tour builds the walkthrough. With no names every step runs and narrates.
// Otherwise only the named steps narrate; the steps they depend on still run,
// silently, and everything runs in tour order.
func Tour(names ...string) (*Pipeline, error) {
	if len(names) == 0 {
		names = StepNames()
	}
	byName := make(map[string]tourStep, len(tourSteps))
	for _, t := range tourSteps {
		byName[t.name] = t
	}

	wanted := map[string]bool{}
	needed := map[string]bool{}
	var visit func(string)
	visit = func(n string) {
		if needed[n] {
			return
		}
		needed[n] = true
		for _, r := range byName[n].requires {
			visit(r)
		}
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if _, ok := byName[n]; !ok {
			return nil, fmt.Errorf("unknown step %q (known: %s)", n, strings.Join(StepNames(), ", "))
		}
		wanted[n] = true
		visit(n)
	}

	p := &Pipeline{}
	for _, t := range tourSteps {
		if needed[t.name] {
			p.stages = append(p.stages, stage{step: NewStep(t.name, t.run), silent: !wanted[t.name]})
		}
	}
	return p, nil
}

func header(s *State, title string) {
	fmt.Fprintf(s.Out, "\n== %s ==\n", title)
}

func runLoad(_ context.Context, s *State) error {
	df, err := data.LoadFile(s.Opts.DataPath)
	if err != nil {
		return err
	}
	s.Raw = df
	if rows := df.Nrow(); rows != data.IrisRows {
		s.logger().Warn("unexpected row count", slog.Int("rows", rows), slog.Int("want", data.IrisRows))
	}
	header(s, "Load the Iris table")
	fmt.Fprintln(s.Out, frame.FormatShape(df))
	return nil
}

func runHead(_ context.Context, s *State) error {
	header(s, fmt.Sprintf("First %d rows", s.Opts.HeadRows))
	return frame.RenderTable(s.Out, frame.Head(s.Raw, s.Opts.HeadRows))
}

func runCount(_ context.Context, s *State) error {
	counts, err := frame.CountBy(s.Raw, data.ColSpecies)
	if err != nil {
		return err
	}
	header(s, "Rows per species")
	return frame.RenderCounts(s.Out, data.ColSpecies, counts)
}

func runDescribe(_ context.Context, s *State) error {
	cols := data.IrisSchema.Names(data.KindMeasurement)
	rows, err := frame.DescribeBy(s.Raw, data.ColSpecies, cols)
	if err != nil {
		return err
	}
	header(s, "Descriptive statistics per species")
	if err := frame.RenderDescribe(s.Out, data.ColSpecies, rows); err != nil {
		return err
	}

	// The box plot draws these as points beyond the whiskers.
	labels, err := frame.Labels(s.Raw, data.ColSpecies)
	if err != nil {
		return err
	}
	widths, err := frame.Column(s.Raw, data.ColPetalWidth)
	if err != nil {
		return err
	}
	levels, groups := dataprep.GroupValues(labels, widths)
	fmt.Fprintf(s.Out, "\n%s outside 1.5 IQR fences\n", data.ColPetalWidth)
	for i, lvl := range levels {
		fmt.Fprintf(s.Out, "%s %v\n", lvl, stats.Outliers(groups[i], 1.5))
	}
	return nil
}

func runDrop(_ context.Context, s *State) error {
	df, err := frame.Drop(s.Raw, data.ColID)
	if err != nil {
		return err
	}
	s.Table = df
	header(s, "Drop the Id column")
	fmt.Fprintln(s.Out, frame.FormatShape(df))
	return nil
}

func runPlots(ctx context.Context, s *State) error {
	if !s.Opts.Plots {
		s.logger().Info("plots disabled, skipping", slog.String("step", StepPlots))
		return nil
	}
	st := s.Opts.Style
	cols := data.IrisSchema.Names(data.KindMeasurement)
	figs := []plots.Figure{
		{Name: "pairplot", Render: func(path string) error {
			return plots.PairPlot(s.Table, data.ColSpecies, cols, path, st)
		}},
		{Name: "boxplot", Render: func(path string) error {
			return plots.BoxPlot(s.Table, data.ColSpecies, data.ColPetalWidth, path, st)
		}},
	}
	return renderFigures(ctx, s, "Pair plot and box plot", figs)
}

func renderFigures(ctx context.Context, s *State, title string, figs []plots.Figure) error {
	paths, err := plots.RenderAll(ctx, s.Opts.OutDir, figs)
	if err != nil {
		return err
	}
	header(s, title)
	for _, p := range paths {
		s.logger().Info("figure written", slog.String("path", p))
		fmt.Fprintf(s.Out, "wrote %s\n", p)
	}
	s.Figures = append(s.Figures, paths...)
	return nil
}

func runSubset(_ context.Context, s *State) error {
	filters := []struct {
		name string
		f    frame.Filter
	}{
		{SubSetosa, frame.All(frame.Eq(data.ColSpecies, data.Setosa))},
		{SubNarrowShort, frame.All(frame.Lt(data.ColPetalWidth, 1), frame.Lt(data.ColPetalLength, 2))},
		{SubNarrowOrShort, frame.Any(frame.Lt(data.ColPetalWidth, 1), frame.Lt(data.ColPetalLength, 2))},
	}
	header(s, "Boolean subsets")
	for _, f := range filters {
		sub, err := frame.Where(s.Table, f.f)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		s.Subsets[f.name] = sub
		fmt.Fprintf(s.Out, "%s %s\n", f.name, frame.FormatShape(sub))
	}
	return nil
}

func runMatrix(_ context.Context, s *State) error {
	m, err := frame.ToMatrix(s.Table, data.ColSpecies)
	if err != nil {
		return err
	}
	s.Matrix = m
	header(s, "Table as a matrix")

	rows, cols := m.Values.Dims()
	shown := min(matrixRows, rows)
	if shown < matrixRows {
		s.logger().Warn("short table, showing fewer matrix rows", slog.Int("rows", rows), slog.Int("want", matrixRows))
	}
	text, err := m.FormatRows(0, shown)
	if err != nil {
		return err
	}
	fmt.Fprint(s.Out, text)

	if rows <= sliceRow || cols < 2 {
		s.logger().Warn("short table, skipping row slice", slog.Int("row", sliceRow), slog.Int("rows", rows))
		return nil
	}
	slice, err := m.RowSlice(sliceRow, 0, 2)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, slice)
	return nil
}

func runRebuild(_ context.Context, s *State) error {
	df, err := frame.FromMatrix(s.Matrix, RenamedColumns)
	if err != nil {
		return err
	}
	s.Renamed = df
	header(s, fmt.Sprintf("Matrix back to a table, first %d rows", rebuildRows))
	return frame.RenderTable(s.Out, frame.Head(df, rebuildRows))
}

func runDerive(_ context.Context, s *State) error {
	df, err := frame.WithProduct(s.Renamed, "SepalLength", "SepalWidth", "Sepal")
	if err != nil {
		return err
	}
	qs := []float64{0.25, 0.5, 0.75}
	values, err := frame.Quantiles(df, "Sepal", qs...)
	if err != nil {
		return err
	}
	s.Renamed = df
	s.Quantiles = values
	header(s, "Derived Sepal = SepalLength * SepalWidth")
	return frame.RenderQuantiles(s.Out, "Sepal", qs, values)
}

func runRankSum(_ context.Context, s *State) error {
	species := RenamedColumns[len(RenamedColumns)-1]
	virginica, err := frame.Values(s.Renamed, frame.All(frame.Eq(species, data.Virginica)), "PetalWidth")
	if err != nil {
		return err
	}
	versicolor, err := frame.Values(s.Renamed, frame.All(frame.Eq(species, data.Versicolor)), "PetalWidth")
	if err != nil {
		return err
	}
	s.Samples = []plots.Sample{
		{Name: data.Virginica, Values: virginica},
		{Name: data.Versicolor, Values: versicolor},
	}

	rs, err := stats.RankSums(virginica, versicolor)
	if err != nil {
		return err
	}
	mw, err := stats.MannWhitney(virginica, versicolor)
	if err != nil {
		return err
	}
	s.RankSum, s.MannWhitney = rs, mw

	header(s, "Petal width: virginica vs versicolor")
	fmt.Fprintf(s.Out, "MWW RankSum p-value %0.15f\n", rs.P)
	fmt.Fprintf(s.Out, "rank-sum z=%.6f, Mann-Whitney U=%.1f p-value %0.15f\n", rs.Z, mw.U, mw.P)
	if rs.P < s.Opts.Alpha {
		fmt.Fprintf(s.Out, "p < %.2f: the petal width distributions differ\n", s.Opts.Alpha)
	} else {
		fmt.Fprintf(s.Out, "p >= %.2f: no evidence the petal width distributions differ\n", s.Opts.Alpha)
	}
	return nil
}

func runDistPlot(ctx context.Context, s *State) error {
	if !s.Opts.Plots {
		s.logger().Info("plots disabled, skipping", slog.String("step", StepDistPlot))
		return nil
	}
	st := s.Opts.Style
	figs := []plots.Figure{{Name: "distplot", Render: func(path string) error {
		return plots.DistPlot(s.Samples, "PetalWidth", path, st)
	}}}
	return renderFigures(ctx, s, "Distribution plot", figs)
}
