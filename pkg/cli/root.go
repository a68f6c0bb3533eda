// Package cli wires the walkthrough into the iristour command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"iristour/pkg/config"
	"iristour/pkg/pipeline"
	"iristour/pkg/plots"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	cfgFile   string
	dataPath  string
	outDir    string
	logLevel  string
	logFormat string
	noPlots   bool
}

// Execute is the entry point called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Without a subcommand it runs the whole tour.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	var steps []string

	root := &cobra.Command{
		Use:   "iristour",
		Short: "Narrated exploratory analysis of the Iris dataset",
		Long: `iristour walks through the Iris flower dataset: loading, grouped
statistics, boolean subsets, matrix round trips, a derived column, a
rank-sum test and the figures that go with them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, steps...)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.cfgFile, "config", "", "config file (default is ./iristour.yaml when present)")
	pf.StringVar(&g.dataPath, "data", "", "Iris CSV to load (default is the embedded copy)")
	pf.StringVar(&g.outDir, "out-dir", "", "directory for rendered figures (overrides config)")
	pf.StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.StringVar(&g.logFormat, "log-format", "", "text or json (overrides config)")
	pf.BoolVar(&g.noPlots, "no-plots", false, "skip rendering figures")
	root.Flags().StringSliceVar(&steps, "steps", nil, "run only these steps (prerequisites run silently)")

	root.AddCommand(
		newTourCmd(g),
		newStepsCmd(g, "describe", "Head, species counts and per-species statistics",
			pipeline.StepHead, pipeline.StepCount, pipeline.StepDescribe),
		newStepsCmd(g, "subset", "Boolean subsets of the table and their shapes",
			pipeline.StepSubset),
		newStepsCmd(g, "matrix", "Convert the table to a matrix and back",
			pipeline.StepMatrix, pipeline.StepRebuild),
		newStepsCmd(g, "derive", "Add Sepal = SepalLength * SepalWidth and print its quartiles",
			pipeline.StepDerive),
		newStepsCmd(g, "ranksum", "Rank-sum test of petal widths, virginica vs versicolor",
			pipeline.StepRankSum),
		newStepsCmd(g, "plot", "Render the pair, box and distribution plots",
			pipeline.StepPlots, pipeline.StepDistPlot),
		newConfigCmd(g),
	)
	return root
}

func newTourCmd(g *globals) *cobra.Command {
	var steps []string
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Run the full walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, steps...)
		},
	}
	cmd.Flags().StringSliceVar(&steps, "steps", nil, "run only these steps (prerequisites run silently)")
	return cmd
}

func newStepsCmd(g *globals, use, short string, steps ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, steps...)
		},
	}
}

// config loads the configuration file and environment, then applies flags.
func (g *globals) config(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(g.cfgFile)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("data") {
		c.DataPath = g.dataPath
	}
	if f.Changed("out-dir") {
		c.OutDir = g.outDir
	}
	if f.Changed("log-level") {
		c.LogLevel = g.logLevel
	}
	if f.Changed("log-format") {
		c.LogFormat = g.logFormat
	}
	if g.noPlots {
		c.Plots = false
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (g *globals) run(cmd *cobra.Command, steps ...string) error {
	c, err := g.config(cmd)
	if err != nil {
		return err
	}
	log, err := NewLogger(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	p, err := pipeline.Tour(steps...)
	if err != nil {
		return err
	}
	log.Debug("tour planned", "steps", p.Names(), "data", dataLabel(c.DataPath))
	s := pipeline.NewState(Options(c), cmd.OutOrStdout(), log)
	return p.Run(cmd.Context(), s)
}

// Options converts a validated configuration into walkthrough options.
func Options(c *config.Config) pipeline.Options {
	st := plots.DefaultStyle()
	st.Width = vg.Length(c.PlotWidthIn) * vg.Inch
	st.Height = vg.Length(c.PlotHeightIn) * vg.Inch
	st.DespineOffset = vg.Points(c.DespineOffsetPt)
	return pipeline.Options{
		DataPath: c.DataPath,
		OutDir:   c.OutDir,
		Plots:    c.Plots,
		HeadRows: c.HeadRows,
		Style:    st,
		Alpha:    c.Alpha,
	}
}

func dataLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// writeString is fmt.Fprint without the count.
func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
