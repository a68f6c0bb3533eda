package pipeline

import (
	"io"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"iristour/pkg/frame"
	"iristour/pkg/plots"
	"iristour/pkg/stats"
)

// Options controls a walkthrough run.
type Options struct {
	// DataPath is the CSV to load; empty selects the embedded Iris table.
	DataPath string
	OutDir   string
	Plots    bool
	HeadRows int
	Style    plots.Style
	// Alpha is the significance level used to phrase the test conclusion.
	Alpha float64
}

// State is what the steps hand to each other.
type State struct {
	Opts Options
	Out  io.Writer
	Log  *slog.Logger

	// Raw is the table as loaded, Table the same table without Id.
	Raw   dataframe.DataFrame
	Table dataframe.DataFrame

	Subsets map[string]dataframe.DataFrame
	Matrix  *frame.Matrix
	// Renamed is the table rebuilt from Matrix, later extended with Sepal.
	Renamed   dataframe.DataFrame
	Quantiles []float64

	Samples     []plots.Sample
	RankSum     stats.RankSumResult
	MannWhitney stats.MannWhitneyResult

	Figures []string
}

// NewState returns a State writing narration to out.
func NewState(opts Options, out io.Writer, log *slog.Logger) *State {
	return &State{Opts: opts, Out: out, Log: log, Subsets: map[string]dataframe.DataFrame{}}
}

func (s *State) logger() *slog.Logger {
	if s.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Log
}
