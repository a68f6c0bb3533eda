package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Step is one narrated operation of the walkthrough.
type Step interface {
	Name() string
	Run(ctx context.Context, s *State) error
}

type stepFunc struct {
	name string
	fn   func(ctx context.Context, s *State) error
}

func (f stepFunc) Name() string { return f.name }
func (f stepFunc) Run(ctx context.Context, s *State) error { return f.fn(ctx, s) }

// NewStep wraps fn as a Step.
func NewStep(name string, fn func(ctx context.Context, s *State) error) Step {
	return stepFunc{name: name, fn: fn}
}

type stage struct {
	step Step
	// silent stages run for their side effects on State; their narration is discarded.
	silent bool
}

// Pipeline chains steps and runs them in order.
type Pipeline struct {
	stages []stage
}

func NewPipeline(steps ...Step) *Pipeline {
	p := &Pipeline{}
	for _, s := range steps {
		p.stages = append(p.stages, stage{step: s})
	}
	return p
}

// Names returns the step names in run order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.stages))
	for i, st := range p.stages {
		out[i] = st.step.Name()
	}
	return out
}

// Run executes every step against s, stopping at the first error.
func (p *Pipeline) Run(ctx context.Context, s *State) error {
	log := s.logger()
	out := s.Out
	defer func() { s.Out = out }()

	for _, st := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := st.step.Name()
		s.Out = out
		if st.silent || s.Out == nil {
			s.Out = io.Discard
		}
		start := time.Now()
		log.Debug("step started", slog.String("step", name), slog.Bool("silent", st.silent))
		if err := st.step.Run(ctx, s); err != nil {
			log.Error("step failed", slog.String("step", name), slog.String("error", err.Error()))
			return fmt.Errorf("step %s: %w", name, err)
		}
		log.Info("step completed", slog.String("step", name), slog.Duration("elapsed", time.Since(start)))
	}
	return nil
}
