package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/contraband/internal/manifest"
	"github.com/nao1215/contraband/internal/model"
	"github.com/nao1215/contraband/internal/session"
)

// Job is one manifest travelling through the pipeline.
type Job struct {
	// Source is the manifest path, or a label for inline manifests.
	Source string

	// Manifest is loaded from Source when nil.
	Manifest *manifest.Manifest

	// Controller holds the replayed selection.
	Controller *session.Controller

	// Model is the projected selection.
	Model model.RenderModel

	// Summary is the one-line summary text.
	Summary string

	// Err is the error that stopped the job, if any.
	Err error

	// PerformedSteps lists completed steps in order.
	PerformedSteps []string
}

// NewJob creates a job for the manifest at source.
func NewJob(source string) *Job {
	return &Job{Source: source}
}

// Title returns the manifest title, or the source when it has none.
func (j *Job) Title() string {
	if j.Manifest != nil && j.Manifest.Title != "" {
		return j.Manifest.Title
	}
	return j.Source
}

// Step is one stage of the pipeline.
type Step interface {
	// Do executes the step against job.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps running later steps after one fails.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing after a step
// fails. The first error is still recorded on the job.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step against job, checking for cancellation between
// steps. It returns the first error unless continueOnError is set.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			job.Err = err
			return err
		}

		p.logger.Debug("executing step", "step", step.Name(), "source", job.Source)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "source", job.Source, "error", err)
			if job.Err == nil {
				job.Err = err
			}
			if !p.continueOnError {
				return err
			}
			continue
		}

		job.PerformedSteps = append(job.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
