package pipeline

import (
	"context"
	"errors"

	"github.com/nao1215/contraband/internal/manifest"
	"github.com/nao1215/contraband/internal/report"
	"github.com/nao1215/contraband/internal/session"
)

// ErrNoController is returned by steps that need a replayed selection when
// the replay step has not run.
var ErrNoController = errors.New("job has no controller: replay step missing")

// LoadStep reads the manifest from the job's source.
type LoadStep struct{}

// Name implements Step.
func (LoadStep) Name() string { return "load" }

// Do implements Step. Jobs that already carry a manifest are left as is.
func (LoadStep) Do(_ context.Context, job *Job) error {
	if job.Manifest != nil {
		return nil
	}
	m, err := manifest.Load(job.Source)
	if err != nil {
		return err
	}
	job.Manifest = m
	return nil
}

// ReplayStep replays the manifest into a fresh controller.
type ReplayStep struct {
	newController func() *session.Controller
}

// NewReplayStep creates a ReplayStep. newController is called once per job.
func NewReplayStep(newController func() *session.Controller) *ReplayStep {
	return &ReplayStep{newController: newController}
}

// Name implements Step.
func (s *ReplayStep) Name() string { return "replay" }

// Do implements Step.
func (s *ReplayStep) Do(_ context.Context, job *Job) error {
	if job.Manifest == nil {
		return manifest.ErrManifestNotFound
	}
	c := s.newController()
	job.Manifest.Replay(c)
	job.Controller = c
	return nil
}

// ProjectStep stores the render model of the replayed selection.
type ProjectStep struct{}

// Name implements Step.
func (ProjectStep) Name() string { return "project" }

// Do implements Step.
func (ProjectStep) Do(_ context.Context, job *Job) error {
	if job.Controller == nil {
		return ErrNoController
	}
	job.Model = job.Controller.GetRenderModel()
	return nil
}

// SummaryStep formats the one-line summary.
type SummaryStep struct {
	opts report.SelectionOptions
}

// NewSummaryStep creates a SummaryStep with the given options.
func NewSummaryStep(opts report.SelectionOptions) *SummaryStep {
	return &SummaryStep{opts: opts}
}

// Name implements Step.
func (s *SummaryStep) Name() string { return "summary" }

// Do implements Step.
func (s *SummaryStep) Do(_ context.Context, job *Job) error {
	if job.Controller == nil {
		return ErrNoController
	}
	job.Summary = job.Controller.GetSummaryText(s.opts)
	return nil
}

// DefaultPipeline returns the load, replay, project and summary pipeline.
func DefaultPipeline(newController func() *session.Controller, opts report.SelectionOptions, pipelineOpts ...Option) *Pipeline {
	p := New(pipelineOpts...)
	p.AddSteps(
		LoadStep{},
		NewReplayStep(newController),
		ProjectStep{},
		NewSummaryStep(opts),
	)
	return p
}
