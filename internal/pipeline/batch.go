package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is used when WithConcurrency is not given.
const defaultConcurrency = 4

// BatchProcessor renders several manifests concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each job.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of jobs running at once.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent jobs.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     defaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch runs one pipeline per job. Jobs are returned in input order.
// A failed job records its error and does not stop the others; the returned
// error is only set when ctx is cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []*Job) ([]*Job, error) {
	bp.logger.Debug("starting batch", "jobs", len(jobs), "concurrency", bp.concurrency)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				job.Err = err
				return err
			}

			bp.logger.Debug("rendering manifest", "source", job.Source, "index", i+1, "total", len(jobs))
			if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
				bp.logger.Warn("manifest failed", "source", job.Source, "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Debug("batch complete", "jobs", len(jobs), "elapsed", time.Since(start))
	return jobs, err
}

// ProcessSources is ProcessBatch for a list of manifest paths.
func (bp *BatchProcessor) ProcessSources(ctx context.Context, sources []string) ([]*Job, error) {
	jobs := make([]*Job, len(sources))
	for i, src := range sources {
		jobs[i] = NewJob(src)
	}
	return bp.ProcessBatch(ctx, jobs)
}
