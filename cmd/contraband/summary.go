package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/archive"
	"github.com/nao1215/contraband/internal/config"
	"github.com/nao1215/contraband/internal/manifest"
	"github.com/nao1215/contraband/internal/model"
	"github.com/nao1215/contraband/internal/pipeline"
	"github.com/nao1215/contraband/internal/report"
)

// inlineSource labels the job built from command-line items.
const inlineSource = "arguments"

// summaryResult is one rendered selection in JSON output.
type summaryResult struct {
	Source  string            `json:"source"`
	Title   string            `json:"title,omitempty"`
	Summary string            `json:"summary"`
	Model   model.RenderModel `json:"model"`
}

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [name:code[:quantity]...]",
		Short: "Total fines and print the one-line selection summary",
		Long: `Summary builds a selection from the given items, prints the fines per
contraband class and the one-line summary ready to paste.

Items are written as name:code[:quantity]. Codes are A, B, C and D for
the contraband classes, W for weapons and N for non-contraband items.
Selecting the same item twice stacks its quantity (or toggles it off with
--policy toggle). Items listed in the configuration catalog may omit the
code.

Manifests are YAML files listing items; several manifests are rendered
concurrently and printed in the order given.

Examples:
  # Two items, the second with quantity 2
  contraband summary Revolver:W Moonshine:B:2

  # Only the summary line, custom separator, copied to the clipboard
  contraband summary -l --separator " | " -c Opium:A Dice:D

  # Render manifests as Markdown
  contraband summary -m -f monday.yaml -f tuesday.yaml -o seizures.md`,
		RunE: runSummaryCmd,
	}

	// Input flags
	cmd.Flags().StringArrayP("file", "f", nil,
		"Selection manifest in YAML (repeatable)")
	cmd.Flags().String("policy", "",
		"Repeated selection policy: stack or toggle (default from config, stack)")

	// Summary formatting flags
	cmd.Flags().String("separator", "",
		`Text between items in the summary line (default from config, ", ")`)
	cmd.Flags().String("sort", "",
		"Summary order: fine-desc or insertion (default from config, fine-desc)")
	cmd.Flags().BoolP("line", "l", false,
		"Print only the summary line")
	cmd.Flags().Bool("rates", false,
		"Show per-unit fine rates in the breakdown")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output each selection as a JSON object")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the breakdown in Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")

	// Export flags
	cmd.Flags().BoolP("copy", "c", false,
		"Copy the summary line to the clipboard")
	cmd.Flags().Bool("archive", false,
		"Record the summary line in the export history")

	return cmd
}

// buildSummaryConfig loads the configuration and applies summary flags.
// Flags only override the file when they are set explicitly.
func buildSummaryConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("separator") {
		if cfg.Separator, err = flags.GetString("separator"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("sort") {
		if cfg.Sort, err = flags.GetString("sort"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("policy") {
		if cfg.Policy, err = flags.GetString("policy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("copy") {
		if cfg.Copy, err = flags.GetBool("copy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("archive") {
		if cfg.Archive, err = flags.GetBool("archive"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSummaryJobs turns inline items and manifest paths into jobs.
func buildSummaryJobs(args, files []string) ([]*pipeline.Job, error) {
	if len(args) == 0 && len(files) == 0 {
		return nil, errors.New("no items provided (pass name:code arguments or --file manifests)")
	}

	jobs := make([]*pipeline.Job, 0, len(files)+1)
	if len(args) > 0 {
		m, err := manifest.Parse(args)
		if err != nil {
			return nil, err
		}
		job := pipeline.NewJob(inlineSource)
		job.Manifest = m
		jobs = append(jobs, job)
	}
	for _, f := range files {
		jobs = append(jobs, pipeline.NewJob(f))
	}
	return jobs, nil
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildSummaryConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	files, err := cmd.Flags().GetStringArray("file")
	if err != nil {
		return err
	}
	lineOnly, err := cmd.Flags().GetBool("line")
	if err != nil {
		return err
	}
	rates, err := cmd.Flags().GetBool("rates")
	if err != nil {
		return err
	}

	jobs, err := buildSummaryJobs(args, files)
	if err != nil {
		return err
	}

	newController, err := controllerFactory(cfg, logger)
	if err != nil {
		return err
	}
	opts := cfg.SelectionOptions()
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(newController, opts, pipeline.WithLogger(logger))
		},
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(cfg.BatchSize),
	)

	ctx := commandContext(cmd)
	jobs, err = bp.ProcessBatch(ctx, jobs)
	if err != nil {
		return err
	}

	out, closeOutput, err := openOutput(cfg.ReportFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort close after writing

	var (
		done    []*pipeline.Job
		failed  int
		entries []archive.Entry
		lines   []string
	)
	for _, job := range jobs {
		if job.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", job.Source, job.Err)
			continue
		}
		logSelection(logger, job.Source, job.Model)
		done = append(done, job)
		lines = append(lines, job.Summary)
		entries = append(entries, archive.NewSummaryEntry(jobTitle(job), job.Summary, job.Model))
	}

	if err := writeSummaries(out, cfg, done, lineOnly, rates); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if cfg.Copy {
		if err := copyText(cmd, logger, joinNonEmpty(lines, "\n")); err != nil {
			return err
		}
	}
	if cfg.Archive {
		if err := archiveEntries(ctx, cfg, logger, entries...); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d selections failed", failed, len(jobs))
	}
	return nil
}

// writeSummaries writes the finished jobs in the configured format.
func writeSummaries(out io.Writer, cfg *config.Config, jobs []*pipeline.Job, lineOnly, rates bool) error {
	multiple := len(jobs) > 1

	switch {
	case cfg.JSONReport:
		w := report.NewJSONWriter(out)
		for _, job := range jobs {
			res := summaryResult{
				Source:  job.Source,
				Title:   jobTitle(job),
				Summary: job.Summary,
				Model:   job.Model,
			}
			if _, err := w.WriteValue(res); err != nil {
				return err
			}
		}
		return nil

	case cfg.MarkdownReport:
		for _, job := range jobs {
			if _, err := report.NewMarkdownWriter(out, jobTitle(job)).Write(job.Model); err != nil {
				return err
			}
			if job.Summary != "" {
				if _, err := fmt.Fprintf(out, "\n```text\n%s\n```\n\n", job.Summary); err != nil {
					return err
				}
			}
		}
		return nil
	}

	simple := report.NewSimpleWriter(out,
		report.WithCurrency(cfg.Currency),
		report.WithRates(rates),
	)
	for i, job := range jobs {
		if lineOnly {
			if _, err := fmt.Fprintln(out, job.Summary); err != nil {
				return err
			}
			continue
		}
		if multiple {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", jobTitle(job))
		}
		if _, err := simple.Write(job.Model); err != nil {
			return err
		}
		if job.Summary != "" {
			if _, err := fmt.Fprintf(out, "\n%s\n", job.Summary); err != nil {
				return err
			}
		}
	}
	return nil
}

// jobTitle returns the manifest title, the manifest file name, or empty
// for inline items.
func jobTitle(job *pipeline.Job) string {
	if job.Manifest != nil && job.Manifest.Title != "" {
		return job.Manifest.Title
	}
	if job.Source == inlineSource {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(job.Source), filepath.Ext(job.Source))
}

// joinNonEmpty joins the non-empty elements of parts.
func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// logSelection logs the size of a rendered selection.
func logSelection(logger *slog.Logger, source string, m model.RenderModel) {
	logger.Debug("selection rendered",
		"source", source,
		"items", m.ItemCount,
		"units", m.UnitCount,
		"grandTotal", m.GrandTotal,
	)
}
