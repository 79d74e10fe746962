package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/archive"
	"github.com/nao1215/contraband/internal/config"
	"github.com/nao1215/contraband/internal/model"
)

// Briefing date and time layouts used for defaults.
const (
	briefingDateLayout = "2006-01-02"
	briefingTimeLayout = "15:04"
)

// NewBriefingCmd creates the briefing command.
func NewBriefingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Format an incident briefing report",
		Long: `Briefing formats an incident report with a Discord timestamp, the six
report fields in fixed order and a notes section.

Fields left out print empty. Fields passed to --na print "N/A" whatever
their text. Date and time default to now in the configured timezone; an
invalid date or time produces no report.

Examples:
  # Minimal report for now
  contraband briefing --officer "Deputy Hale" --location "Valentine Saloon"

  # Fixed instant, two fields not applicable, standard notes appended
  contraband briefing --date 2024-01-01 --time 18:00 \
    --na suspects --na charges --standard-notes

  # Copy the report and keep it in the export history
  contraband briefing --summary "Bar fight" -c --archive`,
		Args: cobra.NoArgs,
		RunE: runBriefingCmd,
	}

	for _, field := range model.BriefingFields() {
		cmd.Flags().String(field.Key(), "", field.Label()+" text")
	}
	cmd.Flags().StringSlice("na", nil,
		"Mark fields not applicable: officer, location, suspects, charges, evidence, summary (repeatable)")

	cmd.Flags().String("date", "",
		"Incident date as YYYY-MM-DD (default: today)")
	cmd.Flags().String("time", "",
		"Incident time as HH:MM or HH:MM:SS (default: now)")
	cmd.Flags().String("timezone", "",
		"Reference timezone of date and time (default from config, UTC)")

	cmd.Flags().String("notes", "",
		"Free-text notes")
	cmd.Flags().Bool("standard-notes", false,
		"Append the standard notes text")

	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolP("copy", "c", false,
		"Copy the report to the clipboard")
	cmd.Flags().Bool("archive", false,
		"Record the report in the export history")

	return cmd
}

// buildBriefingConfig loads the configuration and applies briefing flags.
func buildBriefingConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("timezone") {
		if cfg.Timezone, err = flags.GetString("timezone"); err != nil {
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
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildBriefingForm reads the form from the command flags. Missing date and
// time are filled from the clock in the configured location.
func buildBriefingForm(cmd *cobra.Command, cfg *config.Config) (model.BriefingForm, error) {
	form := model.NewBriefingForm()
	flags := cmd.Flags()

	for _, field := range model.BriefingFields() {
		text, err := flags.GetString(field.Key())
		if err != nil {
			return form, err
		}
		if text != "" {
			form.Set(field, text)
		}
	}

	na, err := flags.GetStringSlice("na")
	if err != nil {
		return form, err
	}
	for _, key := range na {
		field, err := model.ParseBriefingField(key)
		if err != nil {
			return form, err
		}
		form.MarkNotApplicable(field)
	}

	if form.Date, err = flags.GetString("date"); err != nil {
		return form, err
	}
	if form.Time, err = flags.GetString("time"); err != nil {
		return form, err
	}
	if form.Date == "" || form.Time == "" {
		loc, err := cfg.Location()
		if err != nil {
			return form, err
		}
		current := now().In(loc)
		if form.Date == "" {
			form.Date = current.Format(briefingDateLayout)
		}
		if form.Time == "" {
			form.Time = current.Format(briefingTimeLayout)
		}
	}

	if form.Notes, err = flags.GetString("notes"); err != nil {
		return form, err
	}
	if form.StandardNotes, err = flags.GetBool("standard-notes"); err != nil {
		return form, err
	}
	return form, nil
}

// runBriefingCmd executes the briefing command.
func runBriefingCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBriefingConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	form, err := buildBriefingForm(cmd, cfg)
	if err != nil {
		return err
	}

	newController, err := controllerFactory(cfg, logger)
	if err != nil {
		return err
	}
	text, err := newController().GetBriefingText(form, cfg.BriefingOptions())
	if err != nil {
		return fmt.Errorf("briefing not generated: %w", err)
	}

	out, closeOutput, err := openOutput(cfg.ReportFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort close after writing

	printed := text
	if !strings.HasSuffix(printed, "\n") {
		printed += "\n"
	}
	if _, err := fmt.Fprint(out, printed); err != nil {
		return fmt.Errorf("failed to write briefing: %w", err)
	}

	if cfg.Copy {
		if err := copyText(cmd, logger, text); err != nil {
			return err
		}
	}
	if cfg.Archive {
		entry := archive.NewBriefingEntry(briefingTitle(form), text)
		if err := archiveEntries(commandContext(cmd), cfg, logger, entry); err != nil {
			return err
		}
	}
	return nil
}

// briefingTitle names an archived briefing after its instant and location.
func briefingTitle(form model.BriefingForm) string {
	title := strings.TrimSpace(form.Date + " " + form.Time)
	if loc, ok := form.Fields[model.FieldLocation]; ok && !loc.NotApplicable && loc.Text != "" {
		title += " " + loc.Text
	}
	return title
}

