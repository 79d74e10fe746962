package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/archive"
	"github.com/nao1215/contraband/internal/config"
	"github.com/nao1215/contraband/internal/report"
)

// Constants for history output.
const (
	defaultHistoryLimit = 20
	noHistoryMessage    = "No archived exports"
	historyTimeLayout   = "2006-01-02 15:04"
)

// NewHistoryCmd creates the history command.
// This command reads the export archive written by --archive.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show archived summaries and briefings",
		Long: `History lists the texts recorded with --archive, newest first.

Pass an ID to print one entry in full. The archive only records what was
exported; it is never used to restore a selection.

Examples:
  # List the latest exports
  contraband history

  # Only briefings, at most five
  contraband history --kind briefing -n 5

  # Print entry 12 again, copying it to the clipboard
  contraband history 12 -c

  # Delete entries older than 30 days
  contraband history --prune 720h`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("kind", "",
		"Only list entries of this kind: summary or briefing")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of entries to list (0 lists all)")
	cmd.Flags().String("prune", "",
		"Delete entries older than a duration (720h) or date (YYYY-MM-DD)")
	cmd.Flags().BoolP("json", "j", false,
		"Output entries in JSON format")
	cmd.Flags().BoolP("copy", "c", false,
		"Copy the selected entry to the clipboard")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	// Validate arguments before opening the database.
	var id int64
	if len(args) == 1 {
		id, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid entry ID: %q", args[0])
		}
	}
	kind, err := parseKindFlag(cmd)
	if err != nil {
		return err
	}
	pruneValue, err := cmd.Flags().GetString("prune")
	if err != nil {
		return err
	}
	var cutoff time.Time
	if pruneValue != "" {
		if cutoff, err = parseCutoff(pruneValue, now()); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if !archiveExists(cfg) {
		fmt.Fprintln(out, noHistoryMessage)
		return nil
	}

	opts := archive.DefaultOptions()
	opts.CreateIfNotExists = false
	a, err := archive.Open(cfg.DBDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	ctx := commandContext(cmd)

	if pruneValue != "" {
		n, err := a.Prune(ctx, cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d %s older than %s\n", n, plural(n, "entry", "entries"), cutoff.Format(historyTimeLayout))
		return nil
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if id > 0 {
		entry, err := a.Get(ctx, id)
		if err != nil {
			if errors.Is(err, archive.ErrEntryNotFound) {
				return fmt.Errorf("no archived export with ID %d", id)
			}
			return err
		}
		if jsonOutput {
			_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(entry)
		} else {
			err = writeHistoryEntry(out, cfg, entry)
		}
		if err != nil {
			return err
		}

		copyFlag, err := cmd.Flags().GetBool("copy")
		if err != nil {
			return err
		}
		if copyFlag {
			return copyText(cmd, logger, entry.Text)
		}
		return nil
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	entries, err := a.List(ctx, archive.ListOptions{Kind: kind, Limit: limit})
	if err != nil {
		return err
	}
	if jsonOutput {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(entries)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, noHistoryMessage)
		return nil
	}
	return writeHistoryTable(out, cfg, entries)
}

// parseKindFlag validates --kind.
func parseKindFlag(cmd *cobra.Command) (archive.Kind, error) {
	value, err := cmd.Flags().GetString("kind")
	if err != nil {
		return "", err
	}
	switch kind := archive.Kind(strings.ToLower(strings.TrimSpace(value))); kind {
	case "", archive.KindSummary, archive.KindBriefing:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown kind %q: use summary or briefing", value)
	}
}

// parseCutoff reads a prune cutoff as a duration before ref or as a date.
func parseCutoff(value string, ref time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(value); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("invalid prune duration: %q", value)
		}
		return ref.Add(-d), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid prune value %q (expected duration like 720h or date YYYY-MM-DD)", value)
	}
	return t, nil
}

// archiveExists reports whether the archive database file is present.
func archiveExists(cfg *config.Config) bool {
	_, err := os.Stat(filepath.Join(cfg.DBDir, archive.DBFileName))
	return err == nil
}

// writeHistoryTable lists entries as a table.
func writeHistoryTable(w io.Writer, cfg *config.Config, entries []archive.Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Kind", "Created", "Items", "Total", "Title")
	for _, e := range entries {
		total := "-"
		if e.Kind == archive.KindSummary {
			total = cfg.Currency + humanize.Comma(int64(e.GrandTotal))
		}
		row := []string{
			strconv.FormatInt(e.ID, 10),
			string(e.Kind),
			e.CreatedAt.Local().Format(historyTimeLayout),
			strconv.Itoa(e.ItemCount),
			total,
			e.Title,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// writeHistoryEntry prints one entry with a short header.
func writeHistoryEntry(w io.Writer, cfg *config.Config, e *archive.Entry) error {
	fmt.Fprintf(w, "#%d %s, %s (%s)\n", e.ID, e.Kind, e.CreatedAt.Local().Format(historyTimeLayout), humanize.Time(e.CreatedAt))
	if e.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", e.Title)
	}
	if e.Kind == archive.KindSummary {
		fmt.Fprintf(w, "Items: %d  Units: %d  Total: %s%s\n",
			e.ItemCount, e.UnitCount, cfg.Currency, humanize.Comma(int64(e.GrandTotal)))
	}
	fmt.Fprintln(w)

	text := e.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// plural returns singular when n is 1 and pluralForm otherwise.
func plural(n int64, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
