package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/archive"
	"github.com/nao1215/contraband/internal/config"
	"github.com/nao1215/contraband/internal/manifest"
	"github.com/nao1215/contraband/internal/report"
	"github.com/nao1215/contraband/internal/session"
)

// shellPrompt is printed before each command when input is a terminal.
const shellPrompt = "contraband> "

// shellHelp lists the shell commands.
const shellHelp = `Commands:
  add, a <name>[:code[:quantity]]   select an item (again to stack or toggle)
  qty, q <name> <quantity>          set the quantity of a selected item
  rm <name>                         remove an item
  clear                             remove every item
  show, s                           print fines per category and the summary
  line                              print the summary line only
  copy, c                           copy the summary line
  categories                        list category codes and fines
  help                              show this help
  quit, exit                        leave the shell`

// NewShellCmd creates the shell command.
func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Build a selection interactively",
		Long: `Shell reads one command per line and keeps a selection between them.
Type 'help' for the command list.

Examples:
  # Start empty
  contraband shell

  # Start from a manifest, toggling instead of stacking
  contraband shell -f seizure.yaml --policy toggle`,
		Args: cobra.NoArgs,
		RunE: runShellCmd,
	}

	cmd.Flags().StringP("file", "f", "",
		"Selection manifest to load at start")
	cmd.Flags().String("policy", "",
		"Repeated selection policy: stack or toggle (default from config, stack)")
	cmd.Flags().Bool("archive", false,
		"Record copied summaries in the export history")

	return cmd
}

// shell is an interactive session over one controller.
type shell struct {
	ctrl   *session.Controller
	cfg    *config.Config
	opts   report.SelectionOptions
	out    io.Writer
	prompt bool

	copy    func(text string) error
	archive func(e archive.Entry) error
}

// runShellCmd executes the shell command.
func runShellCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("policy") {
		if cfg.Policy, err = flags.GetString("policy"); err != nil {
			return err
		}
	}
	if flags.Changed("archive") {
		if cfg.Archive, err = flags.GetBool("archive"); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.Verbose)

	newController, err := controllerFactory(cfg, logger)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	sh := &shell{
		ctrl: newController(),
		cfg:  cfg,
		opts: cfg.SelectionOptions(),
		out:  cmd.OutOrStdout(),
		copy: func(text string) error {
			return copyText(cmd, logger, text)
		},
		archive: func(e archive.Entry) error {
			return archiveEntries(ctx, cfg, logger, e)
		},
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) {
		sh.prompt = true
	}

	path, err := flags.GetString("file")
	if err != nil {
		return err
	}
	if path != "" {
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		m.Replay(sh.ctrl)
		fmt.Fprintf(sh.out, "Loaded %d item(s) from %s\n", len(sh.ctrl.Items()), path)
	}

	return sh.run(ctx, cmd.InOrStdin(), logger)
}

// run reads commands from in until quit, end of input or cancellation.
func (s *shell) run(ctx context.Context, in io.Reader, logger *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt {
			fmt.Fprint(s.out, shellPrompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := s.execute(scanner.Text())
		if err != nil {
			logger.Debug("shell command failed", "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// execute runs one command line. It reports true when the shell should exit.
func (s *shell) execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "add", "a":
		return false, s.add(rest)
	case "qty", "q":
		return false, s.quantity(rest)
	case "rm", "remove":
		return false, s.remove(rest)
	case "clear":
		s.ctrl.OnClearAll()
		fmt.Fprintln(s.out, "Selection cleared")
		return false, nil
	case "show", "s":
		return false, s.show()
	case "line":
		fmt.Fprintln(s.out, s.summary())
		return false, nil
	case "copy", "c":
		return false, s.copySummary()
	case "categories":
		return false, writeCategoryTable(s.out, s.cfg)
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (type help)", name)
	}
}

// add selects an item written as name[:code[:quantity]].
func (s *shell) add(arg string) error {
	if arg == "" {
		return errors.New("usage: add <name>[:code[:quantity]]")
	}
	m, err := manifest.Parse([]string{arg})
	if err != nil {
		return err
	}

	e := m.Items[0]
	act := s.ctrl.OnItemActivated(e.Name, strings.TrimSpace(e.Category))
	if !act.Selected {
		fmt.Fprintf(s.out, "- %s\n", act.Item.Name)
		return nil
	}

	item := act.Item
	if e.Quantity != "" {
		item, _ = s.ctrl.OnQuantityEdited(e.Name, string(e.Quantity))
	}
	fmt.Fprintf(s.out, "+ %s\n", report.FormatItem(item, s.opts.Labels))
	return nil
}

// quantity sets the quantity of a selected item. The last word is the value.
func (s *shell) quantity(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		return errors.New("usage: qty <name> <quantity>")
	}
	name := strings.Join(fields[:len(fields)-1], " ")
	item, ok := s.ctrl.OnQuantityEdited(name, fields[len(fields)-1])
	if !ok {
		fmt.Fprintf(s.out, "%s is not selected\n", name)
		return nil
	}
	fmt.Fprintf(s.out, "= %s\n", report.FormatItem(item, s.opts.Labels))
	return nil
}

// remove deletes an item from the selection.
func (s *shell) remove(name string) error {
	if name == "" {
		return errors.New("usage: rm <name>")
	}
	if !s.ctrl.OnRemove(name) {
		fmt.Fprintf(s.out, "%s is not selected\n", name)
		return nil
	}
	fmt.Fprintf(s.out, "- %s\n", name)
	return nil
}

// show prints the breakdown and the summary line.
func (s *shell) show() error {
	m := s.ctrl.GetRenderModel()
	w := report.NewSimpleWriter(s.out, report.WithCurrency(s.cfg.Currency))
	if _, err := w.Write(m); err != nil {
		return err
	}
	if !m.IsEmpty() {
		fmt.Fprintf(s.out, "\n%s\n", s.summary())
	}
	return nil
}

// summary returns the one-line summary of the selection.
func (s *shell) summary() string {
	return s.ctrl.GetSummaryText(s.opts)
}

// copySummary copies the summary line and archives it when enabled.
func (s *shell) copySummary() error {
	text := s.summary()
	if err := s.copy(text); err != nil {
		return err
	}
	if s.cfg.Archive && text != "" {
		return s.archive(archive.NewSummaryEntry("shell", text, s.ctrl.GetRenderModel()))
	}
	return nil
}
