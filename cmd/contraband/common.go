package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/archive"
	"github.com/nao1215/contraband/internal/clipboard"
	"github.com/nao1215/contraband/internal/config"
	"github.com/nao1215/contraband/internal/log"
	"github.com/nao1215/contraband/internal/session"
)

// now is the clock used for briefing defaults.
var now = time.Now

// getVerboseFlag gets the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag gets the config file path from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfig loads the configuration file selected by --config and applies
// the verbose flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// setupLogger creates a redacting logger on the command's error stream and
// installs it as the default logger.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)
	return logger
}

// controllerFactory returns a constructor for session controllers that
// follow cfg's toggle policy, labels and catalog.
func controllerFactory(cfg *config.Config, logger *slog.Logger) (func() *session.Controller, error) {
	policy, err := cfg.TogglePolicy()
	if err != nil {
		return nil, err
	}
	return func() *session.Controller {
		return session.New(policy,
			session.WithLogger(logger),
			session.WithLabels(cfg.Labels),
			session.WithCatalog(cfg.Catalog),
		)
	}, nil
}

// openOutput returns the file at path, creating parent directories, or
// fallback when path is empty. The returned close function is never nil.
func openOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Briefings carry suspect names; keep the file private to the owner.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newDeliverer creates the clipboard deliverer for cmd. OSC 52 is only
// attempted when the error stream is a terminal.
var newDeliverer = func(cmd *cobra.Command, logger *slog.Logger) *clipboard.Deliverer {
	opts := []clipboard.Option{clipboard.WithLogger(logger)}
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && isTerminal(f) {
		opts = append(opts, clipboard.WithTerminal(f))
	}
	return clipboard.New(cmd.OutOrStdout(), opts...)
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// copyText delivers text to the clipboard and prints the outcome.
func copyText(cmd *cobra.Command, logger *slog.Logger, text string) error {
	method, err := newDeliverer(cmd, logger).Deliver(text)
	if err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}
	printNotice(cmd.OutOrStdout(), method)
	return nil
}

// printNotice prints the delivery notice, highlighted when colour is enabled.
func printNotice(w io.Writer, method clipboard.Method) {
	c := color.New(color.FgGreen)
	switch method {
	case clipboard.MethodPrinted:
		c = color.New(color.FgYellow)
	case clipboard.MethodNone:
		c = color.New(color.Faint)
	}
	_, _ = c.Fprintln(w, method.Notice())
}

// archiveEntries records entries in the export archive under cfg.DBDir.
// Entries with empty text are skipped.
func archiveEntries(ctx context.Context, cfg *config.Config, logger *slog.Logger, entries ...archive.Entry) error {
	var pending []archive.Entry
	for _, e := range entries {
		if e.Text != "" {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	a, err := archive.Open(cfg.DBDir, archive.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	for _, e := range pending {
		id, err := a.Save(ctx, e)
		if err != nil {
			return err
		}
		logger.Debug("export archived", "id", id, "kind", e.Kind, "path", a.Path())
	}
	return nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
