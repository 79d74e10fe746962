// Package main provides the entry point for the contraband CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for contraband.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contraband",
		Short: "Contraband ledger and briefing report formatter",
		Long: `contraband records seized items by contraband class, totals the fines
owed, and formats the selection and incident briefings as plain text for
pasting into chat or reporting tools.

Settings are read from .contraband in the current directory, then
$XDG_CONFIG_HOME/contraband/config.yaml, then ~/.contraband.
Run 'contraband init' to create a commented configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("config", "",
		"Path to configuration file (default: search standard locations)")

	// Add subcommands
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewBriefingCmd())
	cmd.AddCommand(NewShellCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCategoriesCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
