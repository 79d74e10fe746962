package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/config"
)

//go:embed templates/contraband.yaml
var configTemplate embed.FS

// templatePath is the template location inside configTemplate.
const templatePath = "templates/contraband.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a contraband configuration file",
		Long: `Initialize creates a new .contraband configuration file in the current directory.

The generated file documents every setting:
- Summary separator, sort order and toggle policy
- Category label overrides and the item catalog
- Briefing title, boilerplate notes and reference timezone
- Clipboard and archive defaults

Examples:
  # Create .contraband in current directory
  contraband init

  # Create config file at a specific path
  contraband init -o ~/.config/contraband/config.yaml

  # Force overwrite existing file
  contraband init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - Category labels and the item catalog")
	fmt.Fprintln(out, "  - Briefing title, notes and timezone")
	fmt.Fprintln(out, "  - Clipboard and archive behaviour")

	return nil
}
