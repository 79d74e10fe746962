package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nao1215/contraband/internal/config"
	"github.com/nao1215/contraband/internal/model"
)

// NewCategoriesCmd creates the categories command.
func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List category codes, labels and fine rates",
		Long: `Categories prints every category code with its display label and the
per-unit fine. Labels reflect the overrides in the configuration file.`,
		Args: cobra.NoArgs,
		RunE: runCategoriesCmd,
	}
}

// runCategoriesCmd executes the categories command.
func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return writeCategoryTable(cmd.OutOrStdout(), cfg)
}

// writeCategoryTable writes the code, label and fine of each known category.
func writeCategoryTable(w io.Writer, cfg *config.Config) error {
	labels := model.DefaultLabels().Merge(cfg.Labels)

	table := tablewriter.NewWriter(w)
	table.Header("Code", "Label", "Fine")
	for _, c := range model.Categories() {
		if c == model.CategoryUnknown {
			continue
		}
		fine := "-"
		if rate := c.FineRate(); rate > 0 {
			fine = cfg.Currency + humanize.Comma(int64(rate))
		}
		if err := table.Append([]string{c.Code(), labels[c], fine}); err != nil {
			return err
		}
	}
	return table.Render()
}
