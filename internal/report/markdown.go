package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/contraband/internal/model"
)

// MarkdownWriter outputs the render model as GitHub Flavored Markdown:
// a table per category, a totals table, a pie chart of fines per category
// and an alert when Class A contraband is present.
type MarkdownWriter struct {
	baseWriter

	// title is the H1 heading of the document.
	title string
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, title string) *MarkdownWriter {
	if title == "" {
		title = "Contraband Ledger"
	}
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      title,
	}
}

// Write outputs the render model in Markdown format.
func (w *MarkdownWriter) Write(m model.RenderModel) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(w.title)
	md.PlainText("")

	if m.IsEmpty() {
		md.PlainText(emptyStateMessage + ".")
		return len(md.String()), md.Build()
	}

	w.writeAlert(md, m)
	w.writeGroups(md, m)
	w.writeTotals(md, m)

	return len(md.String()), md.Build()
}

// writeAlert highlights the most serious contraband class present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, m model.RenderModel) {
	classA := 0
	fined := 0
	for _, g := range m.Groups {
		if g.Category == model.CategoryA {
			classA += len(g.Items)
		}
		if g.Subtotal > 0 {
			fined += len(g.Items)
		}
	}

	switch {
	case classA > 0:
		md.Cautionf("%d Class A item(s) seized.", classA)
	case fined > 0:
		md.Note(fmt.Sprintf("%d fined item(s) recorded.", fined))
	default:
		md.Tip("No fined contraband recorded.")
	}
	md.PlainText("")
}

// writeGroups writes one table per category.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, m model.RenderModel) {
	for _, g := range m.Groups {
		md.H2(g.Label)
		md.PlainText("")

		rows := make([][]string, 0, len(g.Items)+1)
		for _, item := range g.Items {
			rows = append(rows, []string{
				item.Name,
				strconv.Itoa(item.Quantity),
				money(item.FineRate),
				money(item.Fine()),
			})
		}
		rows = append(rows, []string{"**Subtotal**", "", "", "**" + money(g.Subtotal) + "**"})

		md.Table(markdown.TableSet{
			Header: []string{"Item", "Quantity", "Rate", "Fine"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeTotals writes the summary table and the fine distribution chart.
func (w *MarkdownWriter) writeTotals(md *markdown.Markdown, m model.RenderModel) {
	md.H2("Totals")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Items", strconv.Itoa(m.ItemCount)},
			{"Units", strconv.Itoa(m.UnitCount)},
			{"**Total Fine**", "**" + money(m.GrandTotal) + "**"},
		},
	})
	md.PlainText("")

	if m.GrandTotal > 0 {
		w.writePieChart(md, m)
	}
}

// writePieChart writes a mermaid pie chart of fines per category.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, m model.RenderModel) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Fines by Category"),
		piechart.WithShowData(true),
	)

	for _, g := range m.Groups {
		if g.Subtotal > 0 {
			chart.LabelAndIntValue(g.Label, uint64(g.Subtotal))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// money formats an amount in dollars with thousands separators.
func money(amount int) string {
	return "$" + humanize.Comma(int64(amount))
}
