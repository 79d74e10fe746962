package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/contraband/internal/model"
)

// emptyStateMessage is printed when nothing is selected.
const emptyStateMessage = "No items selected"

// ruleWidth is the width of section separators.
const ruleWidth = 60

// SimpleWriter outputs the render model as plain terminal text: one section
// per non-empty category with its items and subtotal, then the grand total.
type SimpleWriter struct {
	baseWriter

	// currency is printed before every fine amount.
	currency string

	// showRates adds the per-unit fine to each item line.
	showRates bool

	upper cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithCurrency sets the symbol printed before fine amounts.
func WithCurrency(symbol string) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.currency = symbol
	}
}

// WithRates adds the per-unit fine rate to every item line.
func WithRates(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showRates = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		currency:   "$",
		upper:      cases.Upper(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the render model in human-readable format.
func (w *SimpleWriter) Write(m model.RenderModel) (int, error) {
	var sb strings.Builder

	if m.IsEmpty() {
		sb.WriteString(emptyStateMessage)
		sb.WriteString("\n")
		return io.WriteString(w.output, sb.String())
	}

	for _, g := range m.Groups {
		w.writeGroup(&sb, g)
	}
	w.writeTotals(&sb, m)

	return io.WriteString(w.output, sb.String())
}

// writeGroup writes one category section.
func (w *SimpleWriter) writeGroup(sb *strings.Builder, g model.GroupView) {
	sb.WriteString(w.upper.String(g.Label))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")

	for _, item := range g.Items {
		line := fmt.Sprintf("  %-32s %4dx", item.Name, item.Quantity)
		if g.Category == model.CategoryUnknown && item.Code != "" {
			line += fmt.Sprintf("  (%s)", item.Code)
		}
		if w.showRates && item.FineRate > 0 {
			line += fmt.Sprintf("  @ %s", w.money(item.FineRate))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("  %-32s %s\n\n", "Subtotal", w.money(g.Subtotal)))
}

// writeTotals writes the closing summary.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, m model.RenderModel) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Items: %d  Units: %d\n", m.ItemCount, m.UnitCount))
	sb.WriteString(fmt.Sprintf("  TOTAL FINE: %s\n", w.money(m.GrandTotal)))
}

// money formats an amount with thousands separators.
func (w *SimpleWriter) money(amount int) string {
	return w.currency + humanize.Comma(int64(amount))
}
