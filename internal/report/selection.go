package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nao1215/contraband/internal/model"
)

// DefaultSeparator joins items in a selection summary.
const DefaultSeparator = ", "

// SortKey selects the item order of a selection summary.
type SortKey int

const (
	// SortFineDescending orders items by fine rate, highest first.
	// Items with equal rates keep their insertion order.
	SortFineDescending SortKey = iota

	// SortInsertion keeps the order in which items were first selected.
	SortInsertion
)

// ParseSortKey converts a configuration value into a SortKey.
// An empty string selects SortFineDescending.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fine-desc", "finedescending", "fine":
		return SortFineDescending, nil
	case "insertion", "insert":
		return SortInsertion, nil
	default:
		return SortFineDescending, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// String returns the configuration name of the sort key.
func (k SortKey) String() string {
	if k == SortInsertion {
		return "insertion"
	}
	return "fine-desc"
}

// SelectionOptions controls FormatSelection.
type SelectionOptions struct {
	// Separator is placed between items. It is used verbatim.
	Separator string

	// Sort selects the item order.
	Sort SortKey

	// Labels maps categories to display strings. Nil means model.DefaultLabels.
	Labels model.Labels
}

// DefaultSelectionOptions returns ", "-separated, fine-descending output
// with the built-in labels.
func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{
		Separator: DefaultSeparator,
		Sort:      SortFineDescending,
		Labels:    model.DefaultLabels(),
	}
}

// FormatSelection renders ledger as a single line:
//
//	<name> - <quantity>x - <label><sep><name> - <quantity>x - <label>...
//
// An empty ledger renders as an empty string.
func FormatSelection(ledger *model.Ledger, opts SelectionOptions) string {
	items := ledger.Items()
	if len(items) == 0 {
		return ""
	}

	labels := opts.Labels
	if labels == nil {
		labels = model.DefaultLabels()
	}

	if opts.Sort == SortFineDescending {
		slices.SortStableFunc(items, func(a, b model.Item) int {
			return b.FineRate - a.FineRate
		})
	}

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = FormatItem(item, labels)
	}
	return strings.Join(parts, opts.Separator)
}

// FormatItem renders one entry of a selection summary.
func FormatItem(item model.Item, labels model.Labels) string {
	return fmt.Sprintf("%s - %dx - %s", item.Name, item.Quantity, labels.For(item))
}
