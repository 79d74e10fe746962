package model

// unknownLabel is shown for items whose category code was empty.
const unknownLabel = "Unknown"

// Labels maps categories to display strings.
type Labels map[Category]string

// DefaultLabels returns the built-in label table.
func DefaultLabels() Labels {
	labels := make(Labels, len(declaredOrder))
	for _, c := range declaredOrder {
		if l := c.DefaultLabel(); l != "" {
			labels[c] = l
		}
	}
	return labels
}

// Merge returns a copy of l with every non-empty entry of overrides applied.
func (l Labels) Merge(overrides Labels) Labels {
	out := make(Labels, len(l)+len(overrides))
	for c, s := range l {
		out[c] = s
	}
	for c, s := range overrides {
		if s != "" {
			out[c] = s
		}
	}
	return out
}

// For returns the display label of item. When the category has no label,
// the raw category code the item was created with is returned instead.
func (l Labels) For(item Item) string {
	if s, ok := l[item.Category]; ok && s != "" && item.Category != CategoryUnknown {
		return s
	}
	if item.Code != "" {
		return item.Code
	}
	if s, ok := l[CategoryUnknown]; ok && s != "" {
		return s
	}
	return unknownLabel
}

// GroupView is a non-empty category group prepared for display.
type GroupView struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Items    []Item   `json:"items"`
	Subtotal int      `json:"subtotal"`
}

// RenderModel is everything a UI needs to draw the current selection.
// It is derived from a Ledger and never written back.
type RenderModel struct {
	Groups     []GroupView `json:"groups"`
	GrandTotal int         `json:"grand_total"`
	ItemCount  int         `json:"item_count"`
	UnitCount  int         `json:"unit_count"`
}

// IsEmpty reports whether nothing is selected.
func (m RenderModel) IsEmpty() bool {
	return m.ItemCount == 0
}

// Project builds the RenderModel of ledger using labels for group headings.
// Empty categories are omitted.
func Project(ledger *Ledger, labels Labels) RenderModel {
	m := RenderModel{Groups: []GroupView{}}

	for _, g := range ledger.GroupByCategory() {
		if len(g.Items) == 0 {
			continue
		}

		view := GroupView{
			Category: g.Category,
			Label:    groupLabel(g, labels),
			Items:    g.Items,
			Subtotal: ledger.TotalFine(g.Category),
		}
		for _, item := range g.Items {
			m.UnitCount += item.Quantity
		}
		m.ItemCount += len(g.Items)
		m.Groups = append(m.Groups, view)
	}

	m.GrandTotal = ledger.GrandTotal()
	return m
}

// groupLabel picks the heading of a group. Unknown items may carry
// different raw codes, so their group uses the shared unknown label.
func groupLabel(g CategoryGroup, labels Labels) string {
	if g.Category == CategoryUnknown {
		if s, ok := labels[CategoryUnknown]; ok && s != "" {
			return s
		}
		return unknownLabel
	}
	return labels.For(g.Items[0])
}
