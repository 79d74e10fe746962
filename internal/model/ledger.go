package model

// Ledger is the in-memory collection of selected items, keyed by name and
// ordered by first insertion.
//
// A Ledger is owned by a single session and is not safe for concurrent use.
// Every accessor returns copies, so callers can never mutate ledger state
// except through the methods below.
type Ledger struct {
	policy TogglePolicy
	items  []Item
	index  map[string]int
}

// CategoryGroup is the set of items that share a category.
type CategoryGroup struct {
	Category Category
	Items    []Item
}

// NewLedger creates an empty ledger that activates items with the given policy.
func NewLedger(policy TogglePolicy) *Ledger {
	return &Ledger{
		policy: policy,
		index:  make(map[string]int),
	}
}

// Policy returns the configured toggle policy.
func (l *Ledger) Policy() TogglePolicy {
	return l.policy
}

// Activate applies the configured policy to name.
// The boolean reports whether the item is selected after the call. Under
// PolicyToggle a second activation removes the item and returns the removed
// entry with false.
func (l *Ledger) Activate(name, code string) (Item, bool) {
	if l.policy == PolicyToggle {
		if i, ok := l.index[name]; ok {
			removed := l.items[i]
			l.Remove(name)
			return removed, false
		}
	}
	return l.ToggleOrStack(name, code), true
}

// ToggleOrStack inserts name with quantity 1, or increments its quantity if
// it is already present. The quantity never exceeds MaxQuantity, and the
// category of an existing entry is left untouched.
func (l *Ledger) ToggleOrStack(name, code string) Item {
	if i, ok := l.index[name]; ok {
		l.items[i].Quantity = ClampQuantity(l.items[i].Quantity + 1)
		return l.items[i]
	}

	item := newItem(name, code)
	l.index[name] = len(l.items)
	l.items = append(l.items, item)
	return item
}

// Remove deletes name from the ledger. It reports whether an entry existed.
func (l *Ledger) Remove(name string) bool {
	i, ok := l.index[name]
	if !ok {
		return false
	}

	l.items = append(l.items[:i], l.items[i+1:]...)
	delete(l.index, name)
	for j := i; j < len(l.items); j++ {
		l.index[l.items[j].Name] = j
	}
	return true
}

// Clear removes every item.
func (l *Ledger) Clear() {
	l.items = nil
	l.index = make(map[string]int)
}

// SetQuantity sets the quantity of name from raw user input.
// See ParseQuantity for the normalisation rules. It is a no-op that returns
// false when name is not in the ledger.
func (l *Ledger) SetQuantity(name, raw string) (Item, bool) {
	i, ok := l.index[name]
	if !ok {
		return Item{}, false
	}
	l.items[i].Quantity = ParseQuantity(raw)
	return l.items[i], true
}

// Get returns the entry for name.
func (l *Ledger) Get(name string) (Item, bool) {
	i, ok := l.index[name]
	if !ok {
		return Item{}, false
	}
	return l.items[i], true
}

// Has reports whether name is selected.
func (l *Ledger) Has(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Len returns the number of distinct items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns a snapshot of all items in insertion order.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// GroupByCategory returns one group per category in declared order.
// Empty categories are included with no items; renderers skip them.
func (l *Ledger) GroupByCategory() []CategoryGroup {
	groups := make([]CategoryGroup, len(declaredOrder))
	pos := make(map[Category]int, len(declaredOrder))
	for i, c := range declaredOrder {
		groups[i] = CategoryGroup{Category: c}
		pos[c] = i
	}

	for _, item := range l.items {
		g := pos[item.Category]
		groups[g].Items = append(groups[g].Items, item)
	}
	return groups
}

// TotalFine returns the sum of FineRate * Quantity over items in category.
func (l *Ledger) TotalFine(category Category) int {
	total := 0
	for _, item := range l.items {
		if item.Category == category {
			total += item.Fine()
		}
	}
	return total
}

// GrandTotal returns the sum of TotalFine over all categories.
func (l *Ledger) GrandTotal() int {
	total := 0
	for _, c := range declaredOrder {
		total += l.TotalFine(c)
	}
	return total
}
