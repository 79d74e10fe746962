package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestLabelsFor tests label resolution and fallbacks.
func TestLabelsFor(t *testing.T) {
	t.Parallel()

	labels := DefaultLabels()

	tests := []struct {
		name     string
		item     Item
		labels   Labels
		expected string
	}{
		{
			name:     "known category uses default label",
			item:     newItem("Moonshine", "B"),
			labels:   labels,
			expected: "Class B Contraband",
		},
		{
			name:     "weapon label",
			item:     newItem("Revolver", "W"),
			labels:   labels,
			expected: "Weapon",
		},
		{
			name:     "unknown category falls back to raw code",
			item:     newItem("Trinket", "Z"),
			labels:   labels,
			expected: "Z",
		},
		{
			name:     "missing label falls back to raw code",
			item:     newItem("Dice", "d"),
			labels:   Labels{},
			expected: "d",
		},
		{
			name:     "empty code without label is Unknown",
			item:     newItem("Thing", ""),
			labels:   Labels{},
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.labels.For(tt.item); got != tt.expected {
				t.Errorf("For() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestLabelsMerge tests override merging.
func TestLabelsMerge(t *testing.T) {
	t.Parallel()

	base := DefaultLabels()
	merged := base.Merge(Labels{CategoryA: "Felony Goods", CategoryB: ""})

	if merged[CategoryA] != "Felony Goods" {
		t.Errorf("expected override, got %q", merged[CategoryA])
	}
	if merged[CategoryB] != "Class B Contraband" {
		t.Errorf("expected empty override to be ignored, got %q", merged[CategoryB])
	}
	if base[CategoryA] != "Class A Contraband" {
		t.Error("Merge modified the receiver")
	}
}

// TestProject tests the render model projection.
func TestProject(t *testing.T) {
	t.Parallel()

	t.Run("empty ledger", func(t *testing.T) {
		t.Parallel()

		m := Project(NewLedger(PolicyStack), DefaultLabels())
		if !m.IsEmpty() {
			t.Error("expected empty render model")
		}
		if len(m.Groups) != 0 {
			t.Errorf("expected no groups, got %d", len(m.Groups))
		}
	})

	t.Run("omits empty groups and sums totals", func(t *testing.T) {
		t.Parallel()

		l := NewLedger(PolicyStack)
		l.ToggleOrStack("Revolver", "W")
		l.ToggleOrStack("Moonshine", "B")
		l.ToggleOrStack("Moonshine", "B")
		l.ToggleOrStack("Opium", "A")

		m := Project(l, DefaultLabels())

		type groupSummary struct {
			Category Category
			Label    string
			Count    int
			Subtotal int
		}
		var got []groupSummary
		for _, g := range m.Groups {
			got = append(got, groupSummary{g.Category, g.Label, len(g.Items), g.Subtotal})
		}
		want := []groupSummary{
			{CategoryA, "Class A Contraband", 1, 1000},
			{CategoryB, "Class B Contraband", 1, 200},
			{CategoryWeapon, "Weapon", 1, 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("groups mismatch (-want +got):\n%s", diff)
		}

		if m.GrandTotal != 1200 {
			t.Errorf("expected grand total 1200, got %d", m.GrandTotal)
		}
		if m.ItemCount != 3 {
			t.Errorf("expected 3 items, got %d", m.ItemCount)
		}
		if m.UnitCount != 4 {
			t.Errorf("expected 4 units, got %d", m.UnitCount)
		}
	})

	t.Run("unknown group uses shared label", func(t *testing.T) {
		t.Parallel()

		l := NewLedger(PolicyStack)
		l.ToggleOrStack("Trinket", "Z")
		l.ToggleOrStack("Bauble", "Q")

		m := Project(l, DefaultLabels())
		if len(m.Groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(m.Groups))
		}
		if m.Groups[0].Label != "Unknown" {
			t.Errorf("expected label Unknown, got %q", m.Groups[0].Label)
		}
	})
}
