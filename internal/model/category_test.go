package model

import "testing"

// TestParseCategory tests category code parsing.
func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     string
		expected Category
		known    bool
	}{
		{"A", CategoryA, true},
		{"b", CategoryB, true},
		{" C ", CategoryC, true},
		{"D", CategoryD, true},
		{"W", CategoryWeapon, true},
		{"weapon", CategoryWeapon, true},
		{"N", CategoryNonContraband, true},
		{"non-contraband", CategoryNonContraband, true},
		{"Z", CategoryUnknown, false},
		{"", CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseCategory(tt.code)
			if got != tt.expected {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.code, got, tt.expected)
			}
			if ok != tt.known {
				t.Errorf("ParseCategory(%q) known = %v, want %v", tt.code, ok, tt.known)
			}
		})
	}
}

// TestCategoryFineRate tests the fine table.
func TestCategoryFineRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		expected int
	}{
		{CategoryA, 1000},
		{CategoryB, 100},
		{CategoryC, 50},
		{CategoryD, 25},
		{CategoryWeapon, 0},
		{CategoryNonContraband, 0},
		{CategoryUnknown, 0},
		{Category(99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.category.FineRate(); got != tt.expected {
				t.Errorf("FineRate() = %d, want %d", got, tt.expected)
			}
		})
	}
}

// TestCategoriesAreComplete makes sure every known category has a code,
// a label and a round trip through ParseCategory.
func TestCategoriesAreComplete(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		if c == CategoryUnknown {
			continue
		}
		if c.Code() == "" {
			t.Errorf("%v has no code", c)
		}
		if c.DefaultLabel() == "" {
			t.Errorf("%v has no default label", c)
		}
		parsed, ok := ParseCategory(c.Code())
		if !ok || parsed != c {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v, true", c.Code(), parsed, ok, c)
		}
	}
}

// TestCategoriesOrder tests the declared order.
func TestCategoriesOrder(t *testing.T) {
	t.Parallel()

	got := Categories()
	if got[0] != CategoryA {
		t.Errorf("expected CategoryA first, got %v", got[0])
	}
	if got[len(got)-1] != CategoryUnknown {
		t.Errorf("expected CategoryUnknown last, got %v", got[len(got)-1])
	}

	// The returned slice must be a copy.
	got[0] = CategoryD
	if Categories()[0] != CategoryA {
		t.Error("Categories() exposed internal state")
	}
}

// TestCategoryText tests text marshalling used by JSON output.
func TestCategoryText(t *testing.T) {
	t.Parallel()

	t.Run("known category marshals to code", func(t *testing.T) {
		t.Parallel()
		b, err := CategoryB.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != "B" {
			t.Errorf("got %q, want %q", b, "B")
		}
	})

	t.Run("unknown category marshals to question mark", func(t *testing.T) {
		t.Parallel()
		b, _ := CategoryUnknown.MarshalText()
		if string(b) != "?" {
			t.Errorf("got %q, want %q", b, "?")
		}
	})

	t.Run("unmarshal never fails", func(t *testing.T) {
		t.Parallel()
		var c Category
		if err := c.UnmarshalText([]byte("nope")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != CategoryUnknown {
			t.Errorf("got %v, want CategoryUnknown", c)
		}
	})
}
