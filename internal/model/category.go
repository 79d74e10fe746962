package model

import "strings"

// Category is the classification of a contraband item.
// The fine rate and the default display label are derived from it.
//
// Categories form a closed set. Lookups are switch statements over the
// constants so that adding a category without a fine rate or label is
// caught by the exhaustive tests in category_test.go.
type Category int

const (
	// CategoryUnknown holds items whose category code is not recognised.
	// It carries no fine and is listed after every known category.
	CategoryUnknown Category = iota

	// CategoryA is the most serious contraband class.
	CategoryA

	// CategoryB is contraband such as moonshine or stolen goods.
	CategoryB

	// CategoryC is minor contraband.
	CategoryC

	// CategoryD is the lowest fined contraband class.
	CategoryD

	// CategoryWeapon marks weapons. They are logged but not fined.
	CategoryWeapon

	// CategoryNonContraband marks items that are recorded for information only.
	CategoryNonContraband
)

// Fine rates per unit, in whole currency units.
const (
	FineClassA = 1000
	FineClassB = 100
	FineClassC = 50
	FineClassD = 25
)

// declaredOrder is the iteration order for grouping and rendering.
var declaredOrder = []Category{
	CategoryA,
	CategoryB,
	CategoryC,
	CategoryD,
	CategoryWeapon,
	CategoryNonContraband,
	CategoryUnknown,
}

// Categories returns every category in declared display order.
// CategoryUnknown is always last.
func Categories() []Category {
	out := make([]Category, len(declaredOrder))
	copy(out, declaredOrder)
	return out
}

// ParseCategory maps a category code to a Category.
// Codes are case-insensitive; the long names "weapon" and "non-contraband"
// are accepted as well. The boolean is false for unrecognised codes, in
// which case CategoryUnknown is returned.
func ParseCategory(code string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "a":
		return CategoryA, true
	case "b":
		return CategoryB, true
	case "c":
		return CategoryC, true
	case "d":
		return CategoryD, true
	case "w", "weapon":
		return CategoryWeapon, true
	case "n", "non-contraband", "noncontraband":
		return CategoryNonContraband, true
	default:
		return CategoryUnknown, false
	}
}

// Code returns the canonical short code of the category.
// CategoryUnknown has no canonical code and returns an empty string.
func (c Category) Code() string {
	switch c {
	case CategoryA:
		return "A"
	case CategoryB:
		return "B"
	case CategoryC:
		return "C"
	case CategoryD:
		return "D"
	case CategoryWeapon:
		return "W"
	case CategoryNonContraband:
		return "N"
	default:
		return ""
	}
}

// String returns a human-readable name of the category.
func (c Category) String() string {
	switch c {
	case CategoryA:
		return "CLASS_A"
	case CategoryB:
		return "CLASS_B"
	case CategoryC:
		return "CLASS_C"
	case CategoryD:
		return "CLASS_D"
	case CategoryWeapon:
		return "WEAPON"
	case CategoryNonContraband:
		return "NON_CONTRABAND"
	default:
		return "UNKNOWN"
	}
}

// FineRate returns the per-unit fine for the category.
// Categories outside the fine table are informational and return 0.
func (c Category) FineRate() int {
	switch c {
	case CategoryA:
		return FineClassA
	case CategoryB:
		return FineClassB
	case CategoryC:
		return FineClassC
	case CategoryD:
		return FineClassD
	default:
		return 0
	}
}

// DefaultLabel returns the display label used when no override is configured.
func (c Category) DefaultLabel() string {
	switch c {
	case CategoryA:
		return "Class A Contraband"
	case CategoryB:
		return "Class B Contraband"
	case CategoryC:
		return "Class C Contraband"
	case CategoryD:
		return "Class D Contraband"
	case CategoryWeapon:
		return "Weapon"
	case CategoryNonContraband:
		return "Non-Contraband"
	default:
		return ""
	}
}

// MarshalText encodes the category as its short code so that JSON and YAML
// output stay readable. CategoryUnknown encodes as "?".
func (c Category) MarshalText() ([]byte, error) {
	if code := c.Code(); code != "" {
		return []byte(code), nil
	}
	return []byte("?"), nil
}

// UnmarshalText decodes a short code. Unrecognised codes decode to
// CategoryUnknown without error.
func (c *Category) UnmarshalText(text []byte) error {
	*c, _ = ParseCategory(string(text))
	return nil
}
