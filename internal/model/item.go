package model

import (
	"strconv"
	"strings"
	"unicode"
)

// Quantity bounds applied after every mutation.
const (
	MinQuantity = 1
	MaxQuantity = 999
)

// Item is one selected entity in the ledger.
type Item struct {
	// Name identifies the item. It is the ledger key.
	Name string `json:"name" yaml:"name"`

	// Category is the parsed classification.
	Category Category `json:"category" yaml:"category"`

	// Code is the category code exactly as supplied by the caller.
	// It is used as the display label when no label exists for Category.
	Code string `json:"code" yaml:"code"`

	// FineRate is the per-unit fine, fixed when the item is first inserted.
	FineRate int `json:"fine_rate" yaml:"fine_rate"`

	// Quantity is always within [MinQuantity, MaxQuantity].
	Quantity int `json:"quantity" yaml:"quantity"`
}

// newItem builds an Item with quantity 1 for the given category code.
func newItem(name, code string) Item {
	category, _ := ParseCategory(code)
	return Item{
		Name:     name,
		Category: category,
		Code:     strings.TrimSpace(code),
		FineRate: category.FineRate(),
		Quantity: MinQuantity,
	}
}

// Fine returns FineRate multiplied by Quantity.
func (i Item) Fine() int {
	return i.FineRate * i.Quantity
}

// ClampQuantity limits n to [MinQuantity, MaxQuantity].
func ClampQuantity(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}

// ParseQuantity converts user input into a valid quantity. It never fails.
//
// The leading integer of raw is used: surrounding whitespace and an optional
// sign are accepted and anything after the digits is ignored, so "12abc"
// is 12 and "3.7" is 3. Input without a leading integer, and zero, become
// MinQuantity. The result is clamped to [MinQuantity, MaxQuantity].
func ParseQuantity(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return MinQuantity
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow reaches here: the digits were validated above.
		if negative {
			return MinQuantity
		}
		return MaxQuantity
	}
	if negative {
		n = -n
	}
	if n == 0 {
		return MinQuantity
	}
	return ClampQuantity(n)
}
