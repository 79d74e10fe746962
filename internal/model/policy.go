package model

import "strings"

// TogglePolicy decides what activating an already selected item does.
type TogglePolicy int

const (
	// PolicyStack increments the quantity of an already selected item.
	// This is the default.
	PolicyStack TogglePolicy = iota

	// PolicyToggle removes an already selected item.
	PolicyToggle
)

// ParseTogglePolicy converts a configuration value into a TogglePolicy.
// An empty string selects PolicyStack.
func ParseTogglePolicy(s string) (TogglePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stack":
		return PolicyStack, nil
	case "toggle":
		return PolicyToggle, nil
	default:
		return PolicyStack, ErrUnknownPolicy
	}
}

// String returns the configuration name of the policy.
func (p TogglePolicy) String() string {
	switch p {
	case PolicyToggle:
		return "toggle"
	default:
		return "stack"
	}
}
