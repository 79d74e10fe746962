// Package config provides configuration structures and utilities for
// contraband. It defines formatting preferences for summaries and briefings,
// the toggle policy of the selection ledger, the item catalog, and where the
// optional export archive lives.
package config
