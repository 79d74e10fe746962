// Package main provides the entry point for the contraband CLI.
//
// contraband keeps a ledger of seized items, totals the fines owed per
// contraband class, and renders the selection and incident briefings as
// text ready to paste into chat or reporting tools.
//
// Usage:
//
//	contraband summary Revolver:W Moonshine:B:2
//	contraband summary -f seizure.yaml
//	contraband briefing --officer "Deputy Hale" --date 2024-01-01 --time 18:00
//	contraband shell
//
// See --help for all available options.
package main

// main is the entry point for contraband.
func main() {
	Execute()
}
