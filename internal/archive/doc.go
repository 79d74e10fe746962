// Package archive keeps an append-only SQLite log of exported texts.
//
// Every summary or briefing that leaves the program through the clipboard
// can be recorded here with its totals, so a user can look up what was
// reported earlier. The archive is opt-in and write-mostly: it is never used
// to restore a selection, and a new session always starts with an empty
// ledger.
//
// The database is a single file opened through modernc.org/sqlite, a
// CGO-free driver, with WAL enabled and a single writer connection.
package archive
