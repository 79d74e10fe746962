// Package session implements the controller a user interface drives.
//
// A Controller owns exactly one selection ledger and exposes the handful of
// event handlers a front-end needs: item activation, quantity edits,
// removal, clearing, and read-only projections for display and clipboard
// text. The front-end never holds selection state of its own; it asks the
// controller through IsSelected and GetRenderModel.
package session
