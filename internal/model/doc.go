// Package model defines the core data structures of the contraband ledger.
//
// This package contains the following main types:
//   - Category: the closed set of contraband classes with their fine rates
//   - Item: one selected entity with its quantity and fixed fine rate
//   - Ledger: the insertion-ordered selection state
//   - RenderModel: a read-only projection of a Ledger for display
//   - BriefingForm: the input of the briefing report
//
// Everything here is pure state with no I/O. The report package turns these
// values into text, and the session package owns a Ledger on behalf of a UI.
package model
