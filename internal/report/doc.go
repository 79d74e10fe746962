// Package report turns ledger snapshots and briefing forms into text.
//
// The package has two halves:
//   - Formatter functions (FormatSelection, FormatBriefing) produce the
//     single strings that are pasted into chat and reporting tools.
//   - Writers (SimpleWriter, JSONWriter, MarkdownWriter) render a
//     model.RenderModel for terminals, tools and documents.
//
// Formatting is pure: no function here performs I/O except writing to the
// io.Writer a Writer was constructed with.
package report
