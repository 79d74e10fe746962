// Package pipeline renders selection manifests.
//
// A Job moves through a sequence of Steps: the manifest is loaded, replayed
// into a fresh session controller, projected into a render model and
// formatted as a summary line. The BatchProcessor runs one pipeline per
// manifest concurrently with errgroup, bounded by a concurrency limit, and
// returns jobs in input order.
//
// Each job owns its own controller, so concurrent jobs share no ledger.
package pipeline
