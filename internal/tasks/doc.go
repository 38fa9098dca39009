// Package tasks runs exports across every user's film list with real-time progress reporting.
//
// # Core Operations
//
//  1. [Exporter.Snapshot] : Read one user's full list into a [models.ListExport]
//
//  2. [Exporter.BulkExport] : Export every given user's list concurrently
//     - Fetches lists one at a time under a [rate.Limiter]
//     - Hands each snapshot to a bounded pool of writer goroutines
//     - Writes one file per user via the formatter package
//     - Writes export_manifest.json summarizing successes and failures
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters and a message.
// Updates use select with default so a slow reader never stalls an export.
package tasks
