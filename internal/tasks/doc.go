// Package tasks orchestrates multi-request operations against the movie database with real-time progress reporting.
//
// # Core Operations
//
//  1. [LookupEngine.Search] : title search followed by detail lookups
//     - Issues one search-by-title request
//     - Fetches every match's detail record concurrently on a bounded worker set, paced by a shared limiter
//     - Joins details in search order and normalizes them into [models.Movie]
//     - Fails as a whole when any detail lookup fails
//
//  2. [LookupEngine.Lookup] : single detail lookup by identifier
//
//  3. [WriteExport] : writes a watchlist to a file in one of the [formatter] export formats
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
