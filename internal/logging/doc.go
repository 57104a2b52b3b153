// Package logging provides concrete implementations of the codecleaner.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted diagnostics to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// Per-file outcome lines are not log messages; they are written to stdout by
// the reporter so they can be piped independently of diagnostics.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
