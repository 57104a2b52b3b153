// Package report renders run outcomes.
//
// ConsoleReporter prints one outcome line per file as soon as it completes,
// then a blank line and the summary. Document and WriteFile produce the
// machine-readable run report requested with --report, as YAML or JSON
// depending on the file extension.
package report
