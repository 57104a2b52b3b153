package codecleaner

import (
	"errors"
	"fmt"
	"time"
)

// RunConfig contains all parameters needed for a cleaning run.
type RunConfig struct {
	// Root is the directory traversed recursively
	Root string

	// Extensions is the allow-list of file extensions (case-insensitive)
	Extensions []string

	// ExcludedDirs are path segment names that reject a file when any segment matches
	ExcludedDirs []string

	// ExcludePatterns are doublestar globs matched against root-relative, slash-separated paths
	ExcludePatterns []string

	// Workers is the size of the worker pool
	Workers int

	// Backup copies each original to <path>.bak before overwriting
	Backup bool

	// Validate syntax-checks the cleaned content before writing
	Validate bool

	// ValidateTimeout bounds each external validator invocation. Zero means no bound.
	ValidateTimeout time.Duration

	// DryRun computes outcomes without writing any file
	DryRun bool

	// StrictEscapes closes string literals using backslash-run parity instead of
	// the single-character look-back
	StrictEscapes bool

	// Force skips the interactive approval for in-place rewrites without backups
	Force bool

	// Verbose enables detailed logging
	Verbose bool
}

// Check reports whether the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Check() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("Root is required: %w", ErrInvalidConfig))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, ErrInvalidConfig))
	}

	if len(c.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("at least one extension is required: %w", ErrInvalidConfig))
	}

	if c.ValidateTimeout < 0 {
		errs = append(errs, fmt.Errorf("validate timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// NeedsApproval reports whether the run rewrites originals in place with no backup.
func (c *RunConfig) NeedsApproval() bool {
	return !c.DryRun && !c.Backup && !c.Force
}

// Status is the outcome category of one processed file.
type Status int

const (
	StatusOK            Status = iota // Cleaned content written
	StatusDryRun                      // Cleaned content computed, nothing written
	StatusInvalidSyntax               // Cleaned content failed validation, original untouched
	StatusError                       // Read, validation, backup or write failure
)

// String returns the machine-friendly name used in reports.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDryRun:
		return "dry_run"
	case StatusInvalidSyntax:
		return "skipped_invalid_syntax"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Tag returns the bracketed label printed in front of a file path.
func (s Status) Tag() string {
	switch s {
	case StatusOK:
		return "[OK]"
	case StatusDryRun:
		return "[DRY RUN]"
	case StatusInvalidSyntax:
		return "[SKIPPED - INVALID SYNTAX]"
	case StatusError:
		return "[ERROR]"
	default:
		return fmt.Sprintf("[%s]", s.String())
	}
}

// SourceFile is a file selected for cleaning.
type SourceFile struct {
	Path         string   // Path as reported in outcome lines (root joined with RelativePath)
	RelativePath string   // Slash-separated path relative to the root
	Extension    string   // Lowercased extension including the dot
	Language     Language // Comment syntax selected from Extension
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	File   SourceFile
	Status Status

	// Err carries the detail for StatusError results and ErrInvalidSyntax for
	// StatusInvalidSyntax results
	Err error

	BytesBefore    int
	BytesAfter     int
	ChecksumBefore string
	ChecksumAfter  string

	// BackupPath is set when a backup was written
	BackupPath string

	Duration time.Duration
}

// Message renders the outcome line for the result.
func (r FileResult) Message() string {
	if r.Status == StatusError {
		detail := "unknown error"
		if r.Err != nil {
			detail = r.Err.Error()
		}
		return fmt.Sprintf("%s %s - %s", r.Status.Tag(), r.File.Path, detail)
	}
	return fmt.Sprintf("%s %s", r.Status.Tag(), r.File.Path)
}

// Changed reports whether cleaning altered the file content.
func (r FileResult) Changed() bool {
	return r.ChecksumBefore != "" && r.ChecksumBefore != r.ChecksumAfter
}

// RunSummary collects the results of a completed run.
// Results are in completion order.
type RunSummary struct {
	Root       string
	Results    []FileResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Processed returns the number of files dispatched and completed.
func (s *RunSummary) Processed() int {
	return len(s.Results)
}

// Count returns the number of results with the given status.
func (s *RunSummary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// SummaryLine renders the final line printed after all results.
func (s *RunSummary) SummaryLine() string {
	return fmt.Sprintf("Done. %d file(s) processed.", s.Processed())
}
