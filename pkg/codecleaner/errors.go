package codecleaner

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := runner.Run(ctx, config)
//	if errors.Is(err, codecleaner.ErrPathNotFound) {
//	    // Handle a missing target directory
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPathNotFound indicates the target root path does not exist.
	// It is the only run-fatal error raised before file processing begins.
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidSyntax indicates cleaned content failed the syntax check.
	// The affected file is skipped and left untouched.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrValidatorUnavailable indicates an external syntax checker could not be started.
	ErrValidatorUnavailable = errors.New("validator unavailable")

	// ErrApprovalDenied indicates the user denied approval for an in-place rewrite.
	ErrApprovalDenied = errors.New("approval denied")
)

// usageErrorPatterns are prefixes of errors produced by cobra/pflag for CLI misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"missing required argument",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrPathNotFound):
		return ExitPathNotFound
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.HasPrefix(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
