// Package validate checks that cleaned content still parses before it
// replaces the original file.
//
// Go sources are parsed in-process with go/parser. Python, JavaScript,
// TypeScript, PHP, C and C++ are handed to the matching external tool
// (python3, node, php, gcc) through a temporary file that carries the
// original extension. Every other extension is accepted as-is.
//
// A tool that exits non-zero marks the content invalid. A tool that cannot
// be started is reported as ErrValidatorUnavailable so the caller can record
// a per-file error instead of silently skipping the file.
package validate
