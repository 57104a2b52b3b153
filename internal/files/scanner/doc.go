// Package scanner discovers the source files a cleaning run should process.
//
// The scanner package is responsible for:
//   - Recursively walking a directory tree
//   - Selecting files by extension allow-list (case-insensitive)
//   - Rejecting files with any path segment in the excluded directory set
//   - Rejecting files whose root-relative path matches an exclusion glob
//   - Mapping each selected file to its comment language
//
// The scanner is filesystem-agnostic through the filesystem.FileSystemProvider
// interface, enabling both production use with the OS filesystem and testing
// with in-memory filesystems.
package scanner
