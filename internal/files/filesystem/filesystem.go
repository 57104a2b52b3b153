package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree, calling the provided function for each file and directory.
	// The function receives the file/directory and any error encountered.
	// Returning fs.SkipDir for a directory skips its contents; any other
	// error stops the walk and is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the filesystem surface used by the cleaning pipeline.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of the file at path, creating it with
	// perm if it does not exist.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
