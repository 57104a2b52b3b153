package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/codecleaner/internal/files/filesystem"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// Options controls which files are selected.
type Options struct {
	// Extensions is the allow-list; entries are normalized with codecleaner.NormalizeExtension
	Extensions []string

	// ExcludedDirs rejects a file when any of its root-relative path segments equals an entry
	ExcludedDirs []string

	// ExcludePatterns are doublestar globs matched against slash-separated root-relative paths
	ExcludePatterns []string

	// Languages maps extensions to comment syntax; nil uses the default registry
	Languages *codecleaner.LanguageRegistry
}

// DefaultOptions returns the selection used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		Extensions:   codecleaner.DefaultExtensions(),
		ExcludedDirs: codecleaner.DefaultExcludedDirs(),
	}
}

// Scanner discovers source files in a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider   filesystem.FileSystemProvider
	logger       codecleaner.Logger
	extensions   map[string]struct{}
	excludedDirs map[string]struct{}
	patterns     []string
	languages    *codecleaner.LanguageRegistry
}

// NewScanner creates a new file scanner over the OS filesystem.
// Returns an error wrapping codecleaner.ErrInvalidConfig for malformed globs.
// Panics if logger is nil.
func NewScanner(opts Options, logger codecleaner.Logger) (*Scanner, error) {
	return NewScannerWithFS(opts, filesystem.NewOSFileSystem(), logger)
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider or logger is nil.
func NewScannerWithFS(opts Options, fsProvider filesystem.FileSystemProvider, logger codecleaner.Logger) (*Scanner, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	s := &Scanner{
		fsProvider:   fsProvider,
		logger:       logger,
		extensions:   make(map[string]struct{}, len(opts.Extensions)),
		excludedDirs: make(map[string]struct{}, len(opts.ExcludedDirs)),
		languages:    opts.Languages,
	}
	if s.languages == nil {
		s.languages = codecleaner.NewLanguageRegistry(nil)
	}

	for _, ext := range opts.Extensions {
		if ext = codecleaner.NormalizeExtension(ext); ext != "" {
			s.extensions[ext] = struct{}{}
		}
	}

	for _, dir := range opts.ExcludedDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			s.excludedDirs[dir] = struct{}{}
		}
	}

	for _, pattern := range opts.ExcludePatterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, codecleaner.ErrInvalidConfig)
		}
		s.patterns = append(s.patterns, pattern)
	}

	return s, nil
}

// ScanDirectory recursively scans root and returns the selected files,
// ordered by relative path.
//
// Unreadable entries below the root are logged and skipped; only a failure
// to open the root itself is returned.
func (s *Scanner) ScanDirectory(root string) ([]codecleaner.SourceFile, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, codecleaner.ErrPathNotFound)
		}
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []codecleaner.SourceFile

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			s.logger.Error("Skipping unreadable path: %v", err)
			return nil
		}

		relPath := filepath.ToSlash(file.RelativePath())
		if relPath == "." {
			return nil
		}

		if file.Info().IsDir() {
			if s.isExcluded(relPath) {
				s.logger.Verbose("Skipping excluded directory: %s", relPath)
				return fs.SkipDir
			}
			return nil
		}

		ext := codecleaner.NormalizeExtension(path.Ext(relPath))
		if _, ok := s.extensions[ext]; !ok {
			return nil
		}

		if s.isExcluded(relPath) {
			s.logger.Verbose("Skipping excluded file: %s", relPath)
			return nil
		}

		files = append(files, codecleaner.SourceFile{
			Path:         filepath.Join(root, filepath.FromSlash(relPath)),
			RelativePath: relPath,
			Extension:    ext,
			Language:     s.languages.ForExtension(ext),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})

	return files, nil
}

// isExcluded reports whether any segment of relPath is an excluded name
// or relPath matches an exclusion glob.
func (s *Scanner) isExcluded(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if _, ok := s.excludedDirs[segment]; ok {
			return true
		}
	}

	for _, pattern := range s.patterns {
		// Patterns were validated at construction, so Match cannot fail.
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}

	return false
}

// Verify Scanner implements the interface at compile time
var _ codecleaner.FileScanner = (*Scanner)(nil)
