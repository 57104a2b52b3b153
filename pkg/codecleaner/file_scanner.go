package codecleaner

// FileScanner discovers the files a run should clean.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanDirectory recursively discovers files under root that pass the
	// extension allow-list and exclusion rules.
	ScanDirectory(root string) ([]SourceFile, error)
}
