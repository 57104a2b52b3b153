package codecleaner

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Run completed (per-file failures do not change this)
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or options
	ExitApprovalDenied = 12 // User denied in-place rewrite
	ExitPathNotFound   = 14 // Target path does not exist
)

const (
	// DefaultWorkers is the default size of the worker pool.
	DefaultWorkers = 4

	// BackupSuffix is appended to the full file name of a backup copy,
	// so main.py is backed up as main.py.bak.
	BackupSuffix = ".bak"

	// ConfigFileName is the optional project configuration file looked up
	// in the target root.
	ConfigFileName = ".codecleaner.yaml"
)

// DefaultExtensions returns the extensions selected when no override is given.
// A fresh slice is returned on each call so callers may modify it.
func DefaultExtensions() []string {
	return []string{
		".py", ".js", ".ts", ".jsx", ".tsx",
		".java", ".c", ".cpp", ".h", ".hpp",
		".go", ".php", ".css", ".html", ".htm",
	}
}

// DefaultExcludedDirs returns the directory names skipped during traversal.
// A fresh slice is returned on each call so callers may modify it.
func DefaultExcludedDirs() []string {
	return []string{
		"vendor",
		"node_modules",
		".git",
		"venv",
		"__pycache__",
		"storage",
		"bootstrap",
		"dist",
		"build",
		".next",
		"out",
		"coverage",
	}
}
