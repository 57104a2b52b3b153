package codecleaner

import "context"

// SyntaxValidator checks that cleaned content still parses.
type SyntaxValidator interface {
	// Validate returns (true, nil) for content that parses or for extensions
	// without an associated checker, (false, nil) for content that fails the
	// check, and a non-nil error when the checker itself could not run.
	Validate(ctx context.Context, file SourceFile, content string) (bool, error)
}
