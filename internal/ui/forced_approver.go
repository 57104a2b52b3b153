package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// ForcedApprover implements the Approver interface for runs that cannot
// prompt (CI, piped stdin). It prints a notice and approves.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
}

// NewForcedApprover creates a new ForcedApprover writing its notice to stderr.
func NewForcedApprover(verbose bool) codecleaner.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr}
}

// RequestApproval prints the rewrite notice and approves unless ctx is done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, root string, fileCount int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "Rewriting %d file(s) under %s in place without backups.\n", fileCount, root)
	if a.verbose {
		fmt.Fprintln(a.output, "Pass --backup to keep .bak copies or --dry-run to preview.")
	}
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ codecleaner.Approver = (*ForcedApprover)(nil)
