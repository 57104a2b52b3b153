package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. The user must answer yes before originals are
// rewritten without backups.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin and prompting on stderr.
func NewInteractiveApprover(verbose bool) codecleaner.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user to confirm the in-place rewrite.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, root string, fileCount int) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: %d file(s) under %s will be rewritten in place\n", fileCount, root)
	fmt.Fprintln(a.output, "No backups will be kept. Comments removed now cannot be recovered by this tool.")
	fmt.Fprint(a.output, "\nType 'yes' to continue: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			fmt.Fprintln(a.output, "✓ Confirmed. Cleaning files...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' is not 'yes'. Operation cancelled.\n", input)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ codecleaner.Approver = (*InteractiveApprover)(nil)
