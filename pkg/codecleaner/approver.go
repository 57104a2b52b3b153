package codecleaner

import "context"

// Approver handles user interaction before destructive operations,
// namely rewriting files in place without backups.
//
// Implementations:
//   - ForcedApprover: Approves without prompting
//   - InteractiveApprover: Prompts the user to confirm
type Approver interface {
	// RequestApproval asks for confirmation before rewriting fileCount files under root.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, root string, fileCount int) (bool, error)
}
