package git

import (
	"context"
	"fmt"
	"strings"
)

// PushBranchWithLease pushes a branch to the remote using --force-with-lease,
// refusing to overwrite remote history it has not seen.
func (r *CommandRunner) PushBranchWithLease(ctx context.Context, remote, branchName string) error {
	if err := validateBranchName(branchName); err != nil {
		return err
	}
	_, err := r.Run(ctx, "push", "-u", remote, "--force-with-lease", branchName)
	if err != nil {
		if strings.Contains(err.Error(), "stale info") {
			return fmt.Errorf("force-with-lease push of %s rejected because the remote branch changed; fetch and retry, or push manually with --force: %w", branchName, err)
		}
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteRemoteBranch deletes a branch on the remote
func (r *CommandRunner) DeleteRemoteBranch(ctx context.Context, remote, branchName string) error {
	if err := validateBranchName(branchName); err != nil {
		return err
	}
	_, err := r.Run(ctx, "push", remote, "--delete", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete remote branch %s/%s: %w", remote, branchName, err)
	}
	return nil
}
