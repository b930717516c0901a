package git

import (
	"context"
	"fmt"

	sweepiterrors "sweepit.dev/sweepit/internal/errors"
	"sweepit.dev/sweepit/internal/utils"
)

// validateBranchName gates every mutating operation. It never spawns a
// subprocess for a name that fails validation.
func validateBranchName(name string) error {
	if !utils.IsValidBranchName(name) {
		return sweepiterrors.NewInvalidReferenceError(name)
	}
	return nil
}

// CheckoutBranch checks out an existing branch
func (r *CommandRunner) CheckoutBranch(ctx context.Context, branchName string) error {
	if err := validateBranchName(branchName); err != nil {
		return err
	}
	_, err := r.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates and checks out a new branch from startPoint.
// An empty startPoint branches from the current HEAD.
func (r *CommandRunner) CreateAndCheckoutBranch(ctx context.Context, branchName, startPoint string) error {
	if err := validateBranchName(branchName); err != nil {
		return err
	}
	args := []string{"checkout", "-b", branchName}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	_, err := r.Run(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch deletes a local branch. With force set it deletes the branch
// even when it is not fully merged.
func (r *CommandRunner) DeleteBranch(ctx context.Context, branchName string, force bool) error {
	if err := validateBranchName(branchName); err != nil {
		return err
	}
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.Run(ctx, "branch", flag, branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// GetCurrentBranch returns the name of the currently checked-out branch
func (r *CommandRunner) GetCurrentBranch(ctx context.Context) (string, error) {
	name, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	if name == "HEAD" {
		return "", sweepiterrors.ErrNotOnBranch
	}
	return name, nil
}

// IsWorkingTreeClean reports whether there are no staged or unstaged changes
func (r *CommandRunner) IsWorkingTreeClean(ctx context.Context) (bool, error) {
	output, err := r.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return output == "", nil
}

// HardReset performs a hard reset to a specific revision.
// This is the sole destructive, irreversible step in the rebase flows.
func (r *CommandRunner) HardReset(ctx context.Context, rev string) error {
	_, err := r.Run(ctx, "reset", "--hard", rev)
	if err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", rev, err)
	}
	return nil
}
