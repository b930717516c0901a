package git

import (
	"context"
	"fmt"
)

// GetMergeBase returns the merge base between two revisions
func (r *CommandRunner) GetMergeBase(ctx context.Context, rev1, rev2 string) (string, error) {
	sha, err := r.Run(ctx, "merge-base", rev1, rev2)
	if err != nil {
		return "", fmt.Errorf("failed to get merge base of %s and %s: %w", rev1, rev2, err)
	}
	return sha, nil
}

// GetCommitsInRange returns the non-merge commits reachable from head but
// not from base, oldest first. Replaying them in order preserves the
// original authorship order.
func (r *CommandRunner) GetCommitsInRange(ctx context.Context, base, head string) ([]string, error) {
	shas, err := r.RunLines(ctx, "rev-list", "--reverse", "--no-merges", base+".."+head)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits in %s..%s: %w", base, head, err)
	}
	return shas, nil
}

// IsAncestor checks if ancestor is reachable from descendant
func (r *CommandRunner) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := r.Run(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err != nil {
		return false, nil
	}
	return true, nil
}
