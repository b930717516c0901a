package git

import (
	"context"
	"fmt"
)

// CreateAnnotatedTag creates an annotated tag pointing at rev
func (r *CommandRunner) CreateAnnotatedTag(ctx context.Context, name, rev, message string) error {
	if err := validateBranchName(name); err != nil {
		return err
	}
	_, err := r.Run(ctx, "tag", "-a", name, rev, "-m", message)
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// TagExists reports whether a tag resolves to a commit
func (r *CommandRunner) TagExists(ctx context.Context, name string) bool {
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", "refs/tags/"+name)
	return err == nil
}
