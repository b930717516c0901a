package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Rebase rebases the current checkout onto target. When strategy is a
// valid conflict side, the merge is pre-seeded with the matching
// recursive-strategy option so conflicted hunks resolve automatically.
func (r *CommandRunner) Rebase(ctx context.Context, target string, strategy ConflictSide) error {
	args := []string{"rebase"}
	if strategy.Valid() {
		args = append(args, "-X", string(strategy))
	}
	args = append(args, target)
	_, err := r.Run(ctx, args...)
	if err != nil {
		return fmt.Errorf("rebase onto %s failed: %w", target, err)
	}
	return nil
}

// RebaseContinue continues an in-progress rebase
func (r *CommandRunner) RebaseContinue(ctx context.Context) error {
	_, err := r.RunWithEnv(ctx, []string{"GIT_EDITOR=true"}, "rebase", "--continue")
	if err != nil {
		return fmt.Errorf("rebase continue failed: %w", err)
	}
	return nil
}

// RebaseAbort aborts an in-progress rebase
func (r *CommandRunner) RebaseAbort(ctx context.Context) error {
	_, err := r.Run(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress.
// Checks for .git/rebase-merge or .git/rebase-apply, which is more
// reliable than REBASE_HEAD since that ref can outlive a rebase.
func (r *CommandRunner) IsRebaseInProgress(ctx context.Context) bool {
	gitDir, err := r.Run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	if !filepath.IsAbs(gitDir) && r.workingDir != "" {
		gitDir = filepath.Join(r.workingDir, gitDir)
	}

	if _, err := os.Stat(filepath.Join(gitDir, "rebase-merge")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-apply")); err == nil {
		return true
	}
	return false
}
