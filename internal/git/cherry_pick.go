package git

import (
	"context"
	"fmt"
)

// ConflictSide selects which side of a conflict to keep when resolving
// non-interactively.
type ConflictSide string

const (
	// ConflictOurs keeps the version on the current checkout
	ConflictOurs ConflictSide = "ours"
	// ConflictTheirs keeps the incoming version
	ConflictTheirs ConflictSide = "theirs"
)

// Valid reports whether the side is one of the supported values
func (s ConflictSide) Valid() bool {
	return s == ConflictOurs || s == ConflictTheirs
}

// CherryPick applies a single commit onto the current checkout. When
// allowEmpty is set, a commit whose effective change is already present
// upstream is preserved as an empty commit instead of being dropped.
func (r *CommandRunner) CherryPick(ctx context.Context, sha string, allowEmpty bool) error {
	args := []string{"cherry-pick"}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	args = append(args, sha)
	_, err := r.Run(ctx, args...)
	if err != nil {
		return fmt.Errorf("cherry-pick of %s failed: %w", sha, err)
	}
	return nil
}

// CherryPickContinue continues an in-progress cherry-pick after conflicts
// have been staged
func (r *CommandRunner) CherryPickContinue(ctx context.Context) error {
	_, err := r.RunWithEnv(ctx, []string{"GIT_EDITOR=true"}, "cherry-pick", "--continue")
	if err != nil {
		return fmt.Errorf("cherry-pick continue failed: %w", err)
	}
	return nil
}

// CherryPickCommitEmpty concludes a conflicted cherry-pick whose staged
// resolution is empty by recording an empty commit with the picked
// commit's message. --continue refuses such picks.
func (r *CommandRunner) CherryPickCommitEmpty(ctx context.Context) error {
	_, err := r.RunWithEnv(ctx, []string{"GIT_EDITOR=true"}, "commit", "--allow-empty", "--no-edit")
	if err != nil {
		return fmt.Errorf("failed to record empty pick: %w", err)
	}
	return nil
}

// CherryPickSkip skips the commit currently being picked
func (r *CommandRunner) CherryPickSkip(ctx context.Context) error {
	_, err := r.Run(ctx, "cherry-pick", "--skip")
	if err != nil {
		return fmt.Errorf("cherry-pick skip failed: %w", err)
	}
	return nil
}

// CherryPickAbort aborts an in-progress cherry-pick
func (r *CommandRunner) CherryPickAbort(ctx context.Context) error {
	_, err := r.Run(ctx, "cherry-pick", "--abort")
	if err != nil {
		return fmt.Errorf("cherry-pick abort failed: %w", err)
	}
	return nil
}

// IsCherryPickInProgress checks if a cherry-pick is currently in progress
func (r *CommandRunner) IsCherryPickInProgress(ctx context.Context) bool {
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", "CHERRY_PICK_HEAD")
	return err == nil
}

// GetUnmergedFiles returns the paths currently in conflict
func (r *CommandRunner) GetUnmergedFiles(ctx context.Context) ([]string, error) {
	files, err := r.RunLines(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged files: %w", err)
	}
	return files, nil
}

// ResolveConflictsWith blanket-accepts one side for every conflicted path
// and stages the result. This is a coarse, non-interactive resolution;
// per-file choices belong to the calling UI layer.
func (r *CommandRunner) ResolveConflictsWith(ctx context.Context, side ConflictSide) error {
	if !side.Valid() {
		return fmt.Errorf("unknown conflict side %q", side)
	}

	files, err := r.GetUnmergedFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	checkoutArgs := append([]string{"checkout", "--" + string(side), "--"}, files...)
	if _, err := r.Run(ctx, checkoutArgs...); err != nil {
		return fmt.Errorf("failed to take %s side for conflicted files: %w", side, err)
	}

	addArgs := append([]string{"add", "--"}, files...)
	if _, err := r.Run(ctx, addArgs...); err != nil {
		return fmt.Errorf("failed to stage resolved files: %w", err)
	}
	return nil
}
