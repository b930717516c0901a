package git

import (
	"context"
	"fmt"
	"strings"
)

// MergedBranches returns the set of branches of the given type whose
// history is fully contained in target. Keys are short ref names
// ("feature/x" for local, "origin/feature/x" for remote). An empty
// target means the current checkout.
func (r *CommandRunner) MergedBranches(ctx context.Context, target string, branchType BranchType) (map[string]bool, error) {
	if target != "" {
		if err := validateBranchName(target); err != nil {
			return nil, err
		}
	}

	args := []string{"branch"}
	if branchType == BranchTypeRemote {
		args = append(args, "-r")
	}
	args = append(args, "--merged")
	if target != "" {
		args = append(args, target)
	}

	output, err := r.RunRaw(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list merged branches: %w", err)
	}

	merged := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		// "*" marks the current checkout, "+" a branch checked out in
		// another worktree
		name := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*+"))
		if name == "" {
			continue
		}
		// Skip the symbolic pointer annotation for the remote HEAD
		// (e.g. "origin/HEAD -> origin/main")
		if strings.Contains(name, "->") {
			continue
		}
		merged[name] = true
	}

	return merged, nil
}
