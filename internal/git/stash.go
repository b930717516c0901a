package git

import (
	"context"
	"fmt"
	"strings"
)

// StashPush pushes current changes (including untracked files) to the stash
func (r *CommandRunner) StashPush(ctx context.Context, message string) (string, error) {
	args := []string{"stash", "push", "-u"}
	if message != "" {
		args = append(args, "-m", message)
	}
	output, err := r.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("stash push failed: %w", err)
	}
	return output, nil
}

// StashList returns the stash reflog entries, most recent first
func (r *CommandRunner) StashList(ctx context.Context) ([]string, error) {
	lines, err := r.RunLines(ctx, "stash", "list")
	if err != nil {
		return nil, fmt.Errorf("stash list failed: %w", err)
	}
	return lines, nil
}

// StashPop pops a stash entry. An empty ref pops the most recent stash.
func (r *CommandRunner) StashPop(ctx context.Context, ref string) error {
	args := []string{"stash", "pop"}
	if ref != "" {
		args = append(args, ref)
	}
	_, err := r.Run(ctx, args...)
	if err != nil {
		return fmt.Errorf("stash pop failed: %w", err)
	}
	return nil
}

// FindStashByMessage returns the stash ref ("stash@{N}") whose message
// contains the given label, or an empty string if none match.
func (r *CommandRunner) FindStashByMessage(ctx context.Context, label string) (string, error) {
	entries, err := r.StashList(ctx)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if !strings.Contains(entry, label) {
			continue
		}
		if idx := strings.Index(entry, ":"); idx > 0 {
			return entry[:idx], nil
		}
	}
	return "", nil
}
