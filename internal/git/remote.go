package git

import (
	"context"
	"fmt"
	"strings"
)

// FetchAll fetches all remotes and prunes stale remote-tracking branches
func (r *CommandRunner) FetchAll(ctx context.Context) error {
	_, err := r.Run(ctx, "fetch", "--all", "--prune")
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	return nil
}

// GetRemote returns the default remote name (usually "origin")
func (r *CommandRunner) GetRemote(ctx context.Context) string {
	branch, err := r.Run(ctx, "symbolic-ref", "--short", "HEAD")
	if err == nil && branch != "" {
		remote, err := r.Run(ctx, "config", "--get", "branch."+branch+".remote")
		if err == nil && remote != "" {
			return remote
		}
	}
	return "origin"
}

// GetRemoteDefaultBranch discovers the remote's default branch via its
// HEAD symbolic ref, falling back to `remote show` output.
func (r *CommandRunner) GetRemoteDefaultBranch(ctx context.Context, remote string) (string, error) {
	ref, err := r.Run(ctx, "symbolic-ref", "refs/remotes/"+remote+"/HEAD")
	if err == nil {
		return strings.TrimPrefix(ref, "refs/remotes/"+remote+"/"), nil
	}

	output, err := r.Run(ctx, "remote", "show", remote)
	if err != nil {
		return "", fmt.Errorf("failed to inspect remote %s: %w", remote, err)
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, "HEAD branch:"); ok {
			return strings.TrimSpace(name), nil
		}
	}
	return "", fmt.Errorf("no default branch found for remote %s", remote)
}

// SetRemoteHead updates the remote HEAD symbolic ref to the remote's
// current default branch
func (r *CommandRunner) SetRemoteHead(ctx context.Context, remote string) error {
	_, err := r.Run(ctx, "remote", "set-head", remote, "--auto")
	if err != nil {
		return fmt.Errorf("failed to set remote HEAD for %s: %w", remote, err)
	}
	return nil
}

// RemoteTrackingRef returns "<remote>/<branch>" when a remote-tracking
// counterpart exists for branch, otherwise the bare branch name. Rebase
// targets are qualified this way so a freshly fetched remote state wins
// over a stale local branch.
func (r *CommandRunner) RemoteTrackingRef(ctx context.Context, remote, branch string) string {
	qualified := remote + "/" + branch
	if r.BranchExists(ctx, qualified) {
		return qualified
	}
	return branch
}
