package git

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// BranchType distinguishes local branches from remote-tracking branches
type BranchType string

const (
	// BranchTypeLocal is a branch under refs/heads
	BranchTypeLocal BranchType = "local"
	// BranchTypeRemote is a remote-tracking branch under refs/remotes
	BranchTypeRemote BranchType = "remote"
)

// RefPrefix returns the ref namespace prefix for the branch type
func (t BranchType) RefPrefix() string {
	if t == BranchTypeRemote {
		return "refs/remotes"
	}
	return "refs/heads"
}

// RefEntry is one parsed for-each-ref record. Merge status and divergence
// are filled in later by the analyzer.
type RefEntry struct {
	// Ref is the short ref name ("feature/x" or "origin/feature/x")
	Ref string
	// Name is the branch name with any remote prefix stripped
	Name string
	// Type is local or remote
	Type BranchType
	// Remote is the remote name, set only for remote entries
	Remote string
	// LastCommitDate is nil when the committer date could not be parsed
	LastCommitDate *time.Time
	// LastCommitSha is the full commit hash
	LastCommitSha string
	// LastCommitSubject is the first line of the commit message
	LastCommitSubject string
}

// forEachRefFormat is the fixed NUL-delimited four-field format used for
// all ref listings: full ref, strict ISO committer date, hash, subject.
const forEachRefFormat = "%(refname)%00%(committerdate:iso8601-strict)%00%(objectname)%00%(subject)"

// ListRefs lists branches of the given type with commit metadata.
// Symbolic HEAD pointers and records with empty derived names are discarded.
// Unparseable dates yield a nil LastCommitDate rather than an error.
func (r *CommandRunner) ListRefs(ctx context.Context, branchType BranchType) ([]RefEntry, error) {
	prefix := branchType.RefPrefix()
	output, err := r.RunRaw(ctx, "for-each-ref", "--format="+forEachRefFormat, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list refs under %s: %w", prefix, err)
	}

	entries := []RefEntry{}
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\x00", 4)
		if len(fields) < 4 {
			continue
		}

		entry, ok := parseRefEntry(fields, branchType)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseRefEntry(fields []string, branchType BranchType) (RefEntry, bool) {
	fullRef, dateStr, sha, subject := fields[0], fields[1], fields[2], fields[3]

	short := strings.TrimPrefix(fullRef, branchType.RefPrefix()+"/")
	if short == "" || short == "HEAD" {
		return RefEntry{}, false
	}

	entry := RefEntry{
		Ref:               short,
		Name:              short,
		Type:              branchType,
		LastCommitSha:     sha,
		LastCommitSubject: subject,
	}

	if branchType == BranchTypeRemote {
		// First path segment is the remote, the rest is the branch name
		segments := strings.Split(short, "/")
		if len(segments) < 2 {
			return RefEntry{}, false
		}
		entry.Remote = segments[0]
		entry.Name = strings.Join(segments[1:], "/")
		if entry.Name == "" || entry.Name == "HEAD" {
			return RefEntry{}, false
		}
	}

	if date, err := time.Parse(time.RFC3339, dateStr); err == nil {
		entry.LastCommitDate = &date
	}

	return entry, true
}

// RevParse resolves a revision to a full commit hash
func (r *CommandRunner) RevParse(ctx context.Context, rev string) (string, error) {
	sha, err := r.Run(ctx, "rev-parse", "--verify", rev)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return sha, nil
}

// BranchExists reports whether a local or remote-tracking branch resolves
func (r *CommandRunner) BranchExists(ctx context.Context, name string) bool {
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", name)
	return err == nil
}
