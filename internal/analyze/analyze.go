// Package analyze builds the annotated branch inventory used by the
// deletion-review flow. It composes ref listings, merged sets and
// divergence counts into sorted BranchRecords.
package analyze

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sweepit.dev/sweepit/internal/git"
)

// BranchRecord is one entry of the branch inventory. Records are built
// fresh on every request and never persisted.
type BranchRecord struct {
	git.RefEntry

	// IsMerged reports whether the branch is contained in the merge target
	IsMerged bool
	// Ahead and Behind are relative to the resolved base branch and
	// default to zero when no base exists
	Ahead  int
	Behind int
}

// Options controls an inventory request
type Options struct {
	// IncludeRemote also lists remote-tracking branches
	IncludeRemote bool
	// Remote is the remote used for base-branch probing, "origin" if empty
	Remote string
	// BaseCandidates is the base-branch preference order,
	// {main, master, develop} if empty
	BaseCandidates []string
}

// DefaultBaseCandidates is the base-branch probe order used when the
// caller does not configure one.
var DefaultBaseCandidates = []string{"main", "master", "develop"}

func (o Options) remote() string {
	if o.Remote == "" {
		return "origin"
	}
	return o.Remote
}

func (o Options) baseCandidates() []string {
	if len(o.BaseCandidates) == 0 {
		return DefaultBaseCandidates
	}
	return o.BaseCandidates
}

// ResolveBaseBranch probes the preference order of remote candidates,
// then local candidates, then the remote's advertised default branch.
// Returns an empty string when nothing resolves.
func ResolveBaseBranch(ctx context.Context, runner *git.CommandRunner, opts Options) string {
	remote := opts.remote()
	for _, name := range opts.baseCandidates() {
		if runner.BranchExists(ctx, remote+"/"+name) {
			return remote + "/" + name
		}
	}
	for _, name := range opts.baseCandidates() {
		if runner.BranchExists(ctx, name) {
			return name
		}
	}
	if name, err := runner.GetRemoteDefaultBranch(ctx, remote); err == nil {
		if runner.BranchExists(ctx, remote+"/"+name) {
			return remote + "/" + name
		}
		if runner.BranchExists(ctx, name) {
			return name
		}
	}
	return ""
}

// ListBranches returns the annotated branch inventory: every local and
// (optionally) remote branch with merged status and ahead/behind counts
// against the resolved base branch.
//
// Merged-set and listing failures propagate; divergence failures degrade
// to zero counts. The result is sorted with local records before remote
// records and, within each type, by last commit date descending with
// missing dates last.
func ListBranches(ctx context.Context, runner *git.CommandRunner, opts Options) ([]BranchRecord, error) {
	var (
		wg           sync.WaitGroup
		localMerged  map[string]bool
		remoteMerged map[string]bool
		base         string
		localErr     error
		remoteErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		localMerged, localErr = runner.MergedBranches(ctx, "", git.BranchTypeLocal)
	}()

	remoteMerged = map[string]bool{}
	if opts.IncludeRemote {
		wg.Add(1)
		go func() {
			defer wg.Done()
			remoteMerged, remoteErr = runner.MergedBranches(ctx, "", git.BranchTypeRemote)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		base = ResolveBaseBranch(ctx, runner, opts)
	}()

	wg.Wait()
	if localErr != nil {
		return nil, fmt.Errorf("failed to compute local merged set: %w", localErr)
	}
	if remoteErr != nil {
		return nil, fmt.Errorf("failed to compute remote merged set: %w", remoteErr)
	}

	var (
		localRefs     []git.RefEntry
		remoteRefs    []git.RefEntry
		localListErr  error
		remoteListErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		localRefs, localListErr = runner.ListRefs(ctx, git.BranchTypeLocal)
	}()

	if opts.IncludeRemote {
		wg.Add(1)
		go func() {
			defer wg.Done()
			remoteRefs, remoteListErr = runner.ListRefs(ctx, git.BranchTypeRemote)
		}()
	}

	wg.Wait()
	if localListErr != nil {
		return nil, fmt.Errorf("failed to list local branches: %w", localListErr)
	}
	if remoteListErr != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", remoteListErr)
	}

	entries := append(localRefs, remoteRefs...)
	records := make([]BranchRecord, len(entries))

	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry git.RefEntry) {
			defer wg.Done()

			record := BranchRecord{RefEntry: entry}
			switch entry.Type {
			case git.BranchTypeLocal:
				record.IsMerged = localMerged[entry.Ref]
			case git.BranchTypeRemote:
				record.IsMerged = remoteMerged[entry.Ref]
			}

			if base != "" {
				div := runner.AheadBehind(ctx, entry.Ref, base)
				record.Ahead = div.Ahead
				record.Behind = div.Behind
			}

			records[i] = record
		}(i, entry)
	}

	wg.Wait()
	sortRecords(records)
	return records, nil
}

// sortRecords orders the inventory: all local records before all remote
// records, then last commit date descending with nil dates treated as
// epoch, then ref name for a deterministic order.
func sortRecords(records []BranchRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Type != b.Type {
			return a.Type == git.BranchTypeLocal
		}
		at := int64(0)
		bt := int64(0)
		if a.LastCommitDate != nil {
			at = a.LastCommitDate.Unix()
		}
		if b.LastCommitDate != nil {
			bt = b.LastCommitDate.Unix()
		}
		if at != bt {
			return at > bt
		}
		return a.Ref < b.Ref
	})
}
