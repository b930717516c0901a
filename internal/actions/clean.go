package actions

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"sweepit.dev/sweepit/internal/analyze"
	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/output"
	"sweepit.dev/sweepit/internal/runtime"
	"sweepit.dev/sweepit/internal/utils"

	sweepiterrors "sweepit.dev/sweepit/internal/errors"
)

// CleanOptions contains options for the branch deletion review flow
type CleanOptions struct {
	// IncludeRemote also offers merged remote branches for deletion
	IncludeRemote bool
	// Force deletes all merged branches without prompting
	Force bool
}

// CleanResult contains the outcome of a clean run
type CleanResult struct {
	DeletedLocal  []string
	DeletedRemote []string
}

// ListBranches returns the annotated inventory for the review flow
func ListBranches(ctx context.Context, rt *runtime.Context, includeRemote bool) ([]analyze.BranchRecord, error) {
	return analyze.ListBranches(ctx, rt.Runner, analyze.Options{
		IncludeRemote:  includeRemote,
		Remote:         rt.Config.GetRemote(),
		BaseCandidates: rt.Config.GetBaseCandidates(),
	})
}

// Clean reviews the branch inventory and deletes merged branches.
// Protected branches and the current checkout are never offered.
func Clean(ctx context.Context, rt *runtime.Context, opts CleanOptions) (*CleanResult, error) {
	records, err := ListBranches(ctx, rt, opts.IncludeRemote)
	if err != nil {
		return nil, err
	}

	currentBranch, err := rt.Runner.GetCurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []analyze.BranchRecord
	for _, record := range records {
		if !record.IsMerged {
			continue
		}
		if record.Type == git.BranchTypeLocal && record.Ref == currentBranch {
			continue
		}
		if rt.Config.IsProtected(record.Name) {
			continue
		}
		candidates = append(candidates, record)
	}

	if len(candidates) == 0 {
		rt.Splog.Info("No merged branches to clean up.")
		return &CleanResult{}, nil
	}

	selected := candidates
	if !opts.Force {
		if !utils.IsInteractive() {
			return nil, fmt.Errorf("refusing to delete branches without confirmation; re-run with --force or from an interactive terminal")
		}
		rt.Splog.Newline()
		selected, err = promptBranchSelection(candidates, currentBranch)
		if err != nil {
			return nil, err
		}
	}

	result := &CleanResult{}
	for _, record := range selected {
		switch record.Type {
		case git.BranchTypeLocal:
			if err := DeleteLocalBranch(ctx, rt, record.Ref, true); err != nil {
				rt.Splog.Warn("Could not delete %s: %v", record.Ref, err)
				continue
			}
			rt.Splog.Info("Deleted branch %s", output.ColorBranchName(record.Ref, false))
			result.DeletedLocal = append(result.DeletedLocal, record.Ref)
		case git.BranchTypeRemote:
			if err := rt.Runner.DeleteRemoteBranch(ctx, record.Remote, record.Name); err != nil {
				rt.Splog.Warn("Could not delete %s: %v", record.Ref, err)
				continue
			}
			rt.Splog.Info("Deleted remote branch %s", output.ColorBranchName(record.Ref, false))
			result.DeletedRemote = append(result.DeletedRemote, record.Ref)
		}
	}

	if len(result.DeletedLocal) > 0 {
		rt.Splog.Tip("Deleted branches can be recovered with 'git reflog' until git prunes them.")
	}

	return result, nil
}

// DeleteLocalBranch deletes a local branch after validating its name.
// An invalid name fails before any subprocess is invoked.
func DeleteLocalBranch(ctx context.Context, rt *runtime.Context, branchName string, force bool) error {
	if !utils.IsValidBranchName(branchName) {
		return sweepiterrors.NewInvalidReferenceError(branchName)
	}
	return rt.Runner.DeleteBranch(ctx, branchName, force)
}

func promptBranchSelection(candidates []analyze.BranchRecord, currentBranch string) ([]analyze.BranchRecord, error) {
	options := make([]string, len(candidates))
	for i, record := range candidates {
		options[i] = output.FormatBranchRecord(record, currentBranch)
	}

	var picked []int
	prompt := &survey.MultiSelect{
		Message: "Select merged branches to delete:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	selected := make([]analyze.BranchRecord, 0, len(picked))
	for _, idx := range picked {
		selected = append(selected, candidates[idx])
	}
	return selected, nil
}
