package actions

import (
	"context"
	"fmt"
	"os"

	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/runtime"
	"sweepit.dev/sweepit/internal/utils"

	sweepiterrors "sweepit.dev/sweepit/internal/errors"
)

// LinearRebaseOptions controls a native rebase invocation
type LinearRebaseOptions struct {
	// Current is the branch to rebase; empty means the current checkout
	Current string
	// Target is the new base branch
	Target string
	// ContinueOnConflict auto-resolves conflicts with Strategy and
	// continues instead of aborting
	ContinueOnConflict bool
	// Strategy is the conflict side for automatic resolution
	Strategy git.ConflictSide
	// Push force-with-lease pushes the branch after a successful rebase
	Push bool
	// Progress receives textual progress updates; may be nil
	Progress func(string)
}

func (o LinearRebaseOptions) report(format string, args ...interface{}) {
	if o.Progress != nil {
		o.Progress(fmt.Sprintf(format, args...))
	}
}

// LinearRebase rebases a branch onto the target using git's native
// rebase. Without ContinueOnConflict any failure is aborted and surfaced
// as RebaseFailed; with it, conflicts are resolved by blanket-taking the
// configured side and continuing, surfacing RebaseContinueFailed only
// when that secondary path also fails.
func LinearRebase(ctx context.Context, rt *runtime.Context, opts LinearRebaseOptions) error {
	runner := rt.Runner

	if !utils.IsValidBranchName(opts.Target) {
		return sweepiterrors.NewInvalidReferenceError(opts.Target)
	}

	if runner.IsRebaseInProgress(ctx) {
		return fmt.Errorf("a rebase is already in progress; finish or abort it first")
	}

	current := opts.Current
	if current == "" {
		var err error
		current, err = runner.GetCurrentBranch(ctx)
		if err != nil {
			return err
		}
	}

	opts.report("Fetching remotes")
	if err := runner.FetchAll(ctx); err != nil {
		return err
	}

	remote := rt.Config.GetRemote()
	if !runner.BranchExists(ctx, opts.Target) && !runner.BranchExists(ctx, remote+"/"+opts.Target) {
		return sweepiterrors.NewTargetNotFoundError(opts.Target)
	}

	stashRef, err := stashIfDirty(ctx, rt)
	if err != nil {
		return err
	}
	// Restore the autostash on every exit, error paths included
	defer popStash(ctx, rt, stashRef)

	if err := runner.CheckoutBranch(ctx, current); err != nil {
		return err
	}

	target := runner.RemoteTrackingRef(ctx, remote, opts.Target)
	opts.report("Rebasing %s onto %s", current, target)

	if !opts.ContinueOnConflict {
		if err := runner.Rebase(ctx, target, ""); err != nil {
			// Best-effort abort; its own failure must not mask the original error
			_ = runner.RebaseAbort(ctx)
			return sweepiterrors.NewRebaseFailedError(current, target, err)
		}
	} else {
		if err := runner.Rebase(ctx, target, opts.Strategy); err != nil {
			opts.report("Conflict during rebase, taking %s side", opts.Strategy)
			if err := resolveAndContinue(ctx, runner, opts.Strategy, err); err != nil {
				_ = runner.RebaseAbort(ctx)
				return sweepiterrors.NewRebaseContinueFailedError(current, err)
			}
		}
	}

	if opts.Push {
		opts.report("Pushing %s to %s", current, remote)
		if err := runner.PushBranchWithLease(ctx, remote, current); err != nil {
			return err
		}
	}

	opts.report("Rebased %s onto %s", current, target)
	return nil
}

// resolveAndContinue stages the chosen side for all conflicted paths and
// continues the rebase, repeating until the rebase completes or fails to
// make progress. A rebase failure that left no rebase in progress (refused
// by a hook, stray state) cannot be resolved here and surfaces as cause.
func resolveAndContinue(ctx context.Context, runner *git.CommandRunner, side git.ConflictSide, cause error) error {
	if !runner.IsRebaseInProgress(ctx) {
		return cause
	}
	for runner.IsRebaseInProgress(ctx) {
		if err := runner.ResolveConflictsWith(ctx, side); err != nil {
			return err
		}
		if err := runner.RebaseContinue(ctx); err != nil {
			if runner.IsRebaseInProgress(ctx) {
				// Another conflicted commit, resolve again
				continue
			}
			return err
		}
	}
	return nil
}

// stashIfDirty stashes uncommitted changes with a process-labeled message
// and returns the stash ref to pop afterwards, or an empty string when
// the working tree was clean.
func stashIfDirty(ctx context.Context, rt *runtime.Context) (string, error) {
	clean, err := rt.Runner.IsWorkingTreeClean(ctx)
	if err != nil {
		return "", err
	}
	if clean {
		return "", nil
	}

	label := fmt.Sprintf("sweepit-autostash-%d", os.Getpid())
	rt.Splog.Info("Stashing uncommitted changes")
	if _, err := rt.Runner.StashPush(ctx, label); err != nil {
		return "", err
	}

	ref, err := rt.Runner.FindStashByMessage(ctx, label)
	if err != nil {
		return "", err
	}
	return ref, nil
}

// popStash restores a previously created autostash. Failure is advisory:
// the stash entry survives and the user is told where to find it.
func popStash(ctx context.Context, rt *runtime.Context, ref string) {
	if ref == "" {
		return
	}
	if err := rt.Runner.StashPop(ctx, ref); err != nil {
		rt.Splog.Warn("Could not restore stashed changes, recover them with 'git stash pop %s'", ref)
	}
}
