package actions

import (
	"context"
	"fmt"
	"os"
	"time"

	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/runtime"
	"sweepit.dev/sweepit/internal/utils"

	sweepiterrors "sweepit.dev/sweepit/internal/errors"
)

// CherryPickOptions controls a cherry-pick rebase invocation
type CherryPickOptions struct {
	// Target is the new base branch
	Target string
	// CreateBackup tags the original branch tip before the final reset
	CreateBackup bool
	// AllowEmpty preserves commits whose change is already present upstream
	AllowEmpty bool
	// AutoResolve resolves conflicts non-interactively with Strategy
	AutoResolve bool
	// Strategy is the conflict side taken when AutoResolve is set
	Strategy git.ConflictSide
	// Progress receives textual progress updates; may be nil
	Progress func(string)
}

func (o CherryPickOptions) report(format string, args ...interface{}) {
	if o.Progress != nil {
		o.Progress(fmt.Sprintf(format, args...))
	}
}

// CherryPickSession is the transient state of one cherry-pick rebase.
// It is owned by a single invocation and never persisted; an aborted
// session is discarded, never resumed.
type CherryPickSession struct {
	runner *git.CommandRunner

	// CurrentBranch is the branch being rebased
	CurrentBranch string
	// TargetBranch is the qualified new base ref
	TargetBranch string
	// TempBranch is the isolated replay branch, unique to this process
	TempBranch string
	// Queue is the ordered commit replay sequence, oldest first.
	// It is computed once and never reordered.
	Queue []string
	// BackupTag is set once a backup tag has been created
	BackupTag string

	cursor int
}

// TempBranchName derives the ephemeral branch name from the process
// identity. Single-process exclusivity over the working tree makes this
// unique for the lifetime of one invocation.
func TempBranchName() string {
	return fmt.Sprintf("sweepit-rebase-temp-%d", os.Getpid())
}

// BackupTagName derives a tag name from a branch by slugifying it and
// appending a timestamp.
func BackupTagName(branchName string, now time.Time) string {
	return fmt.Sprintf("sweepit-backup/%s-%s", utils.SanitizeBranchName(branchName), now.Format("20060102-150405"))
}

// NewCherryPickSession validates the target, resolves it to its
// remote-tracking counterpart when one exists, and creates and checks out
// the temporary replay branch from that ref.
func NewCherryPickSession(ctx context.Context, runner *git.CommandRunner, remote, target string) (*CherryPickSession, error) {
	if !utils.IsValidBranchName(target) {
		return nil, sweepiterrors.NewInvalidReferenceError(target)
	}

	currentBranch, err := runner.GetCurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	qualified := runner.RemoteTrackingRef(ctx, remote, target)
	if !runner.BranchExists(ctx, qualified) {
		return nil, sweepiterrors.NewTargetNotFoundError(target)
	}

	session := &CherryPickSession{
		runner:        runner,
		CurrentBranch: currentBranch,
		TargetBranch:  qualified,
		TempBranch:    TempBranchName(),
	}

	if err := runner.CreateAndCheckoutBranch(ctx, session.TempBranch, qualified); err != nil {
		return nil, fmt.Errorf("failed to create temporary branch: %w", err)
	}

	commits, err := runner.GetCommitsInRange(ctx, qualified, session.CurrentBranch)
	if err != nil {
		session.Cleanup(ctx)
		return nil, fmt.Errorf("failed to compute commits to replay: %w", err)
	}
	session.Queue = commits

	return session, nil
}

// Remaining returns the commits not yet replayed
func (s *CherryPickSession) Remaining() []string {
	return s.Queue[s.cursor:]
}

// PickNext replays the next queued commit onto the temporary branch.
// Returns false when the queue is exhausted.
func (s *CherryPickSession) PickNext(ctx context.Context, allowEmpty bool) (bool, error) {
	if s.cursor >= len(s.Queue) {
		return false, nil
	}
	sha := s.Queue[s.cursor]
	if err := s.runner.CherryPick(ctx, sha, allowEmpty); err != nil {
		return false, err
	}
	s.cursor++
	return true, nil
}

// Continue resumes the replay after conflicts have been staged
func (s *CherryPickSession) Continue(ctx context.Context) error {
	if err := s.runner.CherryPickContinue(ctx); err != nil {
		return err
	}
	s.cursor++
	return nil
}

// Skip drops the commit currently being replayed
func (s *CherryPickSession) Skip(ctx context.Context) error {
	if err := s.runner.CherryPickSkip(ctx); err != nil {
		return err
	}
	s.cursor++
	return nil
}

// KeepEmpty concludes a pick whose staged resolution produced no changes
// by recording it as an empty commit
func (s *CherryPickSession) KeepEmpty(ctx context.Context) error {
	if err := s.runner.CherryPickCommitEmpty(ctx); err != nil {
		return err
	}
	s.cursor++
	return nil
}

// Abort aborts the in-progress cherry-pick. It is best-effort and
// swallows its own failure so it never masks the original error.
func (s *CherryPickSession) Abort(ctx context.Context) {
	_ = s.runner.CherryPickAbort(ctx)
}

// ResolveWith blanket-accepts one side for all conflicted paths and
// stages the result
func (s *CherryPickSession) ResolveWith(ctx context.Context, side git.ConflictSide) error {
	return s.runner.ResolveConflictsWith(ctx, side)
}

// Finish relocates the original branch to the temporary branch's tip.
// When createBackup is set, the original tip is tagged first; tag
// creation failure aborts the finish and leaves the branch untouched.
// The hard reset is the only destructive step of the whole flow.
func (s *CherryPickSession) Finish(ctx context.Context, createBackup bool) error {
	if err := s.runner.CheckoutBranch(ctx, s.CurrentBranch); err != nil {
		return fmt.Errorf("failed to check out %s: %w", s.CurrentBranch, err)
	}

	if createBackup {
		tip, err := s.runner.RevParse(ctx, s.CurrentBranch)
		if err != nil {
			return sweepiterrors.NewBackupFailedError(s.CurrentBranch, "", err)
		}
		tagName := BackupTagName(s.CurrentBranch, time.Now())
		message := fmt.Sprintf("sweepit backup of %s before rebase onto %s", s.CurrentBranch, s.TargetBranch)
		if err := s.runner.CreateAnnotatedTag(ctx, tagName, tip, message); err != nil {
			return sweepiterrors.NewBackupFailedError(s.CurrentBranch, tagName, err)
		}
		s.BackupTag = tagName
	}

	if err := s.runner.HardReset(ctx, s.TempBranch); err != nil {
		return fmt.Errorf("failed to move %s to replayed history: %w", s.CurrentBranch, err)
	}
	return nil
}

// Cleanup removes the temporary branch, switching back to the original
// branch first if it is still checked out. All failures are swallowed:
// an orphan temp branch is harmless residue, not corruption.
func (s *CherryPickSession) Cleanup(ctx context.Context) {
	current, err := s.runner.GetCurrentBranch(ctx)
	if err == nil && current == s.TempBranch {
		_ = s.runner.CheckoutBranch(ctx, s.CurrentBranch)
	}
	_ = s.runner.DeleteBranch(ctx, s.TempBranch, true)
}

// CherryPickRebase rebases the currently checked-out branch onto the
// target by replaying its commits one at a time on an isolated temporary
// branch, then atomically relocating the branch on success.
func CherryPickRebase(ctx context.Context, rt *runtime.Context, opts CherryPickOptions) error {
	runner := rt.Runner

	// Name validation comes before any subprocess, including the
	// in-progress guards and the autostash
	if !utils.IsValidBranchName(opts.Target) {
		return sweepiterrors.NewInvalidReferenceError(opts.Target)
	}

	if runner.IsRebaseInProgress(ctx) || runner.IsCherryPickInProgress(ctx) {
		return fmt.Errorf("another rebase or cherry-pick is already in progress; finish or abort it first")
	}

	stashRef, err := stashIfDirty(ctx, rt)
	if err != nil {
		return err
	}
	// Restore the autostash on every exit, error paths included
	defer popStash(ctx, rt, stashRef)

	opts.report("Preparing temporary branch from %s", opts.Target)
	session, err := NewCherryPickSession(ctx, runner, rt.Config.GetRemote(), opts.Target)
	if err != nil {
		return err
	}

	total := len(session.Queue)
	for i := 0; ; i++ {
		ok, err := session.PickNext(ctx, opts.AllowEmpty)
		if err != nil {
			if !opts.AutoResolve {
				session.Abort(ctx)
				session.Cleanup(ctx)
				return fmt.Errorf("conflict while replaying commit %d of %d: %w", i+1, total, err)
			}

			opts.report("Conflict on commit %d of %d, taking %s side", i+1, total, opts.Strategy)
			if resolveErr := session.ResolveWith(ctx, opts.Strategy); resolveErr != nil {
				session.Abort(ctx)
				session.Cleanup(ctx)
				return fmt.Errorf("automatic resolution failed: %w", resolveErr)
			}
			if continueErr := session.Continue(ctx); continueErr != nil {
				// A blanket resolution that reproduces the upstream
				// content leaves nothing to commit and --continue
				// refuses the pick. Keep it as an empty commit when
				// asked to, drop it otherwise.
				var emptyErr error
				if opts.AllowEmpty {
					emptyErr = session.KeepEmpty(ctx)
				} else {
					emptyErr = session.Skip(ctx)
				}
				if emptyErr != nil {
					session.Abort(ctx)
					session.Cleanup(ctx)
					return fmt.Errorf("failed to continue after automatic resolution: %w", continueErr)
				}
			}
			continue
		}
		if !ok {
			break
		}
		opts.report("Replayed commit %d of %d", i+1, total)
	}

	if err := session.Finish(ctx, opts.CreateBackup); err != nil {
		session.Cleanup(ctx)
		return err
	}
	if session.BackupTag != "" {
		opts.report("Created backup tag %s", session.BackupTag)
	}
	session.Cleanup(ctx)

	opts.report("Rebased %s onto %s", session.CurrentBranch, session.TargetBranch)
	return nil
}
