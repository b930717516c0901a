package actions_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sweepit.dev/sweepit/internal/actions"
	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/testhelpers"

	sweepiterrors "sweepit.dev/sweepit/internal/errors"
)

func TestTempBranchName(t *testing.T) {
	name := actions.TempBranchName()
	require.Equal(t, fmt.Sprintf("sweepit-rebase-temp-%d", os.Getpid()), name)
}

func TestBackupTagName(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "sweepit-backup/feature-login-20260102-150405", actions.BackupTagName("feature/login", now))
}

// divergedScene builds a repo where feature has two commits of its own and
// main has advanced past the fork point, without touching the same files.
func divergedScene(t *testing.T) *testhelpers.Scene {
	t.Helper()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("initial commit", "init")
	})

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("c1", "c1"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("c2", "c2"))

	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("m1", "m1"))
	require.NoError(t, scene.Repo.CheckoutBranch("feature"))

	return scene
}

// conflictScene builds a repo where feature and main both rewrite the same
// file, so any replay of feature onto main conflicts.
func conflictScene(t *testing.T) *testhelpers.Scene {
	t.Helper()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("base content", "shared")
	})

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("feature version", "shared"))

	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("main version", "shared"))
	require.NoError(t, scene.Repo.CheckoutBranch("feature"))

	return scene
}

func TestCherryPickRebase(t *testing.T) {
	t.Run("replays commits onto the target and relocates the branch", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{Target: "main"})
		require.NoError(t, err)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "feature", current)

		// feature now contains main's tip and exactly its own two commits on top
		mainTip, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		isAncestor, err := rt.Runner.IsAncestor(ctx, mainTip, "feature")
		require.NoError(t, err)
		require.True(t, isAncestor)

		count, err := scene.Repo.GetCommitCount("main", "feature")
		require.NoError(t, err)
		require.Equal(t, 2, count)

		// the temporary branch never survives a run
		require.False(t, rt.Runner.BranchExists(ctx, actions.TempBranchName()))
	})

	t.Run("creates a backup tag anchoring the pre-rebase tip", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		originalTip, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)

		var backupTag string
		err = actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{
			Target:       "main",
			CreateBackup: true,
			Progress: func(msg string) {
				var tag string
				if _, scanErr := fmt.Sscanf(msg, "Created backup tag %s", &tag); scanErr == nil {
					backupTag = tag
				}
			},
		})
		require.NoError(t, err)
		require.NotEmpty(t, backupTag)
		require.True(t, scene.Repo.TagExists(backupTag))

		tagged, err := scene.Repo.GetRevision(backupTag + "^{commit}")
		require.NoError(t, err)
		require.Equal(t, originalTip, tagged)
	})

	t.Run("aborts on conflict and leaves the branch untouched", func(t *testing.T) {
		scene := conflictScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		originalTip, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)

		err = actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{Target: "main"})
		require.Error(t, err)

		tip, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.Equal(t, originalTip, tip)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "feature", current)

		require.False(t, rt.Runner.IsCherryPickInProgress(ctx))
		require.False(t, rt.Runner.BranchExists(ctx, actions.TempBranchName()))
	})

	t.Run("auto-resolves conflicts taking the replayed side", func(t *testing.T) {
		scene := conflictScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{
			Target:      "main",
			AutoResolve: true,
			Strategy:    git.ConflictTheirs,
		})
		require.NoError(t, err)

		mainTip, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		isAncestor, err := rt.Runner.IsAncestor(ctx, mainTip, "feature")
		require.NoError(t, err)
		require.True(t, isAncestor)

		content, err := os.ReadFile(filepath.Join(scene.Dir, "shared_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "feature version", string(content))
	})

	t.Run("stashes and restores uncommitted changes", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.CreateChange("work in progress", "wip", true))

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{Target: "main"})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(scene.Dir, "wip_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "work in progress", string(content))
	})

	t.Run("invalid target on a dirty tree touches nothing", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.CreateChange("work in progress", "wip", true))

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{Target: "bad..name"})
		require.True(t, errors.Is(err, sweepiterrors.ErrInvalidReference))

		// the change is still in the working tree and nothing was stashed
		content, err := os.ReadFile(filepath.Join(scene.Dir, "wip_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "work in progress", string(content))

		stashes, err := rt.Runner.StashList(ctx)
		require.NoError(t, err)
		require.Empty(t, stashes)
	})

	t.Run("restores the autostash when the target is missing", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.CreateChange("work in progress", "wip", true))

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{Target: "ghost"})
		require.True(t, errors.Is(err, sweepiterrors.ErrTargetNotFound))

		content, err := os.ReadFile(filepath.Join(scene.Dir, "wip_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "work in progress", string(content))

		stashes, err := rt.Runner.StashList(ctx)
		require.NoError(t, err)
		require.Empty(t, stashes)
	})

	t.Run("restores the autostash after a conflict abort", func(t *testing.T) {
		scene := conflictScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.CreateChange("work in progress", "wip", true))

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{Target: "main"})
		require.Error(t, err)

		content, err := os.ReadFile(filepath.Join(scene.Dir, "wip_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "work in progress", string(content))
	})

	t.Run("auto-resolving with ours drops picks that become empty", func(t *testing.T) {
		scene := conflictScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{
			Target:      "main",
			AutoResolve: true,
			Strategy:    git.ConflictOurs,
		})
		require.NoError(t, err)

		// taking ours reproduces main's content, so the only pick is
		// empty and gets skipped: feature ends up at main's tip
		mainTip, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		featureTip, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.Equal(t, mainTip, featureTip)

		content, err := os.ReadFile(filepath.Join(scene.Dir, "shared_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "main version", string(content))
	})

	t.Run("auto-resolving with ours keeps empty picks when allowed", func(t *testing.T) {
		scene := conflictScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		err := actions.CherryPickRebase(ctx, rt, actions.CherryPickOptions{
			Target:      "main",
			AllowEmpty:  true,
			AutoResolve: true,
			Strategy:    git.ConflictOurs,
		})
		require.NoError(t, err)

		count, err := scene.Repo.GetCommitCount("main", "feature")
		require.NoError(t, err)
		require.Equal(t, 1, count)

		content, err := os.ReadFile(filepath.Join(scene.Dir, "shared_test.txt"))
		require.NoError(t, err)
		require.Equal(t, "main version", string(content))
	})

	t.Run("fails on a target that does not resolve", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)

		err := actions.CherryPickRebase(context.Background(), rt, actions.CherryPickOptions{Target: "ghost"})
		require.True(t, errors.Is(err, sweepiterrors.ErrTargetNotFound))

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "feature", current)
	})

	t.Run("rejects an invalid target name", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)

		err := actions.CherryPickRebase(context.Background(), rt, actions.CherryPickOptions{Target: "bad..name"})
		require.True(t, errors.Is(err, sweepiterrors.ErrInvalidReference))
	})
}

func TestCherryPickSession(t *testing.T) {
	t.Run("queues commits oldest first and drains the queue", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		session, err := actions.NewCherryPickSession(ctx, rt.Runner, "origin", "main")
		require.NoError(t, err)
		defer session.Cleanup(ctx)

		require.Equal(t, "feature", session.CurrentBranch)
		require.Len(t, session.Queue, 2)
		require.Equal(t, session.Queue, session.Remaining())

		ok, err := session.PickNext(ctx, false)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, session.Queue[1:], session.Remaining())

		ok, err = session.PickNext(ctx, false)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = session.PickNext(ctx, false)
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, session.Remaining())
	})

	t.Run("finish fails without moving the branch when the backup cannot be created", func(t *testing.T) {
		scene := divergedScene(t)
		rt := newTestContext(t, scene)
		ctx := context.Background()

		originalTip, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)

		session, err := actions.NewCherryPickSession(ctx, rt.Runner, "origin", "main")
		require.NoError(t, err)
		defer session.Cleanup(ctx)

		for {
			ok, pickErr := session.PickNext(ctx, false)
			require.NoError(t, pickErr)
			if !ok {
				break
			}
		}

		// A tag named exactly "sweepit-backup" blocks every ref under
		// refs/tags/sweepit-backup/, so the backup tag cannot be created
		tip, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.NoError(t, rt.Runner.CreateAnnotatedTag(ctx, "sweepit-backup", tip, "occupied"))

		err = session.Finish(ctx, true)
		require.True(t, errors.Is(err, sweepiterrors.ErrBackupFailed))

		after, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.Equal(t, originalTip, after)
	})
}
