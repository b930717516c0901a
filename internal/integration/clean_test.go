package integration

import "testing"

func TestCleanCommand(t *testing.T) {
	binary := getSweepitBinary(t)

	t.Run("force-deletes merged branches and keeps unmerged ones", func(t *testing.T) {
		shell := NewTestShell(t, binary)

		shell.
			Git("branch done").
			Git("checkout -b wip").
			Commit("wip", "wip change").
			Checkout("main")

		shell.Run("clean -f").
			HasBranches("main", "wip")
	})

	t.Run("refuses to delete without a terminal or --force", func(t *testing.T) {
		shell := NewTestShell(t, binary)

		shell.Git("branch done")

		shell.RunExpectError("clean").
			HasBranches("main", "done")
	})

	t.Run("deletes merged remote branches with --remote", func(t *testing.T) {
		shell := NewTestShellWithRemote(t, binary)

		shell.
			Git("branch old-feature").
			Git("push origin old-feature")

		shell.Run("clean -r -f")

		shell.Git("branch -r").
			OutputContains("origin/main").
			OutputNotContains("origin/old-feature")
	})
}
