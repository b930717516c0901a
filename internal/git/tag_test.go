package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/testhelpers"
)

func TestCreateAnnotatedTag(t *testing.T) {
	t.Run("creates a resolvable annotated tag", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("initial commit", "init")
		})
		runner := git.NewCommandRunner(scene.Dir)
		ctx := context.Background()

		tip, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		err = runner.CreateAnnotatedTag(ctx, "backup/main-20260101", tip, "recovery anchor")
		require.NoError(t, err)
		require.True(t, runner.TagExists(ctx, "backup/main-20260101"))

		// The tag must dereference to the tip it anchors
		tagged, err := scene.Repo.GetRevision("backup/main-20260101^{commit}")
		require.NoError(t, err)
		require.Equal(t, tip, tagged)
	})

	t.Run("fails on duplicate tag names", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("initial commit", "init")
		})
		runner := git.NewCommandRunner(scene.Dir)
		ctx := context.Background()

		tip, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		require.NoError(t, runner.CreateAnnotatedTag(ctx, "anchor", tip, "first"))
		require.Error(t, runner.CreateAnnotatedTag(ctx, "anchor", tip, "second"))
	})
}
