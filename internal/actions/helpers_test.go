package actions_test

import (
	"testing"

	"sweepit.dev/sweepit/internal/config"
	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/output"
	"sweepit.dev/sweepit/internal/runtime"
	"sweepit.dev/sweepit/testhelpers"
)

// newTestContext builds a runtime context bound to the scene's repository
// with console output silenced.
func newTestContext(t *testing.T, scene *testhelpers.Scene) *runtime.Context {
	t.Helper()

	splog := output.NewSplog()
	splog.SetQuiet(true)

	return &runtime.Context{
		Runner:   git.NewCommandRunner(scene.Dir),
		Splog:    splog,
		Config:   &config.RepoConfig{},
		RepoRoot: scene.Dir,
	}
}
