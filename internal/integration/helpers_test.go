package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sweepit.dev/sweepit/testhelpers"
)

// TestShell wraps a test scene and provides a fluent interface for running
// commands. Tests using this read like a series of terminal commands.
type TestShell struct {
	t          *testing.T
	scene      *testhelpers.Scene
	binaryPath string
	lastOutput string
}

// NewTestShell creates a shell-like test environment with an initialized repo.
func NewTestShell(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("initial", "init")
	})
	return &TestShell{t: t, scene: scene, binaryPath: binaryPath}
}

// NewTestShellWithRemote creates a shell-like test environment with a local
// bare repo as "origin" and main pushed to it.
func NewTestShellWithRemote(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateChangeAndCommit("initial", "init"); err != nil {
			return err
		}
		if _, err := s.Repo.CreateBareRemote("origin"); err != nil {
			return err
		}
		return s.Repo.PushBranch("origin", "main")
	})
	return &TestShell{t: t, scene: scene, binaryPath: binaryPath}
}

// Scene returns the underlying test scene for direct access when needed.
func (s *TestShell) Scene() *testhelpers.Scene {
	return s.scene
}

// Dir returns the working directory of the test shell.
func (s *TestShell) Dir() string {
	return s.scene.Dir
}

// run executes the binary and captures combined output. Prompting is
// disabled and log output is redirected into the scene directory so test
// runs leave no trace in the user's home.
func (s *TestShell) run(args string) ([]byte, error) {
	parts := splitArgs(args)
	cmd := exec.Command(s.binaryPath, parts...)
	cmd.Dir = s.scene.Dir
	cmd.Env = append(os.Environ(),
		"SWEEPIT_NON_INTERACTIVE=1",
		"SWEEPIT_LOG_FILE="+filepath.Join(s.scene.Dir, ".sweepit-test.log"),
	)
	return cmd.CombinedOutput()
}

// Run executes a sweepit CLI command (e.g., "rebase main --cherry-pick")
func (s *TestShell) Run(args string) *TestShell {
	s.t.Helper()
	output, err := s.run(args)
	s.lastOutput = string(output)
	require.NoError(s.t, err, "$ sweepit %s\n%s", args, s.lastOutput)
	return s
}

// RunExpectError executes a sweepit CLI command and expects it to fail.
func (s *TestShell) RunExpectError(args string) *TestShell {
	s.t.Helper()
	output, err := s.run(args)
	s.lastOutput = string(output)
	require.Error(s.t, err, "$ sweepit %s (expected error)\n%s", args, s.lastOutput)
	return s
}

// Git executes a raw git command (use sparingly, prefer sweepit commands)
func (s *TestShell) Git(args string) *TestShell {
	s.t.Helper()
	parts := splitArgs(args)
	cmd := exec.Command("git", parts...)
	cmd.Dir = s.scene.Dir
	output, err := cmd.CombinedOutput()
	s.lastOutput = string(output)
	require.NoError(s.t, err, "$ git %s\n%s", args, s.lastOutput)
	return s
}

// Commit creates a file change and commits it
func (s *TestShell) Commit(filename, message string) *TestShell {
	s.t.Helper()
	err := s.scene.Repo.CreateChangeAndCommit(message, filename)
	require.NoError(s.t, err, "failed to commit %s", filename)
	return s
}

// Checkout switches to a branch with raw git
func (s *TestShell) Checkout(branch string) *TestShell {
	s.t.Helper()
	return s.Git("checkout " + branch)
}

// Output returns the last command's output
func (s *TestShell) Output() string {
	return s.lastOutput
}

// OutputContains asserts the last output contains the given string
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// OutputNotContains asserts the last output does NOT contain the given string
func (s *TestShell) OutputNotContains(substr string) *TestShell {
	s.t.Helper()
	require.NotContains(s.t, s.lastOutput, substr)
	return s
}

// OnBranch asserts we're on the expected branch
func (s *TestShell) OnBranch(expected string) *TestShell {
	s.t.Helper()
	branch, err := s.scene.Repo.CurrentBranchName()
	require.NoError(s.t, err)
	require.Equal(s.t, expected, branch)
	return s
}

// HasBranches asserts the repo has exactly these local branches
func (s *TestShell) HasBranches(branches ...string) *TestShell {
	s.t.Helper()
	actual, err := s.scene.Repo.GetLocalBranches()
	require.NoError(s.t, err)
	require.ElementsMatch(s.t, branches, actual)
	return s
}

// CommitCount asserts the number of commits between two refs
func (s *TestShell) CommitCount(from, to string, expected int) *TestShell {
	s.t.Helper()
	count, err := s.scene.Repo.GetCommitCount(from, to)
	require.NoError(s.t, err)
	require.Equal(s.t, expected, count, "expected %d commits between %s..%s, got %d", expected, from, to, count)
	return s
}

// splitArgs splits a command string into args, respecting quotes
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			switch {
			case inQuote && r == quoteChar:
				inQuote = false
			case !inQuote:
				inQuote = true
				quoteChar = r
			default:
				current.WriteRune(r)
			}
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
