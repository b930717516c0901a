package runtime

import (
	"fmt"

	"sweepit.dev/sweepit/internal/config"
	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/output"
)

// Context provides access to the git runner, config and output for commands
type Context struct {
	Runner   *git.CommandRunner
	Splog    *output.Splog
	Config   *config.RepoConfig
	RepoRoot string
}

// NewContext creates a context for the repository rooted at repoRoot
func NewContext(repoRoot string) (*Context, error) {
	cfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithConfig(output.GetLogFilePath())
	if err != nil {
		// File logging is best-effort; fall back to console only
		splog = output.NewSplog()
	}

	return &Context{
		Runner:   git.NewCommandRunner(repoRoot),
		Splog:    splog,
		Config:   cfg,
		RepoRoot: repoRoot,
	}, nil
}

// GetContext discovers the repository containing the current working
// directory and builds a context for it
func GetContext() (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return NewContext(repoRoot)
}
