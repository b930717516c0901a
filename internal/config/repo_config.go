// Package config provides repository configuration management,
// including reading and writing sweepit configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sweepit.dev/sweepit/internal/utils"
)

// ConfigFileName is the repo config file, stored inside .git so it never
// ends up committed.
const ConfigFileName = ".sweepit_config"

// RepoConfig represents the repository configuration
type RepoConfig struct {
	// Remote is the remote probed for base branches, "origin" if unset
	Remote *string `json:"remote,omitempty"`
	// BaseCandidates overrides the base-branch preference order
	BaseCandidates []string `json:"baseCandidates,omitempty"`
	// ProtectedBranches are never offered for deletion
	ProtectedBranches []string `json:"protectedBranches,omitempty"`
	// AutoResolveStrategy is the conflict side taken by the
	// auto-continue rebase path: "ours" (default) or "theirs"
	AutoResolveStrategy *string `json:"autoResolveStrategy,omitempty"`
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ConfigFileName)
}

// GetRepoConfig reads the repository configuration. A missing file yields
// the default configuration.
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// Save writes the repository configuration
func (c *RepoConfig) Save(repoRoot string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize repo config: %w", err)
	}
	if err := os.WriteFile(configPath(repoRoot), data, 0o644); err != nil {
		return fmt.Errorf("failed to write repo config: %w", err)
	}
	return nil
}

// GetRemote returns the configured remote, or "origin"
func (c *RepoConfig) GetRemote() string {
	if c.Remote != nil && *c.Remote != "" {
		return *c.Remote
	}
	return "origin"
}

// GetBaseCandidates returns the configured base-branch preference order,
// or the default {main, master, develop}
func (c *RepoConfig) GetBaseCandidates() []string {
	if len(c.BaseCandidates) > 0 {
		return c.BaseCandidates
	}
	return []string{"main", "master", "develop"}
}

// GetAutoResolveStrategy returns the conflict side for automatic
// resolution, defaulting to "ours"
func (c *RepoConfig) GetAutoResolveStrategy() string {
	if c.AutoResolveStrategy != nil && *c.AutoResolveStrategy != "" {
		return *c.AutoResolveStrategy
	}
	return "ours"
}

// IsProtected reports whether a branch may not be deleted. The base
// candidates are always protected in addition to the configured list.
func (c *RepoConfig) IsProtected(branchName string) bool {
	if utils.ContainsString(c.GetBaseCandidates(), branchName) {
		return true
	}
	return utils.ContainsString(c.ProtectedBranches, branchName)
}
