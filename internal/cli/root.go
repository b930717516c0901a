// Package cli wires the cobra command tree. Commands stay thin: they
// parse flags, build a runtime context and delegate to actions.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sweepit",
		Short: "Sweepit keeps your git branches tidy and rebases them safely",
		Long: `Sweepit is a command line companion for git branch hygiene: it reviews
merged branches for deletion and rebases branches onto a new base with
conflict handling and backup tags.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newRebaseCmd())

	return rootCmd
}
