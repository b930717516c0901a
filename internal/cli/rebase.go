package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sweepit.dev/sweepit/internal/actions"
	"sweepit.dev/sweepit/internal/git"
	"sweepit.dev/sweepit/internal/runtime"
)

// newRebaseCmd creates the rebase command
func newRebaseCmd() *cobra.Command {
	var (
		cherryPick         bool
		backup             bool
		allowEmpty         bool
		continueOnConflict bool
		push               bool
	)

	cmd := &cobra.Command{
		Use:   "rebase <target>",
		Short: "Rebase the current branch onto a new base",
		Long: `Rebase the current branch onto a new base.

By default git's native rebase is used. With --cherry-pick, commits are
replayed one at a time onto an isolated temporary branch and the original
branch is only moved once the whole replay succeeded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext()
			if err != nil {
				return err
			}

			target := args[0]
			strategy := git.ConflictSide(rt.Config.GetAutoResolveStrategy())
			progress := func(msg string) { rt.Splog.Info("%s", msg) }

			if cherryPick {
				if push {
					return fmt.Errorf("--push is only supported with the native rebase strategy")
				}
				return actions.CherryPickRebase(cmd.Context(), rt, actions.CherryPickOptions{
					Target:       target,
					CreateBackup: backup,
					AllowEmpty:   allowEmpty,
					AutoResolve:  continueOnConflict,
					Strategy:     strategy,
					Progress:     progress,
				})
			}

			return actions.LinearRebase(cmd.Context(), rt, actions.LinearRebaseOptions{
				Target:             target,
				ContinueOnConflict: continueOnConflict,
				Strategy:           strategy,
				Push:               push,
				Progress:           progress,
			})
		},
	}

	cmd.Flags().BoolVar(&cherryPick, "cherry-pick", false, "Replay commits one at a time on a temporary branch instead of a native rebase.")
	cmd.Flags().BoolVarP(&backup, "backup", "b", false, "Tag the branch's previous tip before moving it (cherry-pick strategy only).")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Keep commits that become empty because their change already exists upstream.")
	cmd.Flags().BoolVar(&continueOnConflict, "continue-on-conflict", false, "Resolve conflicts automatically with the configured side and continue.")
	cmd.Flags().BoolVar(&push, "push", false, "Force-with-lease push the branch after a successful rebase.")

	return cmd
}
