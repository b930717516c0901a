package cli

import (
	"github.com/spf13/cobra"

	"sweepit.dev/sweepit/internal/actions"
	"sweepit.dev/sweepit/internal/runtime"
)

// newCleanCmd creates the clean command
func newCleanCmd() *cobra.Command {
	var (
		includeRemote bool
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Review and delete branches that are merged into the current branch",
		Long: `Review and delete merged branches.

Protected branches and the current checkout are never offered. Without
--force, an interactive selection is shown before anything is deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext()
			if err != nil {
				return err
			}

			_, err = actions.Clean(cmd.Context(), rt, actions.CleanOptions{
				IncludeRemote: includeRemote,
				Force:         force,
			})
			return err
		},
	}

	cmd.Flags().BoolVarP(&includeRemote, "remote", "r", false, "Also offer merged remote branches for deletion.")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete all merged branches without prompting.")

	return cmd
}
