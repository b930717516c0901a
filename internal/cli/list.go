package cli

import (
	"github.com/spf13/cobra"

	"sweepit.dev/sweepit/internal/actions"
	"sweepit.dev/sweepit/internal/output"
	"sweepit.dev/sweepit/internal/runtime"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	var includeRemote bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List branches with merge status and divergence from the base branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext()
			if err != nil {
				return err
			}

			records, err := actions.ListBranches(cmd.Context(), rt, includeRemote)
			if err != nil {
				return err
			}

			currentBranch, _ := rt.Runner.GetCurrentBranch(cmd.Context())
			for _, record := range records {
				rt.Splog.Info("%s", output.FormatBranchRecord(record, currentBranch))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeRemote, "remote", "r", false, "Include remote-tracking branches.")

	return cmd
}
