package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var id uint

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.repo.Delete(cmd.Context(), id); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
			return err
		},
	}

	cmd.Flags().UintVar(&id, "id", 0, "transaction id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
