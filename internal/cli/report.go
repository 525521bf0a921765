package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/gotable/internal/ledger"
)

func newReportCmd(a *app) *cobra.Command {
	var user, from, to, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show monthly income, expense and balance of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			current := time.Now().Format(ledger.PeriodLayout)
			if from == "" {
				from = current
			}
			if to == "" {
				to = current
			}

			txs, err := a.repo.ListByUser(cmd.Context(), user)
			if err != nil {
				return err
			}

			summary, err := ledger.Summarize(user, from, to, ledger.BuildReports(txs))
			if err != nil {
				return err
			}

			return renderSummary(cmd.OutOrStdout(), summary, output, a.cfg.Currency, a.cfg.Locale)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "owner of the transactions (required)")
	cmd.Flags().StringVar(&from, "from", "", "first period as yyyy-MM (default current month)")
	cmd.Flags().StringVar(&to, "to", "", "last period as yyyy-MM (default current month)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
