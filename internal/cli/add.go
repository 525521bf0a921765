package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/gotable/internal/ledger"
)

type addOptions struct {
	user        string
	txType      string
	amount      int64
	category    string
	description string
	date        string
}

func newAddCmd(a *app) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or an expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tx, err := opts.transaction(time.Now())
			if err != nil {
				return err
			}

			if err = a.repo.Create(cmd.Context(), &tx); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created transaction %d\n", tx.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "owner of the transaction (required)")
	cmd.Flags().StringVar(&opts.txType, "type", "", "income or expense (required)")
	cmd.Flags().Int64Var(&opts.amount, "amount", 0, "positive amount in minor units, e.g. 4500 for 45.00 (required)")
	cmd.Flags().StringVar(&opts.category, "category", "", "category")
	cmd.Flags().StringVar(&opts.description, "description", "", "description")
	cmd.Flags().StringVar(&opts.date, "date", "", "date as yyyy-MM-dd (default today)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (o *addOptions) transaction(now time.Time) (ledger.Transaction, error) {
	txType, err := parseType(o.txType)
	if err != nil {
		return ledger.Transaction{}, err
	}

	date, err := parseDate(o.date, now)
	if err != nil {
		return ledger.Transaction{}, err
	}

	tx := ledger.Transaction{
		UserID:      o.user,
		Type:        txType,
		Amount:      o.amount,
		Category:    o.category,
		Description: o.description,
		Date:        date,
	}

	return tx, tx.Validate()
}
