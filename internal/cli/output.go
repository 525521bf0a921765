package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Alp4ka/gotable"
	"github.com/Alp4ka/gotable/internal/ledger"
)

const tabPadding = 2

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func renderTransactions(w io.Writer, page gotable.Page[ledger.Transaction], format, currencyCode, locale string) error {
	if format == outputJSON {
		return renderJSON(w, page)
	}

	if page.TotalItems == 0 {
		_, err := fmt.Fprintln(w, "No transactions found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tType\tCategory\tDescription\tAmount")
	fmt.Fprintln(tw, "--\t----\t----\t--------\t-----------\t------")

	for _, tx := range page.Items {
		amount, err := ledger.FormatAmount(tx.Amount, currencyCode, locale)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(time.DateOnly), tx.Type, tx.Category, tx.Description, amount)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d transactions)\n", page.PageIndex+1, max(page.TotalPages, 1), page.TotalItems)
	if page.NextPageToken != "" {
		fmt.Fprintf(w, "Next page: --page-token %s\n", page.NextPageToken)
	}

	return nil
}

func renderSummary(w io.Writer, summary ledger.Summary, format, currencyCode, locale string) error {
	if format == outputJSON {
		return renderJSON(w, summary)
	}

	money := func(amount int64) string {
		s, err := ledger.FormatAmount(amount, currencyCode, locale)
		if err != nil {
			return fmt.Sprint(amount)
		}
		return s
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Period\tIncome\tExpense\tBalance")
	fmt.Fprintln(tw, "------\t------\t-------\t-------")

	for _, r := range summary.Reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Period, money(r.TotalIncome), money(r.TotalExpense), money(r.Balance))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t%s\n", money(summary.TotalIncome), money(summary.TotalExpense), money(summary.Balance))

	return tw.Flush()
}
