package ledger

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

// PeriodLayout is the layout of a report period, e.g. "2024-03".
const PeriodLayout = "2006-01"

var ErrInvalidPeriod = errors.New("invalid period")

// ParsePeriod parses a "yyyy-MM" period into the first instant of the month
// in UTC.
func ParsePeriod(period string) (time.Time, error) {
	start, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w '%s': expected yyyy-MM", ErrInvalidPeriod, period)
	}

	return start, nil
}

// Report holds the totals of a user over one month.
type Report struct {
	UserID       string `json:"userId"`
	Period       string `json:"period"`
	TotalIncome  int64  `json:"totalIncome"`
	TotalExpense int64  `json:"totalExpense"`
	Balance      int64  `json:"balance"`
}

func (r *Report) add(tx Transaction) {
	switch tx.Type {
	case TypeIncome:
		r.TotalIncome += tx.Amount
	case TypeExpense:
		r.TotalExpense += tx.Amount
	}
	r.Balance = r.TotalIncome - r.TotalExpense
}

// Summary aggregates the reports of a user over a range of periods.
type Summary struct {
	UserID       string   `json:"userId"`
	StartPeriod  string   `json:"startPeriod"`
	EndPeriod    string   `json:"endPeriod"`
	Reports      []Report `json:"reports"`
	TotalIncome  int64    `json:"totalIncome"`
	TotalExpense int64    `json:"totalExpense"`
	Balance      int64    `json:"balance"`
}

type reportKey struct {
	userID string
	period string
}

// BuildReports groups transactions by user and month. Invalid transactions
// are ignored. Reports are ordered by user, then period.
func BuildReports(txs []Transaction) []Report {
	valid := lo.Filter(txs, func(tx Transaction, _ int) bool {
		return tx.Validate() == nil
	})

	groups := lo.GroupBy(valid, func(tx Transaction) reportKey {
		return reportKey{userID: tx.UserID, period: tx.Period()}
	})

	reports := lo.MapToSlice(groups, func(key reportKey, group []Transaction) Report {
		report := Report{UserID: key.userID, Period: key.period}
		for _, tx := range group {
			report.add(tx)
		}

		return report
	})

	slices.SortFunc(reports, func(a, b Report) int {
		return cmp.Or(cmp.Compare(a.UserID, b.UserID), cmp.Compare(a.Period, b.Period))
	})

	return reports
}

// Summarize totals the reports of userID whose period falls within
// [from, to], both inclusive.
func Summarize(userID, from, to string, reports []Report) (Summary, error) {
	start, err := ParsePeriod(from)
	if err != nil {
		return Summary{}, err
	}
	end, err := ParsePeriod(to)
	if err != nil {
		return Summary{}, err
	}
	if end.Before(start) {
		return Summary{}, fmt.Errorf("%w: '%s' is after '%s'", ErrInvalidPeriod, from, to)
	}

	summary := Summary{
		UserID:      userID,
		StartPeriod: from,
		EndPeriod:   to,
		Reports: lo.Filter(reports, func(r Report, _ int) bool {
			return r.UserID == userID && r.Period >= from && r.Period <= to
		}),
	}
	slices.SortFunc(summary.Reports, func(a, b Report) int {
		return cmp.Compare(a.Period, b.Period)
	})

	for _, r := range summary.Reports {
		summary.TotalIncome += r.TotalIncome
		summary.TotalExpense += r.TotalExpense
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary, nil
}
