// Package ledger stores personal income and expense transactions and
// derives monthly reports from them.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Alp4ka/gotable"
)

// Type is the kind of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction is a single ledger entry. Amount is expressed in minor units
// of the configured currency.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:128;index;not null" json:"userId"`
	Type        Type      `gorm:"size:16;not null" json:"type"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:64" json:"category"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Period returns the "yyyy-MM" month the transaction belongs to.
func (t Transaction) Period() string {
	return t.Date.Format(PeriodLayout)
}

func (t Transaction) Validate() error {
	switch {
	case t.UserID == "":
		return fmt.Errorf("%w: empty user id", ErrInvalidTransaction)
	case !t.Type.Valid():
		return fmt.Errorf("%w: unknown type '%s'", ErrInvalidTransaction, t.Type)
	case t.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidTransaction, t.Amount)
	case t.Date.IsZero():
		return fmt.Errorf("%w: empty date", ErrInvalidTransaction)
	}

	return nil
}

// SearchFields are the fields matched by the free-text query.
var SearchFields = []string{"description", "category"}

// Columns maps the field names exposed to filters, search and sorting to
// the database columns. "period" has no column and is only available in
// memory.
var Columns = gotable.ColumnMapping{
	"id":          "id",
	"userId":      "user_id",
	"type":        "type",
	"amount":      "amount",
	"category":    "category",
	"description": "description",
	"date":        "date",
}

// Getters returns the field accessors of a transaction.
func Getters() gotable.Getters[Transaction] {
	return gotable.Getters[Transaction]{
		"id":          func(t Transaction) any { return t.ID },
		"userId":      func(t Transaction) any { return t.UserID },
		"type":        func(t Transaction) any { return string(t.Type) },
		"amount":      func(t Transaction) any { return t.Amount },
		"category":    func(t Transaction) any { return t.Category },
		"description": func(t Transaction) any { return t.Description },
		"date":        func(t Transaction) any { return t.Date },
		"period":      func(t Transaction) any { return t.Period() },
	}
}
