package cli

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Alp4ka/gotable"
	"github.com/Alp4ka/gotable/internal/config"
	"github.com/Alp4ka/gotable/internal/ledger"
)

var testConfig = &config.Config{
	DefaultPageSize: 10,
	MaxPageSize:     100,
	Currency:        "USD",
	Locale:          "en",
}

// newTransactions returns 25 transactions of March 2024; the first 15 are
// food expenses.
func newTransactions() []ledger.Transaction {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	return lo.Times(25, func(i int) ledger.Transaction {
		tx := ledger.Transaction{
			ID:          uint(i + 1),
			UserID:      "ana",
			Type:        ledger.TypeExpense,
			Amount:      int64(100 * (i + 1)),
			Category:    "food",
			Description: fmt.Sprintf("Purchase %02d", i+1),
			Date:        start.AddDate(0, 0, i),
		}
		if i >= 15 {
			tx.Type = ledger.TypeIncome
			tx.Category = "salary"
		}

		return tx
	})
}

func TestMemoryPage_FilterThenPaginate(t *testing.T) {
	state, err := buildFilterState("", []string{"type=EXPENSE", "category=food"})
	require.NoError(t, err)

	page, err := memoryPage(newTransactions(), state, &listOptions{page: 1}, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 15, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.PageIndex)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasNextPage)
	assert.Equal(t, uint(11), page.Items[0].ID)
}

func TestMemoryPage_SearchAndSort(t *testing.T) {
	state, err := buildFilterState("PURCHASE 2", nil)
	require.NoError(t, err)

	page, err := memoryPage(newTransactions(), state, &listOptions{sorts: []string{"amount desc"}}, testConfig)
	require.NoError(t, err)

	ids := lo.Map(page.Items, func(tx ledger.Transaction, _ int) uint { return tx.ID })
	assert.Equal(t, []uint{25, 24, 23, 22, 21, 20}, ids)
}

func TestMemoryPage_PageToken(t *testing.T) {
	opts := &listOptions{pageSize: 5, pageToken: gotable.NewPageToken(4).String(), page: 1}

	page, err := memoryPage(newTransactions(), gotable.EmptyFilterState(), opts, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 4, page.PageIndex)
	assert.Equal(t, 5, page.TotalPages)
	assert.Empty(t, page.NextPageToken)
}

func TestMemoryPage_OutOfRangeStaysOnFirstPage(t *testing.T) {
	page, err := memoryPage(newTransactions(), gotable.EmptyFilterState(), &listOptions{page: 7}, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 0, page.PageIndex)
	assert.Len(t, page.Items, 10)
	assert.NotEmpty(t, page.NextPageToken)
}

func TestMemoryPage_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts *listOptions
	}{
		{"negative page size", &listOptions{pageSize: -3}},
		{"unknown sort field", &listOptions{sorts: []string{"amout desc"}}},
		{"bad sort direction", &listOptions{sorts: []string{"amount down"}}},
		{"bad page token", &listOptions{pageToken: "%%%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memoryPage(newTransactions(), gotable.EmptyFilterState(), tt.opts, testConfig)
			require.Error(t, err)
		})
	}
}

func newServerApp(t *testing.T) (*app, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return &app{cfg: testConfig, db: db, repo: ledger.NewRepository(db)}, mock
}

func TestServerPage_OutOfRangeMatchesMemory(t *testing.T) {
	tests := []struct {
		name string
		opts *listOptions
	}{
		{"page flag", &listOptions{user: "ana", page: 7}},
		{"huge page token", &listOptions{user: "ana", pageToken: gotable.NewPageToken(math.MaxInt/10 + 1).String()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, mock := newServerApp(t)

			rows := sqlmock.NewRows([]string{
				"id", "user_id", "type", "amount", "category", "description", "date", "created_at", "updated_at",
			})
			for _, tx := range newTransactions()[:10] {
				rows.AddRow(int64(tx.ID), tx.UserID, string(tx.Type), tx.Amount, tx.Category, tx.Description, tx.Date, tx.Date, tx.Date)
			}
			mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions` WHERE user_id = \\?").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
			mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions` WHERE user_id = \\?").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
			mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\?").
				WillReturnRows(rows)

			server, err := a.serverPage(context.Background(), gotable.EmptyFilterState(), tt.opts)
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())

			memory, err := memoryPage(newTransactions(), gotable.EmptyFilterState(), tt.opts, testConfig)
			require.NoError(t, err)

			txIDs := func(txs []ledger.Transaction) []uint {
				return lo.Map(txs, func(tx ledger.Transaction, _ int) uint { return tx.ID })
			}
			assert.Equal(t, 0, server.PageIndex)
			assert.Equal(t, memory.PageIndex, server.PageIndex)
			assert.Equal(t, memory.TotalPages, server.TotalPages)
			assert.Equal(t, txIDs(memory.Items), txIDs(server.Items))
			assert.False(t, server.HasPreviousPage)
		})
	}
}

func TestRequestedPage(t *testing.T) {
	got, err := requestedPage(&listOptions{page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = requestedPage(&listOptions{page: 3, pageToken: gotable.NewPageToken(5).String()})
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	_, err = requestedPage(&listOptions{pageToken: "%%%"})
	require.Error(t, err)
}
