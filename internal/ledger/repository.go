package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Alp4ka/gotable"
)

var ErrNotFound = errors.New("transaction not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, tx *Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("cannot create transaction: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "ledger").
		Uint("id", tx.ID).
		Str("user_id", tx.UserID).
		Msg("transaction created")

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*Transaction, error) {
	var tx Transaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get transaction %d: %w", id, err)
	}

	return &tx, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("cannot list transactions: %w", err)
	}

	return txs, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Transaction, error) {
	var txs []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("cannot list transactions of user '%s': %w", userID, err)
	}

	return txs, nil
}

// ListByPeriod returns the transactions of the user dated within the
// "yyyy-MM" month.
func (r *Repository) ListByPeriod(ctx context.Context, userID, period string) ([]Transaction, error) {
	start, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, start.AddDate(0, 1, 0)).
		Order("date ASC, id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("cannot list transactions of period '%s': %w", period, err)
	}

	return txs, nil
}

// Update overwrites the editable fields of transaction id with those of
// patch. The owner and the creation time never change.
func (r *Repository) Update(ctx context.Context, id uint, patch Transaction) (*Transaction, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Type = patch.Type
	existing.Amount = patch.Amount
	existing.Category = patch.Category
	existing.Description = patch.Description
	existing.Date = patch.Date
	if err = existing.Validate(); err != nil {
		return nil, err
	}

	if err = r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("cannot update transaction %d: %w", id, err)
	}

	return existing, nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("cannot delete transaction %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return nil
}

// Page runs the query against the user's transactions in the database.
// Columns and SearchColumns default to Columns and SearchFields.
func (r *Repository) Page(ctx context.Context, userID string, q gotable.PageQuery) (gotable.Page[Transaction], error) {
	if q.Columns == nil {
		q.Columns = Columns
	}
	if q.SearchColumns == nil {
		q.SearchColumns = SearchFields
	}

	page, err := gotable.FetchPage[Transaction](ctx, r.db.Where("user_id = ?", userID), q)
	if err != nil {
		return gotable.Page[Transaction]{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "ledger").
		Str("user_id", userID).
		Int("page", page.PageIndex).
		Int("total", page.TotalItems).
		Msg("page fetched")

	return page, nil
}
