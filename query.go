package gotable

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// toCNF resolves the filter state against the column mapping.
func (s FilterState) toCNF(columns ColumnMapping, searchColumns []ColumnAlias) (tCNF, error) {
	cnf := make(tCNF, 0, len(s.filters)+1)

	if s.query != "" {
		pattern := "%" + escapeLike(strings.ToLower(s.query)) + "%"
		group := make(tAnyOf, 0, len(searchColumns))
		for _, alias := range searchColumns {
			column, err := resolveFilterColumn(alias, columns)
			if err != nil {
				return nil, fmt.Errorf("invalid search column: %w", err)
			}

			group = append(group, tCondition{Column: column, Operator: OperatorLike, Value: pattern})
		}

		if len(group) == 0 {
			group = append(group, alwaysFalse)
		}
		cnf = append(cnf, group)
	}

	for _, key := range s.Keys() {
		set := s.filters[key]
		if len(set) == 0 {
			continue
		}

		column, err := resolveFilterColumn(key, columns)
		if err != nil {
			return nil, fmt.Errorf("invalid filter key: %w", err)
		}

		cnf = append(cnf, tAnyOf{{Column: column, Operator: OperatorIn, Value: set.Values()}})
	}

	return cnf, nil
}

func resolveFilterColumn(alias ColumnAlias, columns ColumnMapping) (string, error) {
	column, err := resolveColumn(alias, columns)
	if err != nil {
		return "", err
	}

	if err = validateColumnName(column); err != nil {
		return "", err
	}

	return column, nil
}

// Apply narrows a gorm query to the rows matching the filter state, with the
// same semantics as FilterEngine: search columns are matched with a
// case-insensitive substring LIKE, non-empty value sets with IN. Filter keys
// and search columns are aliases resolved via columns.
//
// IMPORTANT:
// Case-insensitivity relies on the database LOWER function, which may only
// fold ASCII letters (e.g. SQLite without ICU).
func (s FilterState) Apply(db *gorm.DB, columns ColumnMapping, searchColumns ...ColumnAlias) (*gorm.DB, error) {
	cnf, err := s.toCNF(columns, searchColumns)
	if err != nil {
		return nil, fmt.Errorf("cannot apply filters: %w", err)
	}

	exp := cnf.toGORMExpression()
	if exp == nil {
		return db, nil
	}

	return db.Where(exp), nil
}

// ToSQL returns the filter state as an SQL condition with placeholders.
//
// Usage:
//
//	where, args, err := state.ToSQL(columns, "description")
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", where)
func (s FilterState) ToSQL(columns ColumnMapping, searchColumns ...ColumnAlias) (string, []driver.Value, error) {
	cnf, err := s.toCNF(columns, searchColumns)
	if err != nil {
		return "", nil, fmt.Errorf("cannot build filter clause: %w", err)
	}

	sqlClause, values := cnf.toSQLClause()

	return sqlClause, values, nil
}

// PageQuery describes a page request executed by the database.
type PageQuery struct {
	// State filter state to apply.
	State FilterState
	// Columns maps filter keys, search and sort aliases to columns.
	Columns ColumnMapping
	// SearchColumns aliases matched by the free-text query.
	SearchColumns []ColumnAlias
	// Sort orderings over column names (already resolved, e.g. by ParseSort).
	Sort Orderings
	// PageIndex zero-based index of the requested page.
	PageIndex int
	// PageSize number of rows per page. Non-positive means DefaultPageSize.
	PageSize int
	// MaxPageSize caps PageSize. Zero disables the cap.
	MaxPageSize int
}

func (q PageQuery) pageSize() int {
	if q.MaxPageSize > 0 {
		return NormalizePageSizeMax(q.PageSize, q.MaxPageSize)
	}

	return lo.Ternary(q.PageSize > 0, q.PageSize, DefaultPageSize)
}

func (q PageQuery) validate() error {
	if q.PageIndex < 0 {
		return fmt.Errorf("negative page index %d", q.PageIndex)
	}

	return q.Sort.validate()
}

// FetchPage counts the rows of model T matching the query and loads the
// requested page with OFFSET/LIMIT. A page index past the end yields an
// empty page, not an error.
func FetchPage[T any](ctx context.Context, db *gorm.DB, q PageQuery) (Page[T], error) {
	if err := q.validate(); err != nil {
		return Page[T]{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	pageSize := q.pageSize()
	scoped := func() (*gorm.DB, error) {
		return q.State.Apply(db.WithContext(ctx).Model(new(T)), q.Columns, q.SearchColumns...)
	}

	countQuery, err := scoped()
	if err != nil {
		return Page[T]{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	var total int64
	if err = countQuery.Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("cannot count rows: %w", err)
	}

	if q.PageIndex >= totalPages(int(total), pageSize) {
		return newPage([]T{}, q.PageIndex, pageSize, int(total)), nil
	}
	offset := q.PageIndex * pageSize

	pageQuery, err := scoped()
	if err != nil {
		return Page[T]{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	var items []T
	err = q.Sort.Apply(pageQuery).Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return Page[T]{}, fmt.Errorf("cannot load page: %w", err)
	}

	return newPage(lo.Ternary(items == nil, []T{}, items), q.PageIndex, pageSize, int(total)), nil
}
