package gotable

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction of a column.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to internal column names.
	// For in-memory sorting the internal names are getter names; for SQL
	// they may be fully qualified to avoid "ambiguous column name" errors.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// validateColumnName guards against SQL injection by restricting allowed
// characters in column names.
func validateColumnName(column string) error {
	if column == "" {
		return fmt.Errorf("empty column name")
	}

	if !lo.Every(_availableColumnNameSymbols, []rune(column)) {
		return fmt.Errorf("column name contains forbidden symbols '%s'", column)
	}

	return nil
}

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	if err := validateColumnName(o.Column); err != nil {
		return fmt.Errorf("invalid ordering column: %w", err)
	}

	return nil
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings: [{"a", "ASC"}, {"b", "DESC"}] returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, fmt.Sprintf("%s %s", ordering.Column, ordering.Direction))
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>".
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", orderings.ToSQL())
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query. Empty orderings leave the
// query untouched.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	if len(o) == 0 {
		return db
	}

	return db.Order(o.ToSQL())
}

func (o Orderings) validate() error {
	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return err
		}
	}

	return nil
}

// Then appends orderings, dropping earlier occurrences of the same column so
// that the last one wins:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (o Orderings) Then(orderBy ...OrderBy) Orderings {
	ret := slices.Clone(o)
	for _, ob := range orderBy {
		ret = slices.DeleteFunc(ret, func(processed OrderBy) bool {
			return processed.Column == ob.Column
		})
		ret = append(ret, ob)
	}

	return ret
}

// ParseSort builds Orderings from a list of strings in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping.
// Returns an error if an alias is not found in the mapping.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make([]OrderBy, 0, len(stringsOrderings))

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) != 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		columnName, err := resolveColumn(cutStringOrdering[0], columnMapping)
		if err != nil {
			return nil, err
		}

		direction := Direction(strings.ToUpper(cutStringOrdering[1]))
		if !direction.Valid() {
			return nil, fmt.Errorf("invalid ordering direction '%s'", cutStringOrdering[1])
		}

		ret = append(ret, OrderBy{
			Column:    columnName,
			Direction: direction,
		})
	}

	return ret, nil
}

// resolveColumn maps an alias to its column name, suggesting the closest
// known alias when it is missing.
func resolveColumn(alias ColumnAlias, columnMapping ColumnMapping) (string, error) {
	columnName := columnMapping[alias]
	if columnName == "" {
		return "", fmt.Errorf("invalid column alias '%s'. closest: '%s'", alias, closestAlias(alias, lo.Keys(columnMapping)))
	}

	return columnName, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	// Deterministic result for equally distant aliases.
	for _, dataSetAlias := range slices.Sorted(slices.Values(dataSet)) {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}

// SortItems returns a stably sorted copy of items. Each ordering column is
// read through getters; items is left untouched.
func SortItems[T any](items []T, orderings Orderings, getters Getters[T]) ([]T, error) {
	if err := orderings.validate(); err != nil {
		return nil, fmt.Errorf("cannot sort: %w", err)
	}

	for _, orderBy := range orderings {
		if getter, ok := getters[orderBy.Column]; !ok || getter == nil {
			return nil, fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}
	}

	ret := slices.Clone(items)
	if len(orderings) == 0 {
		return ret, nil
	}

	slices.SortStableFunc(ret, func(a, b T) int {
		for _, orderBy := range orderings {
			getter := getters[orderBy.Column]
			c := compareValues(getter(a), getter(b))
			if c == 0 {
				continue
			}

			return lo.Ternary(orderBy.Direction == DirectionDESC, -c, c)
		}

		return 0
	})

	return ret, nil
}
