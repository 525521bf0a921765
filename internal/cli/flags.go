package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Alp4ka/gotable"
	"github.com/Alp4ka/gotable/internal/ledger"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	ErrInvalidFilterFormat = errors.New("invalid filter format: use 'key=value1,value2'")
	ErrInvalidOutput       = errors.New("output must be 'table' or 'json'")
)

func validateOutput(output string) error {
	if !slices.Contains([]string{outputTable, outputJSON}, output) {
		return fmt.Errorf("%w, got '%s'", ErrInvalidOutput, output)
	}

	return nil
}

// buildFilterState turns the --search and --filter flags into a filter
// state. Repeating a key adds to its values; "key=" selects the key with
// no values, which matches everything.
func buildFilterState(search string, filters []string) (gotable.FilterState, error) {
	state := gotable.EmptyFilterState().WithQuery(search)

	for _, filter := range filters {
		key, rawValues, found := strings.Cut(filter, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return gotable.FilterState{}, fmt.Errorf("%w, got '%s'", ErrInvalidFilterFormat, filter)
		}

		values := lo.Compact(lo.Map(strings.Split(rawValues, ","), func(v string, _ int) string {
			return strings.TrimSpace(v)
		}))
		if current, ok := state.Filter(key); ok {
			values = append(values, current.Values()...)
		}

		state = state.WithFilter(key, gotable.NewValueSet(values...))
	}

	return state, nil
}

// fieldColumns maps every transaction field to itself, for sorting in
// memory where the getters are the columns.
func fieldColumns() gotable.ColumnMapping {
	getters := ledger.Getters()
	ret := make(gotable.ColumnMapping, len(getters))
	for field := range getters {
		ret[field] = field
	}

	return ret
}

func parseType(s string) (ledger.Type, error) {
	t := ledger.Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid type '%s': must be income or expense", s)
	}

	return t, nil
}

// parseDate parses a yyyy-MM-dd date; an empty string means today.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': expected yyyy-MM-dd", s)
	}

	return date, nil
}

// resolvePageSize applies the configured default and maximum to the
// --page-size flag, where 0 means the default.
func resolvePageSize(pageSize, defaultPageSize, maxPageSize int) (int, error) {
	switch {
	case pageSize < 0:
		return 0, fmt.Errorf("%w: %d", gotable.ErrInvalidPageSize, pageSize)
	case pageSize == 0:
		pageSize = defaultPageSize
	}

	return min(pageSize, maxPageSize), nil
}
