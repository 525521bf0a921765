package gotable

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// FilterEngine derives a filtered view of a collection from a free-text
// query and per-key value-set filters.
//
// An item is kept iff both hold:
//   - the query is empty, or at least one search field holds a string that
//     contains the query, compared case-insensitively with Unicode case
//     folding. Non-string values never match;
//   - for every filter key with a non-empty value set, the stringified
//     field value belongs to the set.
//
// The filtered result preserves the input order and is recomputed only when
// the data or the filter state changed.
//
// IMPORTANT:
// FilterEngine is not safe for concurrent use.
type FilterEngine[T any] struct {
	data         []T
	dataVersion  uint64
	getters      Getters[T]
	searchFields []string
	state        FilterState
	folder       cases.Caser

	cached        []T
	cachedData    uint64
	cachedState   uint64
	cachedIsValid bool
}

// NewFilterEngine creates an engine over data. searchFields lists the getter
// names eligible for free-text matching; an empty list means a non-empty
// query matches nothing.
func NewFilterEngine[T any](data []T, getters Getters[T], searchFields ...string) *FilterEngine[T] {
	return &FilterEngine[T]{
		data:         data,
		getters:      getters,
		searchFields: append([]string(nil), searchFields...),
		state:        EmptyFilterState(),
		folder:       cases.Fold(),
	}
}

// SetData replaces the raw collection. The slice is read, never modified.
func (f *FilterEngine[T]) SetData(data []T) {
	f.data = data
	f.dataVersion++
}

// Data returns the raw collection.
func (f *FilterEngine[T]) Data() []T {
	return f.data
}

// SearchFields returns the field names eligible for free-text matching.
func (f *FilterEngine[T]) SearchFields() []string {
	return append([]string(nil), f.searchFields...)
}

func (f *FilterEngine[T]) SearchQuery() string {
	return f.state.Query()
}

func (f *FilterEngine[T]) SetSearchQuery(query string) {
	f.state = f.state.WithQuery(query)
}

// SelectedFilters returns a copy of the selected filters.
func (f *FilterEngine[T]) SelectedFilters() map[string]ValueSet {
	return f.state.Filters()
}

// SetFilter replaces the value set for key.
func (f *FilterEngine[T]) SetFilter(key string, values ValueSet) {
	f.state = f.state.WithFilter(key, values)
}

// ClearFilter removes key. It is a no-op when key is absent.
func (f *FilterEngine[T]) ClearFilter(key string) {
	if _, ok := f.state.filters[key]; !ok {
		return
	}

	f.state = f.state.WithoutFilter(key)
}

// ClearAllFilters resets the query and removes every filter key.
func (f *FilterEngine[T]) ClearAllFilters() {
	f.state = f.state.Cleared()
}

// State returns the current filter state.
func (f *FilterEngine[T]) State() FilterState {
	return f.state
}

// SetState replaces the whole filter state, e.g. one restored from an
// earlier State call.
func (f *FilterEngine[T]) SetState(state FilterState) {
	f.state = state
}

// HasActiveFilters is true when the query is non-empty or at least one key
// is present, regardless of whether its value set is empty.
func (f *FilterEngine[T]) HasActiveFilters() bool {
	return f.state.IsActive()
}

// FilteredData returns the items matching the current state. The returned
// slice is shared between calls until the inputs change and must not be
// modified.
func (f *FilterEngine[T]) FilteredData() []T {
	if f.cachedIsValid && f.cachedData == f.dataVersion && f.cachedState == f.state.version {
		return f.cached
	}

	f.cached = f.filter(f.data, f.state)
	f.cachedData = f.dataVersion
	f.cachedState = f.state.version
	f.cachedIsValid = true

	return f.cached
}

func (f *FilterEngine[T]) filter(data []T, state FilterState) []T {
	if !state.IsActive() {
		return data
	}

	query := f.folder.String(state.query)
	keys := state.Keys()

	return lo.Filter(data, func(item T, _ int) bool {
		return f.matchesSearch(item, query) && f.matchesFilters(item, state, keys)
	})
}

func (f *FilterEngine[T]) matchesSearch(item T, foldedQuery string) bool {
	if foldedQuery == "" {
		return true
	}

	return lo.SomeBy(f.searchFields, func(field string) bool {
		value, ok := f.getters.Lookup(item, field)
		if !ok {
			return false
		}

		str, isString := value.(string)
		if !isString {
			return false
		}

		return strings.Contains(f.folder.String(str), foldedQuery)
	})
}

func (f *FilterEngine[T]) matchesFilters(item T, state FilterState, keys []string) bool {
	return lo.EveryBy(keys, func(key string) bool {
		set := state.filters[key]
		if len(set) == 0 {
			return true
		}

		value, ok := f.getters.Lookup(item, key)
		if !ok {
			return false
		}

		return set.Has(Stringify(value))
	})
}
