package gotable

import (
	"maps"
	"slices"
	"sync/atomic"

	"github.com/samber/lo"
)

// ValueSet is a set of accepted string values for a single filter key.
type ValueSet map[string]struct{}

func NewValueSet(values ...string) ValueSet {
	return lo.Keyify(values)
}

// Has reports whether value belongs to the set.
func (s ValueSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the members of the set in ascending order.
func (s ValueSet) Values() []string {
	ret := lo.Keys(s)
	slices.Sort(ret)

	return ret
}

var _stateVersion atomic.Uint64

func nextStateVersion() uint64 {
	return _stateVersion.Add(1)
}

// FilterState is an immutable snapshot of the free-text query and the
// per-key value-set filters. Every With* method returns a new state with a
// new version; the receiver is never modified. Two states with equal
// versions are guaranteed to hold the same query and filters.
//
// The zero value is an empty state.
type FilterState struct {
	query   string
	filters map[string]ValueSet
	version uint64
}

// EmptyFilterState returns a state without query and filters.
func EmptyFilterState() FilterState {
	return FilterState{version: nextStateVersion()}
}

// Query returns the free-text search query.
func (s FilterState) Query() string {
	return s.query
}

// Version identifies this state value.
func (s FilterState) Version() uint64 {
	return s.version
}

// Filters returns a deep copy of the selected filters.
func (s FilterState) Filters() map[string]ValueSet {
	ret := make(map[string]ValueSet, len(s.filters))
	for key, set := range s.filters {
		ret[key] = maps.Clone(set)
	}

	return ret
}

// Filter returns the value set stored for key.
func (s FilterState) Filter(key string) (ValueSet, bool) {
	set, ok := s.filters[key]
	if !ok {
		return nil, false
	}

	return maps.Clone(set), true
}

// Keys returns the filter keys in ascending order.
func (s FilterState) Keys() []string {
	ret := lo.Keys(s.filters)
	slices.Sort(ret)

	return ret
}

// IsActive is true when the query is non-empty or at least one filter key
// is present, even if its value set is empty.
func (s FilterState) IsActive() bool {
	return s.query != "" || len(s.filters) > 0
}

// WithQuery returns a copy of the state with the search query replaced.
func (s FilterState) WithQuery(query string) FilterState {
	return FilterState{
		query:   query,
		filters: s.filters,
		version: nextStateVersion(),
	}
}

// WithFilter returns a copy of the state where the value set of key is
// replaced by values. An empty set keeps the key present but matches
// every item.
func (s FilterState) WithFilter(key string, values ValueSet) FilterState {
	filters := maps.Clone(s.filters)
	if filters == nil {
		filters = make(map[string]ValueSet, 1)
	}

	set := maps.Clone(values)
	if set == nil {
		set = ValueSet{}
	}
	filters[key] = set

	return FilterState{
		query:   s.query,
		filters: filters,
		version: nextStateVersion(),
	}
}

// WithoutFilter returns a copy of the state with key removed.
func (s FilterState) WithoutFilter(key string) FilterState {
	filters := maps.Clone(s.filters)
	delete(filters, key)

	return FilterState{
		query:   s.query,
		filters: filters,
		version: nextStateVersion(),
	}
}

// Cleared returns an empty state.
func (s FilterState) Cleared() FilterState {
	return EmptyFilterState()
}
