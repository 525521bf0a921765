package gotable

import "fmt"

// TableConfig configures NewTable.
type TableConfig struct {
	// SearchFields getter names matched by the free-text query.
	SearchFields []string
	// PageSize explicit page size. Zero means DefaultPageSize.
	PageSize int
	// DefaultPageSize used when PageSize is zero. Zero means DefaultPageSize.
	DefaultPageSize int
	// MaxPageSize caps the page size. Zero disables the cap.
	MaxPageSize int
}

// Table is the view model of a table: the raw collection is filtered by a
// FilterEngine, optionally sorted, and sliced into pages by a Paginator.
//
// Changing the query, a filter or the sort order moves back to the first
// page. Replacing the data keeps the current page unless it no longer
// exists.
//
// IMPORTANT:
// Table is not safe for concurrent use.
type Table[T any] struct {
	getters Getters[T]
	filter  *FilterEngine[T]
	sort    Orderings
	pager   *Paginator[T]
}

func NewTable[T any](data []T, getters Getters[T], cfg TableConfig) (*Table[T], error) {
	opts := make([]PaginatorOption, 0, 3)
	if cfg.PageSize != 0 {
		opts = append(opts, WithPageSize(cfg.PageSize))
	}
	if cfg.DefaultPageSize != 0 {
		opts = append(opts, WithDefaultPageSize(cfg.DefaultPageSize))
	}
	if cfg.MaxPageSize != 0 {
		opts = append(opts, WithMaxPageSize(cfg.MaxPageSize))
	}

	filter := NewFilterEngine(data, getters, cfg.SearchFields...)
	pager, err := NewPaginator(filter.FilteredData(), opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create table: %w", err)
	}

	return &Table[T]{
		getters: getters,
		filter:  filter,
		pager:   pager,
	}, nil
}

// SetData replaces the raw collection.
func (t *Table[T]) SetData(data []T) {
	t.filter.SetData(data)
	t.mustRefresh(false)
}

func (t *Table[T]) SearchQuery() string {
	return t.filter.SearchQuery()
}

func (t *Table[T]) SetSearchQuery(query string) {
	t.filter.SetSearchQuery(query)
	t.mustRefresh(true)
}

func (t *Table[T]) SelectedFilters() map[string]ValueSet {
	return t.filter.SelectedFilters()
}

func (t *Table[T]) SetFilter(key string, values ValueSet) {
	t.filter.SetFilter(key, values)
	t.mustRefresh(true)
}

func (t *Table[T]) ClearFilter(key string) {
	t.filter.ClearFilter(key)
	t.mustRefresh(true)
}

func (t *Table[T]) ClearAllFilters() {
	t.filter.ClearAllFilters()
	t.mustRefresh(true)
}

// SetFilterState replaces the query and all filters at once.
func (t *Table[T]) SetFilterState(state FilterState) {
	t.filter.SetState(state)
	t.mustRefresh(true)
}

func (t *Table[T]) HasActiveFilters() bool {
	return t.filter.HasActiveFilters()
}

// FilterState returns the current filter state, e.g. to push it down to SQL
// with FilterState.Apply.
func (t *Table[T]) FilterState() FilterState {
	return t.filter.State()
}

// Sort returns the current orderings.
func (t *Table[T]) Sort() Orderings {
	return t.sort
}

// SetSort replaces the orderings. Every column must have a getter.
// On error the previous orderings are kept.
func (t *Table[T]) SetSort(orderings Orderings) error {
	previous := t.sort
	t.sort = orderings

	if err := t.refresh(true); err != nil {
		t.sort = previous

		return err
	}

	return nil
}

// Rows returns the filtered and sorted collection, before pagination.
func (t *Table[T]) Rows() []T {
	return t.pager.Data()
}

func (t *Table[T]) SetPageSize(pageSize int) error {
	return t.pager.SetPageSize(pageSize)
}

func (t *Table[T]) GoToPage(page int) {
	t.pager.GoToPage(page)
}

func (t *Table[T]) NextPage() {
	t.pager.NextPage()
}

func (t *Table[T]) PreviousPage() {
	t.pager.PreviousPage()
}

func (t *Table[T]) ResetPage() {
	t.pager.ResetPage()
}

// Restore applies an API pagination payload. See Paginator.Restore.
func (t *Table[T]) Restore(raw RawPager) error {
	return t.pager.Restore(raw)
}

// Page returns the current page.
func (t *Table[T]) Page() Page[T] {
	return t.pager.Page()
}

func (t *Table[T]) refresh(resetPage bool) error {
	rows := t.filter.FilteredData()
	if len(t.sort) > 0 {
		sorted, err := SortItems(rows, t.sort, t.getters)
		if err != nil {
			return err
		}
		rows = sorted
	}

	t.pager.SetData(rows)
	if resetPage {
		t.pager.ResetPage()
	}

	return nil
}

// mustRefresh refreshes after a data or filter change. The orderings were
// accepted by SetSort, so sorting cannot fail here.
func (t *Table[T]) mustRefresh(resetPage bool) {
	if err := t.refresh(resetPage); err != nil {
		panic(fmt.Errorf("cannot refresh table: %w", err))
	}
}
