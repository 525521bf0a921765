package gotable

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize is returned when a page size is not a positive integer.
var ErrInvalidPageSize = errors.New("page size must be positive")

type paginatorOptions struct {
	pageSize        *int
	defaultPageSize int
	maxPageSize     int
}

// PaginatorOption configures NewPaginator.
type PaginatorOption func(*paginatorOptions)

// WithPageSize sets the page size explicitly.
func WithPageSize(pageSize int) PaginatorOption {
	return func(o *paginatorOptions) {
		o.pageSize = &pageSize
	}
}

// WithDefaultPageSize sets the page size used when WithPageSize is omitted.
// Defaults to DefaultPageSize.
func WithDefaultPageSize(pageSize int) PaginatorOption {
	return func(o *paginatorOptions) {
		o.defaultPageSize = pageSize
	}
}

// WithMaxPageSize caps the page size. Larger sizes are clamped. By default
// there is no cap; a non-positive value disables it.
func WithMaxPageSize(maxPageSize int) PaginatorOption {
	return func(o *paginatorOptions) {
		o.maxPageSize = maxPageSize
	}
}

// Paginator derives the visible page of a collection and provides
// bounds-safe navigation over it.
//
// Navigation never fails: out-of-range moves are silently ignored.
// When the collection shrinks, the page index is clamped to the last
// existing page.
//
// IMPORTANT:
// Paginator is not safe for concurrent use.
type Paginator[T any] struct {
	data        []T
	pageIndex   int
	pageSize    int
	maxPageSize int
}

// NewPaginator creates a paginator over data positioned at the first page.
// Returns ErrInvalidPageSize if the resolved page size is not positive.
func NewPaginator[T any](data []T, opts ...PaginatorOption) (*Paginator[T], error) {
	o := paginatorOptions{
		defaultPageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	pageSize := o.defaultPageSize
	if o.pageSize != nil {
		pageSize = *o.pageSize
	}

	p := &Paginator[T]{
		data:        data,
		maxPageSize: o.maxPageSize,
	}
	if err := p.SetPageSize(pageSize); err != nil {
		return nil, fmt.Errorf("cannot create paginator: %w", err)
	}

	return p, nil
}

// SetData replaces the paginated collection. If the current page no longer
// exists it is clamped to max(0, TotalPages()-1).
func (p *Paginator[T]) SetData(data []T) {
	p.data = data
	p.clamp()
}

// Data returns the whole paginated collection.
func (p *Paginator[T]) Data() []T {
	return p.data
}

// SetPageSize changes the page size, clamping it to the maximum set with
// WithMaxPageSize and the page index to the last existing page.
func (p *Paginator[T]) SetPageSize(pageSize int) error {
	if pageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}

	if p.maxPageSize > 0 && pageSize > p.maxPageSize {
		pageSize = p.maxPageSize
	}
	p.pageSize = pageSize
	p.clamp()

	return nil
}

func (p *Paginator[T]) PageIndex() int {
	return p.pageIndex
}

func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

// Offset returns the index of the first item of the current page within Data.
func (p *Paginator[T]) Offset() int {
	return p.pageIndex * p.pageSize
}

// TotalPages returns ceil(len(Data()) / PageSize()), 0 for an empty collection.
func (p *Paginator[T]) TotalPages() int {
	return totalPages(len(p.data), p.pageSize)
}

// PaginatedData returns the items of the current page. The result is a
// read-only view into Data; appending to it never overwrites Data.
func (p *Paginator[T]) PaginatedData() []T {
	start := p.Offset()
	if start >= len(p.data) {
		return []T{}
	}

	end := min(start+p.pageSize, len(p.data))

	return p.data[start:end:end]
}

func (p *Paginator[T]) HasNextPage() bool {
	return p.pageIndex < p.TotalPages()-1
}

func (p *Paginator[T]) HasPreviousPage() bool {
	return p.pageIndex > 0
}

// GoToPage moves to page iff 0 <= page < TotalPages(). Otherwise it is a no-op.
func (p *Paginator[T]) GoToPage(page int) {
	if page >= 0 && page < p.TotalPages() {
		p.pageIndex = page
	}
}

// NextPage moves forward iff HasNextPage.
func (p *Paginator[T]) NextPage() {
	if p.HasNextPage() {
		p.pageIndex++
	}
}

// PreviousPage moves back iff HasPreviousPage.
func (p *Paginator[T]) PreviousPage() {
	if p.HasPreviousPage() {
		p.pageIndex--
	}
}

// ResetPage unconditionally moves to the first page.
func (p *Paginator[T]) ResetPage() {
	p.pageIndex = 0
}

// Page returns a snapshot of the current page with its metadata.
func (p *Paginator[T]) Page() Page[T] {
	return newPage(p.PaginatedData(), p.pageIndex, p.pageSize, len(p.data))
}

// Restore applies an API pagination payload: the page size is validated
// and normalized, then the paginator navigates to the page encoded in the
// token with the usual GoToPage semantics.
func (p *Paginator[T]) Restore(raw RawPager) error {
	token, err := DecodePageToken(raw.PageToken)
	if err != nil {
		return fmt.Errorf("cannot restore page: %w", err)
	}

	if raw.PageSize != 0 {
		if err = p.SetPageSize(raw.PageSize); err != nil {
			return fmt.Errorf("cannot restore page: %w", err)
		}
	}

	p.ResetPage()
	p.GoToPage(token.GetIndex())

	return nil
}

func (p *Paginator[T]) clamp() {
	last := max(0, p.TotalPages()-1)
	if p.pageIndex > last {
		p.pageIndex = last
	}
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}
