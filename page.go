package gotable

// Page is a generic page of items with navigation metadata.
type Page[T any] struct {
	// Items elements of the page.
	Items []T `json:"items"`
	// PageIndex zero-based index of the page.
	PageIndex int `json:"pageIndex"`
	// PageSize effective page size.
	PageSize int `json:"pageSize"`
	// TotalItems number of items across all pages.
	TotalItems int `json:"totalItems"`
	// TotalPages number of pages, 0 for an empty collection.
	TotalPages int `json:"totalPages"`
	// HasNextPage there is a page after this one.
	HasNextPage bool `json:"hasNextPage"`
	// HasPreviousPage there is a page before this one.
	HasPreviousPage bool `json:"hasPreviousPage"`
	// NextPageToken token of the next page, empty on the last page.
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// newPage builds the metadata of page pageIndex over totalItems items.
func newPage[T any](items []T, pageIndex, pageSize, totalItems int) Page[T] {
	pages := totalPages(totalItems, pageSize)
	ret := Page[T]{
		Items:           items,
		PageIndex:       pageIndex,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		TotalPages:      pages,
		HasNextPage:     pageIndex < pages-1,
		HasPreviousPage: pageIndex > 0,
	}
	if ret.HasNextPage {
		ret.NextPageToken = NewPageToken(pageIndex + 1).String()
	}

	return ret
}
