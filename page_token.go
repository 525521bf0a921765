package gotable

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

var _encoder = base64.RawURLEncoding

// ErrInvalidPageToken is returned for tokens that cannot be decoded.
var ErrInvalidPageToken = errors.New("invalid page token")

// RawPager is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPager `json:",inline"`
//	}
type RawPager struct {
	// PageSize - number of items per page. Zero keeps the current page size.
	PageSize int `json:"pageSize"`
	// PageToken - base64-encoded token obtained via PageToken.String() or
	// Page.NextPageToken. If empty, the first page is returned.
	PageToken string `json:"pageToken"`
}

// Decode validates the payload and returns the normalized page size and the
// requested page index.
func (r RawPager) Decode() (pageSize int, pageIndex int, err error) {
	token, err := DecodePageToken(r.PageToken)
	if err != nil {
		return 0, 0, err
	}

	return NormalizePageSize(r.PageSize), token.GetIndex(), nil
}

// PageToken is an opaque reference to a page of a collection. It encodes the
// zero-based page index so that clients can resume navigation without
// knowing how pages are computed.
type PageToken struct {
	index int
}

func NewPageToken(index int) *PageToken {
	return &PageToken{
		index: index,
	}
}

// DecodePageToken attempts to parse a base64-encoded string into *PageToken.
// An empty string decodes to the first page.
func DecodePageToken(b64String string) (*PageToken, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	indexBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64: %w", ErrInvalidPageToken, err)
	}

	index, err := strconv.Atoi(string(indexBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode page index: %w", ErrInvalidPageToken, err)
	}

	if index < 0 {
		return nil, fmt.Errorf("%w: negative page index %d", ErrInvalidPageToken, index)
	}

	return &PageToken{
		index: index,
	}, nil
}

// String - implements fmt.Stringer. The first page is encoded as an empty
// string.
func (t *PageToken) String() string {
	if t.IsEmpty() {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(t.index)))
}

// IsEmpty is true for the first page.
func (t *PageToken) IsEmpty() bool {
	return t == nil || t.index == 0
}

// GetIndex returns the zero-based page index.
func (t *PageToken) GetIndex() int {
	if t != nil {
		return t.index
	}

	return 0
}

// GetOffset returns the index of the first item of the page.
func (t *PageToken) GetOffset(pageSize int) int {
	return t.GetIndex() * pageSize
}

var _ fmt.Stringer = (*PageToken)(nil)
