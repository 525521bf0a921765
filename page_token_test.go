package gotable

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_PageToken_Decode(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedIndex int
		expectedEmpty bool
	}{
		{
			"zero empty",
			"",
			0,
			true,
		},
		{
			"zero encoded",
			base64.RawURLEncoding.EncodeToString([]byte("0")),
			0,
			true,
		},
		{
			"non-zero encodes",
			base64.RawURLEncoding.EncodeToString([]byte("15")),
			15,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := DecodePageToken(tt.input)
			if err != nil {
				t.Fatalf("decode failed: %v pt=%#v", err, pt)
			}

			if e := pt.IsEmpty(); e != tt.expectedEmpty {
				t.Errorf("%s: IsEmpty=%v want %v", tt.name, e, tt.expectedEmpty)
			}
			if idx := pt.GetIndex(); idx != tt.expectedIndex {
				t.Errorf("%s: GetIndex=%d want %d", tt.name, idx, tt.expectedIndex)
			}
		})
	}
}

func Test_PageToken_DecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "%%%"},
		{"not a number", base64.RawURLEncoding.EncodeToString([]byte("abc"))},
		{"negative", base64.RawURLEncoding.EncodeToString([]byte("-3"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePageToken(tt.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidPageToken))
		})
	}
}

func Test_PageToken_RoundTrip(t *testing.T) {
	for _, idx := range []int{0, 1, 7, 1000} {
		pt, err := DecodePageToken(NewPageToken(idx).String())
		require.NoError(t, err)
		require.Equal(t, idx, pt.GetIndex())
		require.Equal(t, idx*25, pt.GetOffset(25))
	}
}

func Test_RawPager_Decode(t *testing.T) {
	size, idx, err := RawPager{PageSize: 1000, PageToken: NewPageToken(2).String()}.Decode()
	require.NoError(t, err)
	require.Equal(t, MaxPageSize, size)
	require.Equal(t, 2, idx)

	size, idx, err = RawPager{}.Decode()
	require.NoError(t, err)
	require.Equal(t, DefaultPageSize, size)
	require.Equal(t, 0, idx)

	_, _, err = RawPager{PageToken: "!"}.Decode()
	require.ErrorIs(t, err, ErrInvalidPageToken)
}
