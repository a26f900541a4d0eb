package handling

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductListOptionsEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)

	opts, err := ParseProductListOptions(r)
	require.NoError(t, err)
	assert.Zero(t, *opts)
}

func TestParseProductListOptionsFull(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=2&page_size=20&search=%20plate%20&tag=tray&include_sold_out=true", nil)

	opts, err := ParseProductListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 20, opts.PageSize)
	assert.Equal(t, "plate", opts.Search)
	assert.Equal(t, "tray", opts.Tag)
	assert.True(t, opts.IncludeSoldOut)
}

func TestParseProductListOptionsMalformed(t *testing.T) {
	for _, target := range []string{
		"/products?page=abc",
		"/products?page_size=1.5",
		"/products?include_sold_out=maybe",
	} {
		r := httptest.NewRequest("GET", target, nil)
		_, err := ParseProductListOptions(r)
		assert.Error(t, err, target)
	}
}
