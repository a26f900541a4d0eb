package handling

import (
	"net/http"
	"strconv"
	"strings"

	"dewode_server/store"
)

// ParseProductListOptions parses HTTP query parameters into catalog list
// options. Unknown parameters are ignored; malformed ones are an error.
func ParseProductListOptions(r *http.Request) (*store.ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &store.ProductListOptions{}, nil
	}

	opts := &store.ProductListOptions{}
	var err error
	var valInt int
	var valBool bool

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if search := query.Get("search"); search != "" {
		opts.Search = strings.TrimSpace(search)
	}

	if tag := query.Get("tag"); tag != "" {
		opts.Tag = strings.TrimSpace(tag)
	}

	if includeSoldOut := query.Get("include_sold_out"); includeSoldOut != "" {
		if valBool, err = strconv.ParseBool(includeSoldOut); err != nil {
			return nil, err
		}
		opts.IncludeSoldOut = valBool
	}

	return opts, nil
}
