// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists. Bootstrap may
// pass a different size from config.
const PageSize = 15

// MaxPageSize caps a configured page size.
const MaxPageSize = 200

// Query parameter names. "fk" carries the filter key the client last saw so
// the server can tell a filter change from a page change.
const (
	ParamPage      = "page"
	ParamFilterKey = "fk"
)

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, ParamPage)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseFilterKey returns the filter key echoed back by the client.
func ParseFilterKey(r *http.Request) string {
	return query.Get(r, ParamFilterKey)
}

// ResolvePage picks the page to show. A change of filter key always resets to
// page 1; otherwise the requested page stands.
func ResolvePage(requested int, prevKey, curKey string) int {
	if prevKey != curKey || requested < 1 {
		return 1
	}
	return requested
}

// NormalizeSize clamps a page size to [1, MaxPageSize], using PageSize for
// non-positive input.
func NormalizeSize(size int) int {
	switch {
	case size <= 0:
		return PageSize
	case size > MaxPageSize:
		return MaxPageSize
	}
	return size
}

// Range holds 1-based display indexes for the rows on a page.
type Range struct {
	Start int `json:"start"` // 0 if no results
	End   int `json:"end"`   // 0 if no results
}

// ComputeRange calculates the display range for a page showing `shown` rows.
func ComputeRange(page, size, shown int) Range {
	if shown == 0 {
		return Range{}
	}
	start := (page-1)*size + 1
	return Range{Start: start, End: start + shown - 1}
}

// Page is one slice of a fully filtered and sorted result set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
	Range      Range `json:"range"`
}

// Paginate cuts page `page` (1-based) out of rows. A page past the end is
// clamped to the last page. Items is never nil. rows is not modified.
func Paginate[T any](rows []T, page, size int) Page[T] {
	size = NormalizeSize(size)
	total := len(rows)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	lo := (page - 1) * size
	hi := lo + size
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	items := make([]T, hi-lo)
	copy(items, rows[lo:hi])

	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
		Range:      ComputeRange(page, size, len(items)),
	}
}
