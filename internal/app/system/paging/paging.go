// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of rows returned when the caller does not
// supply a limit.
const DefaultPageSize = 10

// MaxPageSize caps the limit a caller may request.
const MaxPageSize = 100

// Page holds a parsed offset-pagination window (1-based page).
type Page struct {
	Number int
	Limit  int
}

// Skip returns the number of documents to skip: (page-1)*limit.
func (p Page) Skip() int64 { return int64(p.Number-1) * int64(p.Limit) }

// Parse extracts "page" and "limit" query parameters. Missing or invalid
// values fall back to page 1 and DefaultPageSize; limit is clamped to
// MaxPageSize.
func Parse(r *http.Request) Page {
	p := Page{Number: 1, Limit: DefaultPageSize}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Number = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// TotalPages returns ceil(total/limit); zero totals yield zero pages.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}
