package helpers

import (
	"net/http"
	"strconv"

	"together/internal/domain"
)

// ParsePagination reads page and page_size from the request query string.
// Invalid or missing values fall back to defaults; the result is normalized.
func ParsePagination(r *http.Request) domain.PaginationParams {
	var p domain.PaginationParams
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			p.Page = v
		}
	}
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			p.PageSize = v
		}
	}
	return p.Normalize()
}

// PathInt64 parses the named path value as a positive int64.
func PathInt64(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
