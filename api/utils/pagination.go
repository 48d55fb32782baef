// Package utils holds the small request helpers shared by the HTTP
// surfaces.
package utils

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// PaginationParams carries the page window of a list endpoint. After
// SetPaginationStats it also carries the totals a client needs to walk
// every page.
type PaginationParams struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	Offset       int `json:"offset"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// ExtractPagination reads page and limit from the query string. Absent
// parameters fall back to defaultLimit; limit is capped at maxLimit so
// one request cannot drag a whole result table over the wire.
func ExtractPagination(r *http.Request, defaultLimit, maxLimit int) (PaginationParams, error) {
	params := PaginationParams{
		Page:  1,
		Limit: defaultLimit,
	}

	if p := r.URL.Query().Get("page"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val <= 0 {
			return PaginationParams{}, fmt.Errorf("invalid page parameter: %s", p)
		}
		params.Page = val
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val <= 0 {
			return PaginationParams{}, fmt.Errorf("invalid limit parameter: %s", l)
		}
		params.Limit = val
	}
	if maxLimit > 0 && params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	params.Offset = (params.Page - 1) * params.Limit
	return params, nil
}

// SetPaginationStats fills the totals once the full row count is known.
func (p *PaginationParams) SetPaginationStats(totalRecords int) {
	p.TotalRecords = totalRecords
	if totalRecords > 0 {
		p.TotalPages = int(math.Ceil(float64(totalRecords) / float64(p.Limit)))
	} else {
		p.TotalPages = 0
	}
}

// Bounds clamps the page window to a slice of the given length, so
// callers can cut rows[lo:hi] without further checks.
func (p PaginationParams) Bounds(total int) (lo, hi int) {
	lo = p.Offset
	if lo > total {
		lo = total
	}
	hi = lo + p.Limit
	if hi > total {
		hi = total
	}
	return lo, hi
}
