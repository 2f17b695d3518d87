package helpers

import (
	"net/http"
	"strconv"

	"bookingcalendar/internal/domain"
)

// Booking log listing limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// ParsePagination reads page and page_size. Missing or non-numeric values and
// values below 1 use the defaults; page_size above MaxPageSize is capped.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	params := domain.PaginationParams{
		Page:     positiveInt(q.Get("page"), DefaultPage),
		PageSize: positiveInt(q.Get("page_size"), DefaultPageSize),
	}
	params.PageSize = min(params.PageSize, MaxPageSize)
	return params
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// PaginationMeta describes where a page sits in the booking log.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// PaginatedResponse is the data payload of paginated list endpoints.
type PaginatedResponse struct {
	Items      any            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPaginationMeta computes the page count for total rows; a zero page size has no pages.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	meta := PaginationMeta{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		meta.TotalPages = (total + pageSize - 1) / pageSize
	}
	meta.HasNext = page < meta.TotalPages
	return meta
}

// NewPaginatedResponse wraps one page of items with its metadata.
func NewPaginatedResponse(items any, params domain.PaginationParams, total int) PaginatedResponse {
	return PaginatedResponse{Items: items, Pagination: NewPaginationMeta(params.Page, params.PageSize, total)}
}
