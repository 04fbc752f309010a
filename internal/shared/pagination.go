package shared

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// ListQuery carries the pagination and filter parameters every list page
// forwards to the auction backend.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	Sort    string
}

// ParseListQuery reads the shared list parameters from the request.
func ParseListQuery(r *http.Request) ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("perPage"))
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return ListQuery{
		Page:    page,
		PerPage: perPage,
		Search:  strings.TrimSpace(q.Get("search")),
		Status:  strings.TrimSpace(q.Get("status")),
		Sort:    strings.TrimSpace(q.Get("sort")),
	}
}

// Values encodes the query for the upstream request.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("perPage", strconv.Itoa(q.PerPage))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}
