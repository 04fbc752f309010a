package shared

import (
	"net/http/httptest"
	"testing"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if p.Page != 2 || p.PerPage != 20 || p.Total != 45 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

func TestParseListQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users", nil)
	q := ParseListQuery(r)
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
	if q.PerPage <= 0 {
		t.Errorf("PerPage = %d, want positive default", q.PerPage)
	}
}

func TestParseListQueryCapsPerPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users?page=3&perPage=9999&search=ali&status=active", nil)
	q := ParseListQuery(r)
	if q.Page != 3 {
		t.Errorf("Page = %d", q.Page)
	}
	if q.PerPage > 100 {
		t.Errorf("PerPage = %d, must be capped at 100", q.PerPage)
	}
	if q.Search != "ali" || q.Status != "active" {
		t.Errorf("filters not parsed: %+v", q)
	}
}

func TestListQueryValuesRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users?page=2&perPage=50&search=x", nil)
	values := ParseListQuery(r).Values()
	if values.Get("page") != "2" || values.Get("perPage") != "50" || values.Get("search") != "x" {
		t.Errorf("values = %v", values)
	}
}
