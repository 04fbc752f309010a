package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

func TestMiddlewareLoadsIdentity(t *testing.T) {
	store := NewMemoryStore()
	tok := mintToken(t, jwt.MapClaims{
		"sub":       "u9",
		"role":      "Employee",
		"scope":     "admin",
		"companyId": "co-4",
	})
	require.NoError(t, store.Set(context.Background(), "sid-9", tok))

	mw := Middleware{Store: store, TTL: time.Hour}
	var seen shared.Identity
	var seenSID string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.IdentityFromContext(r.Context())
		seenSID = shared.SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid-9"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "sid-9", seenSID)
	assert.Equal(t, "u9", seen.Subject)
	assert.Equal(t, "employee", seen.Role, "role arrives lower-cased from the decoder")
	assert.Equal(t, "co-4", seen.CompanyID)
}

func TestMiddlewareWithoutCookie(t *testing.T) {
	mw := Middleware{Store: NewMemoryStore(), TTL: time.Hour}
	called := false
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, shared.SessionIDFromContext(r.Context()))
		assert.Empty(t, shared.IdentityFromContext(r.Context()).Subject)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/banners", nil))
	assert.True(t, called, "anonymous requests pass through")
}

func TestMiddlewareEmptySlotStillCarriesSessionID(t *testing.T) {
	mw := Middleware{Store: NewMemoryStore(), TTL: time.Hour}
	var seenSID string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSID = shared.SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid-evicted"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "sid-evicted", seenSID, "evicted sessions keep their slot id so the guard can answer 401")
}

func TestIssueAndDrop(t *testing.T) {
	mw := Middleware{Store: NewMemoryStore(), TTL: time.Hour}

	rec := httptest.NewRecorder()
	sid := mw.Issue(rec)
	require.NotEmpty(t, sid)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sid, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	mw.Drop(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
