package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazaadati/bidmaster-admin/internal/rbac"
	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return signed
}

func newLoginBackend(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	resolver := upstream.NewResolver(upstream.OriginConfig{
		Local:      srv.URL,
		Production: srv.URL,
		ServedHost: "localhost",
	}, &upstream.MemoryOverrideStore{}, nil)
	client := upstream.NewClient(upstream.ClientConfig{
		Resolver:  resolver,
		Transport: http.DefaultTransport,
	})
	return NewService(client, rbac.DefaultPolicy())
}

func TestLoginSuccess(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"scope": "admin", "role": "admin", "sub": "u1"})
	svc := newLoginBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/admin-login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must go out unauthenticated")
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+96555000111", body["phone"])
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   tok,
		})
	})

	result, err := svc.Login(context.Background(), LoginRequest{Phone: "+96555000111", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, tok, result.Token)
	assert.Equal(t, rbac.RoleSuperAdmin, result.Role, "token role claim wins and is normalized")
}

func TestLoginRejectsMobileScopedToken(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"scope": "mobile", "role": "admin"})
	svc := newLoginBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": tok})
	})

	_, err := svc.Login(context.Background(), LoginRequest{Phone: "+96555000111", Role: "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrScopeViolation)
}

func TestLoginRejectsUnknownScope(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"scope": "kiosk"})
	svc := newLoginBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": tok})
	})

	_, err := svc.Login(context.Background(), LoginRequest{Phone: "+96555000111", Role: "viewer"})
	assert.ErrorIs(t, err, shared.ErrScopeViolation)
}

func TestLoginAcceptsLegacyTokenWithBodyRole(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"sub": "u2"})
	svc := newLoginBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   tok,
			"role":    "Moderator",
		})
	})

	result, err := svc.Login(context.Background(), LoginRequest{Phone: "+96555000111", Role: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleModerator, result.Role, "response body role outranks the requested one")
}

func TestLoginFailure(t *testing.T) {
	svc := newLoginBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "phone not registered",
		})
	})

	_, err := svc.Login(context.Background(), LoginRequest{Phone: "+96555000111", Role: "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "phone not registered")
}

func TestSessionInfoDerivesFromPolicy(t *testing.T) {
	svc := NewService(nil, rbac.DefaultPolicy())

	info := svc.SessionInfo(rbac.RoleViewer)
	assert.Equal(t, "viewer", info.Role)
	assert.False(t, info.CanWrite)
	assert.True(t, info.ReadOnly)
	assert.Equal(t, []string{"Dashboard", "Products", "Auctions"}, info.Modules)
	assert.Equal(t, []string{"dashboard", "products", "auctions"}, info.AccessiblePages)

	admin := svc.SessionInfo(rbac.RoleSuperAdmin)
	assert.True(t, admin.CanWrite)
	assert.False(t, admin.ReadOnly)
	assert.Len(t, admin.Modules, len(rbac.AllModules()))
}
