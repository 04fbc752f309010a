package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// countingTransport records outbound requests instead of hitting a network.
type countingTransport struct {
	calls    int
	lastAuth string
	status   int
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	c.lastAuth = req.Header.Get("Authorization")
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newRequest(t *testing.T, sid string) *http.Request {
	t.Helper()
	ctx := context.Background()
	if sid != "" {
		ctx = shared.ContextWithSessionID(ctx, sid)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://backend.test/admin/users", nil)
	require.NoError(t, err)
	return req
}

func TestGuardAttachesAdminCredential(t *testing.T) {
	store := NewMemoryStore()
	tok := mintToken(t, jwt.MapClaims{"scope": "admin", "sub": "u1"})
	require.NoError(t, store.Set(context.Background(), "sid-1", tok))

	base := &countingTransport{}
	guard := &Transport{Base: base, Store: store}

	resp, err := guard.RoundTrip(newRequest(t, "sid-1"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 1, base.calls)
	assert.Equal(t, "Bearer "+tok, base.lastAuth)
}

func TestGuardAttachesLegacyCredential(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "sid-1", "opaque-legacy-token"))

	base := &countingTransport{}
	guard := &Transport{Base: base, Store: store}

	resp, err := guard.RoundTrip(newRequest(t, "sid-1"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer opaque-legacy-token", base.lastAuth)
}

func TestGuardEvictsMobileScopeBeforeNetwork(t *testing.T) {
	store := NewMemoryStore()
	tok := mintToken(t, jwt.MapClaims{"scope": "mobile"})
	require.NoError(t, store.Set(context.Background(), "sid-1", tok))

	var evicted []string
	base := &countingTransport{}
	guard := &Transport{
		Base:  base,
		Store: store,
		OnEvict: func(sid, reason string) {
			evicted = append(evicted, reason)
		},
	}

	_, err := guard.RoundTrip(newRequest(t, "sid-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrScopeViolation)
	assert.Contains(t, err.Error(), "mobile")
	assert.Equal(t, 0, base.calls, "no network I/O on scope violation")

	stored, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Empty(t, stored, "credential slot must be cleared")
	assert.Len(t, evicted, 1)
}

func TestGuardEvictsUnknownScope(t *testing.T) {
	store := NewMemoryStore()
	tok := mintToken(t, jwt.MapClaims{"scope": "kiosk"})
	require.NoError(t, store.Set(context.Background(), "sid-1", tok))

	base := &countingTransport{}
	guard := &Transport{Base: base, Store: store}

	_, err := guard.RoundTrip(newRequest(t, "sid-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrScopeViolation)
	assert.Equal(t, 0, base.calls)
}

func TestGuardAnonymousPassesThrough(t *testing.T) {
	base := &countingTransport{}
	guard := &Transport{Base: base, Store: NewMemoryStore()}

	resp, err := guard.RoundTrip(newRequest(t, ""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 1, base.calls)
	assert.Empty(t, base.lastAuth)
}

func TestGuardEvictsOnUpstream401(t *testing.T) {
	store := NewMemoryStore()
	tok := mintToken(t, jwt.MapClaims{"scope": "admin"})
	require.NoError(t, store.Set(context.Background(), "sid-1", tok))

	base := &countingTransport{status: http.StatusUnauthorized}
	guard := &Transport{Base: base, Store: store}

	_, err := guard.RoundTrip(newRequest(t, "sid-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrSessionEvicted))

	stored, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGuardAnonymous401DoesNotEvict(t *testing.T) {
	base := &countingTransport{status: http.StatusUnauthorized}
	guard := &Transport{Base: base, Store: NewMemoryStore()}

	resp, err := guard.RoundTrip(newRequest(t, ""))
	require.NoError(t, err, "401 without a session propagates as a plain response")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
