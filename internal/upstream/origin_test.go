package upstream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLocal      = "http://localhost:5050"
	testProduction = "https://api.example.com"
)

func TestResolveExplicitWins(t *testing.T) {
	r := NewResolver(OriginConfig{
		Explicit:   "http://pinned:9000",
		Local:      testLocal,
		Production: testProduction,
		ServedHost: "localhost",
	}, &MemoryOverrideStore{}, nil)
	assert.Equal(t, "http://pinned:9000", r.Resolve(context.Background()))
}

func TestResolveProductionLockout(t *testing.T) {
	overrides := &MemoryOverrideStore{}
	require.NoError(t, overrides.SetOverride(context.Background(), testLocal))

	r := NewResolver(OriginConfig{
		Local:          testLocal,
		Production:     testProduction,
		ServedHost:     "admin.example.com",
		ProductionMode: true,
	}, overrides, nil)

	assert.Equal(t, testProduction, r.Resolve(context.Background()))

	stale, err := overrides.GetOverride(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stale, "stale local override must be cleared in production mode")
}

func TestResolveProductionLockoutKeepsRemoteOverride(t *testing.T) {
	overrides := &MemoryOverrideStore{}
	require.NoError(t, overrides.SetOverride(context.Background(), "https://staging.example.com"))

	r := NewResolver(OriginConfig{
		Local:          testLocal,
		Production:     testProduction,
		ProductionMode: true,
	}, overrides, nil)

	assert.Equal(t, testProduction, r.Resolve(context.Background()))

	kept, err := overrides.GetOverride(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", kept, "non-local override survives the lockout sweep")
}

func TestResolvePersistedOverride(t *testing.T) {
	overrides := &MemoryOverrideStore{}
	require.NoError(t, overrides.SetOverride(context.Background(), testProduction))

	r := NewResolver(OriginConfig{
		Local:      testLocal,
		Production: testProduction,
		ServedHost: "localhost",
	}, overrides, nil)

	assert.Equal(t, testProduction, r.Resolve(context.Background()))
}

func TestResolvePrivateHostPrefersLocal(t *testing.T) {
	hosts := []string{"localhost", "127.0.0.1", "192.168.1.20", "10.0.0.5:3000", "localhost:8080"}
	for _, host := range hosts {
		r := NewResolver(OriginConfig{
			Local:      testLocal,
			Production: testProduction,
			ServedHost: host,
		}, &MemoryOverrideStore{}, nil)
		assert.Equal(t, testLocal, r.Resolve(context.Background()), "host %s", host)
	}
}

func TestResolvePublicHostUsesProduction(t *testing.T) {
	hosts := []string{"admin.example.com", "8.8.8.8", ""}
	for _, host := range hosts {
		r := NewResolver(OriginConfig{
			Local:      testLocal,
			Production: testProduction,
			ServedHost: host,
		}, &MemoryOverrideStore{}, nil)
		assert.Equal(t, testProduction, r.Resolve(context.Background()), "host %q", host)
	}
}

func TestPersistAndIsLocal(t *testing.T) {
	overrides := &MemoryOverrideStore{}
	r := NewResolver(OriginConfig{
		Local:      testLocal,
		Production: testProduction,
		ServedHost: "localhost",
	}, overrides, nil)

	r.Persist(context.Background(), testProduction)
	assert.Equal(t, testProduction, r.Resolve(context.Background()), "persisted origin wins over heuristic")

	assert.True(t, r.IsLocal(testLocal))
	assert.False(t, r.IsLocal(testProduction))
}
