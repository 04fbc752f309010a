package notifications

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

func newCountBackend(t *testing.T, hits *atomic.Int32) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/notifications/unread-count":
			hits.Add(1)
			_, _ = w.Write([]byte(`{"count":7}`))
		case "/admin/notifications/n-1/read", "/admin/notifications/read-all":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	resolver := upstream.NewResolver(upstream.OriginConfig{
		Local:      srv.URL,
		Production: srv.URL,
		ServedHost: "localhost",
	}, &upstream.MemoryOverrideStore{}, nil)
	client := upstream.NewClient(upstream.ClientConfig{
		Resolver:  resolver,
		Transport: http.DefaultTransport,
	})
	return NewService(client, rdb, slog.Default())
}

func TestUnreadCountCaches(t *testing.T) {
	var hits atomic.Int32
	svc := newCountBackend(t, &hits)
	ctx := context.Background()

	count, err := svc.UnreadCount(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Equal(t, int32(1), hits.Load())

	// second poll answers from the cache
	count, err = svc.UnreadCount(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Equal(t, int32(1), hits.Load())

	// a different session has its own counter
	_, err = svc.UnreadCount(ctx, "sid-2")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestMarkReadInvalidatesCounter(t *testing.T) {
	var hits atomic.Int32
	svc := newCountBackend(t, &hits)
	ctx := context.Background()

	_, err := svc.UnreadCount(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, "sid-1", "n-1"))

	_, err = svc.UnreadCount(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load(), "counter refetched after invalidation")
}

func TestMarkAllReadInvalidatesCounter(t *testing.T) {
	var hits atomic.Int32
	svc := newCountBackend(t, &hits)
	ctx := context.Background()

	_, err := svc.UnreadCount(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, svc.MarkAllRead(ctx, "sid-1"))

	_, err = svc.UnreadCount(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
