package notifications

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

const (
	countKeyPrefix = "notifications:unread:"
	countTTL       = 30 * time.Second
)

// Service forwards notification calls and caches the unread count per
// session. The count endpoint is polled by every open tab, so cache
// misses are collapsed through singleflight.
type Service struct {
	client *upstream.Client
	rdb    *redis.Client
	logger *slog.Logger
	group  singleflight.Group
}

// NewService builds a Service instance.
func NewService(client *upstream.Client, rdb *redis.Client, logger *slog.Logger) *Service {
	return &Service{client: client, rdb: rdb, logger: logger}
}

type notificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}

type countResponse struct {
	Count int `json:"count"`
}

// List returns one page of notifications.
func (s *Service) List(ctx context.Context, query shared.ListQuery) ([]Notification, shared.Pagination, error) {
	var resp notificationsResponse
	if err := s.client.GetJSON(ctx, "/admin/notifications", query.Values(), &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Notifications, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// UnreadCount returns the cached unread counter, refreshing it from the
// backend when the cache entry expired.
func (s *Service) UnreadCount(ctx context.Context, sessionID string) (int, error) {
	key := countKeyPrefix + sessionID
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			if n, convErr := strconv.Atoi(cached); convErr == nil {
				return n, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("notification count cache read failed", slog.Any("error", err))
		}
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		var resp countResponse
		if err := s.client.GetJSON(ctx, "/admin/notifications/unread-count", nil, &resp); err != nil {
			return 0, err
		}
		if s.rdb != nil {
			if err := s.rdb.Set(ctx, key, resp.Count, countTTL).Err(); err != nil {
				s.logger.Warn("notification count cache write failed", slog.Any("error", err))
			}
		}
		return resp.Count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// MarkRead flags one notification as read and invalidates the counter.
func (s *Service) MarkRead(ctx context.Context, sessionID, id string) error {
	if err := s.client.PatchJSON(ctx, "/admin/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return err
	}
	s.invalidate(ctx, sessionID)
	return nil
}

// MarkAllRead flags every notification as read and invalidates the counter.
func (s *Service) MarkAllRead(ctx context.Context, sessionID string) error {
	if err := s.client.PostJSON(ctx, "/admin/notifications/read-all", nil, nil); err != nil {
		return err
	}
	s.invalidate(ctx, sessionID)
	return nil
}

// Broadcast pushes a message to app users.
func (s *Service) Broadcast(ctx context.Context, req BroadcastRequest) error {
	return s.client.PostJSON(ctx, "/admin/notifications/broadcast", req, nil)
}

func (s *Service) invalidate(ctx context.Context, sessionID string) {
	if s.rdb == nil || sessionID == "" {
		return
	}
	if err := s.rdb.Del(ctx, countKeyPrefix+sessionID).Err(); err != nil {
		s.logger.Warn("notification count invalidation failed", slog.Any("error", err))
	}
}
