// Package upstream talks to the auction backend: origin resolution with a
// one-shot connection fallback, and a JSON client every resource module
// shares.
package upstream

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// OriginConfig declares the candidate backend origins.
type OriginConfig struct {
	// Explicit wins over every heuristic when set.
	Explicit string
	// Local is the development backend origin.
	Local string
	// Production is the fixed hosted origin and the final fallback.
	Production string
	// ServedHost is the host the admin panel itself is served from; a
	// loopback or private address prefers the local origin.
	ServedHost string
	// ProductionMode forces the production origin and clears any stale
	// local override. A production deployment must never be coerced into
	// calling a loopback address by leftover state.
	ProductionMode bool
}

// OverrideStore persists the origin chosen by a successful fallback for the
// remainder of the session.
type OverrideStore interface {
	GetOverride(ctx context.Context) (string, error)
	SetOverride(ctx context.Context, origin string) error
	ClearOverride(ctx context.Context) error
}

// RedisOverrideStore keeps the override in Redis.
type RedisOverrideStore struct {
	Client *redis.Client
	TTL    time.Duration
}

const overrideKey = "upstream:origin_override"

// GetOverride returns the persisted origin or "".
func (s *RedisOverrideStore) GetOverride(ctx context.Context) (string, error) {
	value, err := s.Client.Get(ctx, overrideKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetOverride persists the origin.
func (s *RedisOverrideStore) SetOverride(ctx context.Context, origin string) error {
	return s.Client.Set(ctx, overrideKey, origin, s.TTL).Err()
}

// ClearOverride removes the persisted origin.
func (s *RedisOverrideStore) ClearOverride(ctx context.Context) error {
	err := s.Client.Del(ctx, overrideKey).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// MemoryOverrideStore is an in-process OverrideStore for tests.
type MemoryOverrideStore struct {
	origin string
}

// GetOverride returns the stored origin.
func (s *MemoryOverrideStore) GetOverride(context.Context) (string, error) {
	return s.origin, nil
}

// SetOverride stores the origin.
func (s *MemoryOverrideStore) SetOverride(_ context.Context, origin string) error {
	s.origin = origin
	return nil
}

// ClearOverride removes the stored origin.
func (s *MemoryOverrideStore) ClearOverride(context.Context) error {
	s.origin = ""
	return nil
}

// Resolver decides which backend origin a request targets.
type Resolver struct {
	cfg       OriginConfig
	overrides OverrideStore
	logger    *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(cfg OriginConfig, overrides OverrideStore, logger *slog.Logger) *Resolver {
	return &Resolver{cfg: cfg, overrides: overrides, logger: logger}
}

// Resolve returns the origin for the next request. Decision order: explicit
// configuration, production lockout, persisted override, local-host
// heuristic, fixed production origin.
func (r *Resolver) Resolve(ctx context.Context) string {
	if r.cfg.Explicit != "" {
		return r.cfg.Explicit
	}
	if r.cfg.ProductionMode {
		r.clearStaleLocalOverride(ctx)
		return r.cfg.Production
	}
	if r.overrides != nil {
		override, err := r.overrides.GetOverride(ctx)
		if err != nil && r.logger != nil {
			r.logger.Warn("read origin override", slog.Any("error", err))
		}
		if override != "" {
			return override
		}
	}
	if isPrivateHost(r.cfg.ServedHost) && r.cfg.Local != "" {
		return r.cfg.Local
	}
	return r.cfg.Production
}

// Persist records the origin a successful fallback landed on.
func (r *Resolver) Persist(ctx context.Context, origin string) {
	if r.overrides == nil {
		return
	}
	if err := r.overrides.SetOverride(ctx, origin); err != nil && r.logger != nil {
		r.logger.Warn("persist origin override", slog.Any("error", err))
	}
}

// Production returns the fixed hosted origin.
func (r *Resolver) Production() string {
	return r.cfg.Production
}

// IsLocal reports whether the origin is the configured local backend.
func (r *Resolver) IsLocal(origin string) bool {
	return r.cfg.Local != "" && origin == r.cfg.Local
}

func (r *Resolver) clearStaleLocalOverride(ctx context.Context) {
	if r.overrides == nil {
		return
	}
	override, err := r.overrides.GetOverride(ctx)
	if err != nil || override == "" {
		return
	}
	if override == r.cfg.Local || isPrivateOrigin(override) {
		if err := r.overrides.ClearOverride(ctx); err != nil && r.logger != nil {
			r.logger.Warn("clear stale local override", slog.Any("error", err))
		}
	}
}

func isPrivateOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return isPrivateHost(u.Hostname())
}

func isPrivateHost(host string) bool {
	host = strings.TrimSpace(host)
	if host == "" {
		return false
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate()
}
