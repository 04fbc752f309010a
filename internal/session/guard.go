package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// EvictionHook is notified whenever a credential slot is cleared, so metrics
// and logs stay out of the decision path.
type EvictionHook func(sid, reason string)

// Transport is the request-boundary interceptor wrapped around every
// outbound upstream call. Before the request leaves it re-validates the
// stored credential's scope, evicting on violation; after the response it
// evicts on 401 regardless of which request triggered it.
type Transport struct {
	Base    http.RoundTripper
	Store   Store
	Logger  *slog.Logger
	OnEvict EvictionHook
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()
	sid := shared.SessionIDFromContext(ctx)

	raw := ""
	if sid != "" && t.Store != nil {
		stored, err := t.Store.Get(ctx, sid)
		if err != nil {
			return nil, fmt.Errorf("session: read credential: %w", err)
		}
		raw = stored
	}

	switch verdict := Check(raw); verdict {
	case VerdictEvictMobile, VerdictEvictInvalid:
		reason := verdictReason(verdict)
		t.evict(ctx, sid, reason)
		return nil, fmt.Errorf("%w: %s", shared.ErrScopeViolation, reason)
	case VerdictOK, VerdictLegacyOK:
		req = req.Clone(ctx)
		req.Header.Set("Authorization", "Bearer "+raw)
	case VerdictAnonymous:
		// Public endpoint traffic, nothing to attach.
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && sid != "" {
		_ = resp.Body.Close()
		t.evict(ctx, sid, "upstream 401")
		return nil, shared.ErrSessionEvicted
	}
	return resp, nil
}

func (t *Transport) evict(ctx context.Context, sid, reason string) {
	if sid == "" || t.Store == nil {
		return
	}
	if err := t.Store.Clear(ctx, sid); err != nil && t.Logger != nil {
		t.Logger.Error("evict credential", slog.String("sid", sid), slog.Any("error", err))
		return
	}
	if t.Logger != nil {
		t.Logger.Warn("credential evicted", slog.String("reason", reason))
	}
	if t.OnEvict != nil {
		t.OnEvict(sid, reason)
	}
}

func verdictReason(v Verdict) string {
	switch v {
	case VerdictEvictMobile:
		return "token issued for mobile scope"
	case VerdictEvictInvalid:
		return "unrecognized token scope"
	default:
		return "scope violation"
	}
}
