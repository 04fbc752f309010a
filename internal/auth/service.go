package auth

import (
	"context"
	"fmt"

	"github.com/mazaadati/bidmaster-admin/internal/rbac"
	"github.com/mazaadati/bidmaster-admin/internal/session"
	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/token"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service wraps the admin login rules.
type Service struct {
	client *upstream.Client
	policy *rbac.Policy
}

// NewService constructs a Service.
func NewService(client *upstream.Client, policy *rbac.Policy) *Service {
	return &Service{client: client, policy: policy}
}

// LoginResult is what a successful authentication yields.
type LoginResult struct {
	Token string
	Role  rbac.Role
}

// Login authenticates against the auction backend and validates the issued
// token before it is ever stored. A token with a foreign or unknown scope is
// rejected here, not after the panel has booted.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	// The login call must go out unauthenticated even when a stale slot
	// cookie is still around.
	ctx = shared.ContextWithSessionID(ctx, "")

	var resp loginUpstreamResponse
	if err := s.client.PostJSON(ctx, "/auth/admin-login", map[string]string{
		"phone": req.Phone,
		"role":  req.Role,
	}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, resp.Message)
		}
		return nil, shared.ErrInvalidCredentials
	}

	switch verdict := session.Check(resp.Token); verdict {
	case session.VerdictEvictMobile, session.VerdictEvictInvalid:
		return nil, fmt.Errorf("%w: token not issued for the admin panel", shared.ErrScopeViolation)
	}

	role, ok := s.effectiveRole(resp, req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role", shared.ErrInvalidCredentials)
	}
	return &LoginResult{Token: resp.Token, Role: role}, nil
}

// effectiveRole prefers the role claimed inside the token, then the response
// body, then the role the admin selected. Sources spell roles inconsistently
// so everything funnels through Normalize.
func (s *Service) effectiveRole(resp loginUpstreamResponse, requested string) (rbac.Role, bool) {
	if claims := token.Decode(resp.Token); claims != nil && claims.Role != "" {
		if role, ok := rbac.Normalize(claims.Role); ok {
			return role, true
		}
	}
	for _, raw := range []string{resp.Role, resp.User.Role, requested} {
		if raw == "" {
			continue
		}
		if role, ok := rbac.Normalize(raw); ok {
			return role, true
		}
	}
	return "", false
}

// SessionInfo builds the panel boot payload for a role.
func (s *Service) SessionInfo(role rbac.Role) SessionInfo {
	modules := s.policy.ModulesFor(role)
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = string(m)
	}
	return SessionInfo{
		Role:            string(role),
		CanWrite:        s.policy.CanWrite(role),
		ReadOnly:        s.policy.IsReadOnly(role),
		Modules:         names,
		AccessiblePages: s.policy.AccessiblePages(role),
	}
}
