package rbac

import (
	"log/slog"
	"net/http"

	"github.com/mazaadati/bidmaster-admin/internal/platform/httpx"
	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// Middleware wires policy-table authorization helpers for HTTP handlers.
type Middleware struct {
	Policy *Policy
	Logger *slog.Logger
}

// RequireModule ensures the current role may see the module. Unknown or
// missing roles are denied, matching the fail-closed table semantics. A
// request without an identity gets the 401 session shape so the panel
// returns to login; a recognized role outside the table row gets 403.
func (m Middleware) RequireModule(module Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := m.currentRole(r)
			if !ok {
				httpx.RespondError(w, shared.ErrSessionEvicted)
				return
			}
			if !m.Policy.HasModuleAccess(role, module) {
				httpx.RespondError(w, shared.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireWrite ensures the current role carries write capability in addition
// to module access.
func (m Middleware) RequireWrite(module Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := m.currentRole(r)
			if !ok {
				httpx.RespondError(w, shared.ErrSessionEvicted)
				return
			}
			if !m.Policy.HasModuleAccess(role, module) {
				httpx.RespondError(w, shared.ErrForbidden)
				return
			}
			if !m.Policy.CanWrite(role) && !m.Policy.OwnScoped(role) {
				httpx.RespondError(w, shared.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) currentRole(r *http.Request) (Role, bool) {
	id := shared.IdentityFromContext(r.Context())
	if id.Role == "" {
		return "", false
	}
	role, ok := Normalize(id.Role)
	if !ok && m.Logger != nil {
		m.Logger.Warn("unknown role in session", slog.String("role", id.Role))
	}
	return role, ok
}
