package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/token"
)

// CookieName identifies the admin session slot.
const CookieName = "bidmaster_admin_sid"

// Middleware loads the session slot id from the cookie, decodes the stored
// credential advisorily and places the resulting identity in context. It
// never blocks a request by itself; route guards and the upstream transport
// make the allow/deny decisions.
type Middleware struct {
	Store  Store
	Logger *slog.Logger
	Secure bool
	TTL    time.Duration
}

// Handler wraps next with identity loading.
func (m Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := ""
		if cookie, err := r.Cookie(CookieName); err == nil {
			sid = cookie.Value
		}
		if sid != "" {
			ctx = shared.ContextWithSessionID(ctx, sid)
			raw, err := m.Store.Get(ctx, sid)
			if err != nil {
				m.Logger.Error("load credential", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if claims := token.Decode(raw); claims != nil {
				ctx = shared.ContextWithIdentity(ctx, shared.Identity{
					SessionID: sid,
					Subject:   claims.Subject,
					Role:      claims.Role,
					CompanyID: claims.CompanyID,
				})
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Issue mints a fresh session slot id and sets the cookie. Login overwrites
// any previous slot; one active credential at a time.
func (m Middleware) Issue(w http.ResponseWriter) string {
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(m.TTL),
	})
	return sid
}

// Drop clears the cookie after logout or eviction.
func (m Middleware) Drop(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
