package shared

import "context"

// Identity describes the admin the current request acts for. Role carries the
// raw spelling from the decoded token; callers normalize before any policy
// lookup.
type Identity struct {
	SessionID string
	Subject   string
	Role      string
	CompanyID string
}

type identityContextKey struct{}

type sessionIDContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context. The zero value
// means the request is unauthenticated.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityContextKey{}).(Identity)
	return id
}

// ContextWithSessionID tags the context with the admin session slot id so
// outbound upstream calls can locate the stored credential.
func ContextWithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, sid)
}

// SessionIDFromContext returns the admin session slot id, or "".
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDContextKey{}).(string)
	return sid
}
