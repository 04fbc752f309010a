package session

import "github.com/mazaadati/bidmaster-admin/internal/token"

// Verdict is the outcome of the scope decision table. Every privileged code
// path branches on this one function instead of re-implementing the chain.
type Verdict int

const (
	// VerdictAnonymous means no credential is stored; the request proceeds
	// unauthenticated (public endpoints exist).
	VerdictAnonymous Verdict = iota
	// VerdictOK means the token carries scope "admin"; attach and proceed.
	VerdictOK
	// VerdictLegacyOK means the token carries no scope claim (or could not
	// be decoded at all); legacy tokens attach and proceed. An unreadable
	// token is not by itself a violation, only an explicit bad scope is.
	VerdictLegacyOK
	// VerdictEvictMobile means the token was issued for the mobile app;
	// evict and reject before any network I/O.
	VerdictEvictMobile
	// VerdictEvictInvalid means the scope claim is present but recognized
	// for no audience; evict and reject.
	VerdictEvictInvalid
)

// Evicts reports whether the verdict requires clearing the credential slot.
func (v Verdict) Evicts() bool {
	return v == VerdictEvictMobile || v == VerdictEvictInvalid
}

// Check applies the scope decision table to a stored credential.
func Check(raw string) Verdict {
	if raw == "" {
		return VerdictAnonymous
	}
	claims := token.Decode(raw)
	if claims == nil || claims.Scope == "" {
		return VerdictLegacyOK
	}
	switch claims.Scope {
	case token.ScopeAdmin:
		return VerdictOK
	case token.ScopeMobile:
		return VerdictEvictMobile
	default:
		return VerdictEvictInvalid
	}
}
