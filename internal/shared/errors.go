package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden indicates the current role may not perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrSessionEvicted indicates the stored credential was cleared and the
	// admin must authenticate again.
	ErrSessionEvicted = errors.New("session evicted")
	// ErrScopeViolation indicates a token issued for a foreign audience
	// (for example the mobile app) was presented to the admin surface.
	ErrScopeViolation = errors.New("token scope not valid for admin surface")
	// ErrUpstreamUnavailable indicates the auction backend could not be
	// reached on any configured origin.
	ErrUpstreamUnavailable = errors.New("cannot reach server")
)
