// Package httpx provides HTTP response utilities following RFC7807 problem
// details.
package httpx

import (
	"errors"
	"net/http"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// ErrValidation marks request payloads that failed validation.
var ErrValidation = errors.New("validation failed")

// RespondError maps gateway errors to RFC7807 responses. Scope violations
// and evictions come back as 401 so the panel returns to the login entry
// point; raw error objects are never shown to the end user.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrScopeViolation):
		Problem(w, http.StatusUnauthorized, "Session Ended", err.Error())
	case errors.Is(err, shared.ErrSessionEvicted):
		Problem(w, http.StatusUnauthorized, "Session Ended", "please sign in again")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "")
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "")
	case errors.Is(err, shared.ErrUpstreamUnavailable):
		Problem(w, http.StatusBadGateway, "Server Unreachable", "cannot reach server")
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
