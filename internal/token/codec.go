// Package token decodes bearer credentials for UI-routing decisions. The
// decode is advisory only: signatures are never verified here, the auction
// backend remains the sole authority for every mutating operation.
package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Audience scopes a token may carry.
const (
	ScopeAdmin  = "admin"
	ScopeMobile = "mobile"
)

// Claims carries the fields the gateway reads out of a compact token.
// Scope is empty when the claim is absent (legacy tokens).
type Claims struct {
	Subject   string
	Role      string
	Scope     string
	CompanyID string
}

// Decode splits a compact three-segment token, base64url-decodes the payload
// and extracts the advisory claims. Malformed input of any kind returns nil;
// a token the gateway cannot read is simply a token without claims.
func Decode(raw string) *Claims {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}
	c := &Claims{}
	if v, ok := claims["sub"].(string); ok {
		c.Subject = v
	}
	if v, ok := claims["role"].(string); ok {
		c.Role = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := claims["scope"].(string); ok {
		c.Scope = strings.TrimSpace(v)
	}
	if v, ok := claims["companyId"].(string); ok {
		c.CompanyID = v
	}
	return c
}
