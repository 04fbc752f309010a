package token

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeReadsClaims(t *testing.T) {
	raw := mint(t, jwt.MapClaims{
		"sub":       "user-7",
		"role":      " Admin ",
		"scope":     "admin",
		"companyId": "co-3",
	})
	claims := Decode(raw)
	if claims == nil {
		t.Fatal("expected claims, got nil")
	}
	if claims.Subject != "user-7" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Errorf("role not lower-cased and trimmed: %q", claims.Role)
	}
	if claims.Scope != "admin" {
		t.Errorf("scope = %q", claims.Scope)
	}
	if claims.CompanyID != "co-3" {
		t.Errorf("companyId = %q", claims.CompanyID)
	}
}

func TestDecodeMissingScope(t *testing.T) {
	raw := mint(t, jwt.MapClaims{"sub": "user-1", "role": "moderator"})
	claims := Decode(raw)
	if claims == nil {
		t.Fatal("expected claims, got nil")
	}
	if claims.Scope != "" {
		t.Errorf("scope should be empty for legacy tokens, got %q", claims.Scope)
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not-a-token",
		"one.two",
		"a.b.c.d",
		"!!!.???.###",
		"eyJhbGciOiJIUzI1NiJ9.not_base64.sig",
	}
	for _, raw := range inputs {
		if claims := Decode(raw); claims != nil {
			t.Errorf("Decode(%q) = %+v, want nil", raw, claims)
		}
	}
}

func TestDecodeNonStringClaims(t *testing.T) {
	raw := mint(t, jwt.MapClaims{"sub": 42, "role": true, "scope": 1.5})
	claims := Decode(raw)
	if claims == nil {
		t.Fatal("expected claims, got nil")
	}
	if claims.Subject != "" || claims.Role != "" || claims.Scope != "" {
		t.Errorf("non-string claims should be ignored: %+v", claims)
	}
}
