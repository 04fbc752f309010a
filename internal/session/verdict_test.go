package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestCheckDecisionTable(t *testing.T) {
	adminTok := mintToken(t, jwt.MapClaims{"scope": "admin"})
	mobileTok := mintToken(t, jwt.MapClaims{"scope": "mobile"})
	weirdTok := mintToken(t, jwt.MapClaims{"scope": "service"})
	legacyTok := mintToken(t, jwt.MapClaims{"sub": "user-1"})

	cases := []struct {
		name string
		raw  string
		want Verdict
	}{
		{"empty slot", "", VerdictAnonymous},
		{"admin scope", adminTok, VerdictOK},
		{"mobile scope", mobileTok, VerdictEvictMobile},
		{"unknown scope", weirdTok, VerdictEvictInvalid},
		{"no scope claim", legacyTok, VerdictLegacyOK},
		{"undecodable token", "garbage-token", VerdictLegacyOK},
	}
	for _, tc := range cases {
		if got := Check(tc.raw); got != tc.want {
			t.Errorf("%s: Check = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestVerdictEvicts(t *testing.T) {
	evicting := map[Verdict]bool{
		VerdictAnonymous:    false,
		VerdictOK:           false,
		VerdictLegacyOK:     false,
		VerdictEvictMobile:  true,
		VerdictEvictInvalid: true,
	}
	for v, want := range evicting {
		if got := v.Evicts(); got != want {
			t.Errorf("Verdict(%d).Evicts() = %v, want %v", v, got, want)
		}
	}
}
