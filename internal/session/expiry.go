package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PeekExpiry best-effort decodes the token as a JWT and returns its exp
// claim. Display only: the signature is NOT verified and the result must
// never gate a request or a navigation. Opaque (non-JWT) tokens return
// ok=false, which is the normal case.
func PeekExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
