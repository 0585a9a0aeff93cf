package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the exp claim of a JWT access token without
// verifying its signature — the client never holds the signing key, and
// the backend is still the authority on validity. Opaque tokens and JWTs
// without an exp claim return ok=false; for those the profile fetch
// decides.
func TokenExpiry(tok string) (time.Time, bool) {
	if tok == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
