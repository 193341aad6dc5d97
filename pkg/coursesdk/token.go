package coursesdk

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims are the access-token claims the client peeks at. The token is
// still treated as an opaque bearer credential on the wire; this parse is
// best-effort and unverified, used only for the proactive refresh buffer and
// display hints.
type tokenClaims struct {
	jwt.RegisteredClaims

	Roles []string `json:"roles,omitempty"`
}

// peekClaims parses a JWT access token without verifying its signature.
// Verification is the server's job; the client only wants the recorded
// expiry and role hints. Returns false for tokens that are not JWTs.
func peekClaims(token string) (tokenClaims, bool) {
	var claims tokenClaims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return tokenClaims{}, false
	}

	return claims, true
}

// tokenExpiry reports the expiry recorded in a JWT access token. ok is false
// when the token is not a JWT or carries no exp claim; such tokens stay
// opaque and only the reactive 401 path applies.
func tokenExpiry(token string) (time.Time, bool) {
	claims, ok := peekClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
