package application

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry inspects the session token's exp claim for display.
// The claim is read without signature verification; only the server
// decides whether a token is actually valid.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}

	return expiry.Time, true
}
