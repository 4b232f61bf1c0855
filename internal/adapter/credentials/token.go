package credentials

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expired reports whether token is a JWT whose exp claim has passed. Opaque
// tokens are never considered expired; the backend decides for them.
func expired(token string, now time.Time) bool {
	exp, ok := expiry(token)
	return ok && !exp.After(now)
}

func expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TTL is the remaining lifetime of a JWT, or zero when the token carries no
// expiry.
func TTL(token string, now time.Time) time.Duration {
	exp, ok := expiry(token)
	if !ok {
		return 0
	}
	if d := exp.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Static serves a fixed token, typically API_TOKEN from the environment.
type Static struct {
	token string
	now   func() time.Time
}

func NewStatic(token string) *Static {
	return &Static{token: token, now: time.Now}
}

func (s *Static) Token(ctx context.Context) (string, error) {
	if s.token == "" || expired(s.token, s.now()) {
		return "", nil
	}
	return s.token, nil
}
