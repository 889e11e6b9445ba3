package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of token claims the console cares about.
type TokenClaims struct {
	Subject   string
	Username  string
	Roles     []string
	ExpiresAt int64 // unix seconds, 0 when absent
}

// DecodeClaims parses the JWT payload without verifying the signature.
// The console treats the token as an opaque credential; decoding is
// best-effort and only feeds display and expiry scheduling.
func DecodeClaims(raw string) (*TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	tc := &TokenClaims{}
	if sub, err := mc.GetSubject(); err == nil {
		tc.Subject = sub
	}
	if v, ok := mc["preferred_username"].(string); ok {
		tc.Username = v
	} else if v, ok := mc["username"].(string); ok {
		tc.Username = v
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		tc.ExpiresAt = exp.Unix()
	}
	if raw, ok := mc["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				tc.Roles = append(tc.Roles, s)
			}
		}
	}
	return tc, nil
}

// fallback signing secret for development tokens when none is configured
const devFallbackSecret = "taskmate-panel-dev"

// DevToken mints a locally signed HS256 token so the console stays usable
// without a live backend. Development only; never a security boundary.
func DevToken(secret, username string, scope Scope, ttl time.Duration) (string, error) {
	if secret == "" {
		secret = devFallbackSecret
	}
	claims := jwt.MapClaims{
		"sub":                username,
		"preferred_username": username,
		"roles":              defaultRoles[scope],
		"iat":                time.Now().Unix(),
		"exp":                time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}
