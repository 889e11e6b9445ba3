package session

import (
	"fmt"
	"time"
)

// Scope is the authorization tier of an admin session.
type Scope string

const (
	// ScopeSystem grants access to every console page.
	ScopeSystem Scope = "system"
	// ScopeOrg restricts the session to organization-level pages.
	ScopeOrg Scope = "org"
)

// role claim values issued by the backend
const (
	roleSystemAdmin = "system_admin"
	roleOrgAdmin    = "org_admin"
)

// defaultRoles is the scope-indexed role set used when a token carries no
// usable roles claim.
var defaultRoles = map[Scope][]string{
	ScopeSystem: {roleSystemAdmin},
	ScopeOrg:    {roleOrgAdmin},
}

// ScopeFromRoles maps backend role claims to a scope. The mapping is
// exhaustive over known claims; anything else yields the requested fallback.
func ScopeFromRoles(roles []string, fallback Scope) Scope {
	for _, r := range roles {
		switch r {
		case roleSystemAdmin:
			return ScopeSystem
		case roleOrgAdmin:
			return ScopeOrg
		}
	}
	return fallback
}

// Session is the console's client-held authentication state. The zero value
// is the logged-out state. ExpiresAt is unix seconds; zero means the session
// never auto-expires.
type Session struct {
	Token     string   `json:"token"`
	Scope     Scope    `json:"scope"`
	Roles     []string `json:"roles"`
	Username  string   `json:"username"`
	ExpiresAt int64    `json:"expiresAt"`
}

// Empty reports whether the session is the logged-out state.
func (s Session) Empty() bool { return s.Token == "" }

// Active reports whether the session holds a token that has not expired.
func (s Session) Active(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt == 0 || now.Unix() < s.ExpiresAt
}

// AuthenticationError is returned when a login attempt fails against the
// backend and no development bypass applies.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
