package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/taskmate/web-services/internal/session"
)

// SessionSource exposes the current console session. *session.Manager
// satisfies it; guards read the session only through here and never decode
// the token themselves.
type SessionSource interface {
	Current() session.Session
}

// RequireSession gates a route subtree on session presence. Unauthenticated
// requests are redirected to the login route with the originally requested
// location preserved, so a successful login can return the operator there.
func RequireSession(src SessionSource, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if src.Current().Empty() {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, loginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireScope further restricts a subtree to an allow-list of scopes.
// A session outside the list is silently downgraded: redirected to the
// fallback route rather than shown an error. Compose it inside
// RequireSession; it assumes a session is present.
func RequireScope(src SessionSource, fallbackPath string, allowed ...session.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		cur := src.Current()
		for _, s := range allowed {
			if cur.Scope == s {
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusFound, fallbackPath)
		c.Abort()
	}
}
