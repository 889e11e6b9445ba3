package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmate/web-services/internal/locale"
)

// LocaleRedirect is installed as the marketing site's NoRoute handler.
// Requests whose path lacks a recognized locale prefix are redirected to the
// same path under a resolved locale: the Accept-Language negotiation result
// when the header is present, the configured default otherwise. Paths that
// already carry a locale prefix are genuinely unknown pages.
func LocaleRedirect(def locale.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, _, ok := locale.SplitPath(path); ok {
			c.String(http.StatusNotFound, "page not found")
			return
		}
		target := def
		if header := c.GetHeader("Accept-Language"); header != "" {
			target = locale.FromAcceptLanguage(header)
		}
		dest := "/" + target.String()
		if path != "/" {
			dest += path
		}
		if q := c.Request.URL.RawQuery; q != "" {
			dest += "?" + q
		}
		c.Redirect(http.StatusFound, dest)
	}
}
