package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/taskmate/web-services/internal/locale"
)

func siteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	for _, l := range []string{"en", "fa", "ar"} {
		g := r.Group("/" + l)
		g.GET("/pricing", func(c *gin.Context) { c.String(http.StatusOK, "pricing") })
	}
	r.NoRoute(LocaleRedirect(locale.Default))
	return r
}

func TestUnprefixedPathRedirectsToDefaultLocale(t *testing.T) {
	r := siteRouter()
	for _, path := range []string{"/", "/pricing", "/features"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusFound, w.Code)

		want := "/en" + path
		if path == "/" {
			want = "/en"
		}
		assert.Equal(t, want, w.Header().Get("Location"))
	}
}

func TestRedirectHonorsAcceptLanguage(t *testing.T) {
	r := siteRouter()
	req := httptest.NewRequest("GET", "/pricing", nil)
	req.Header.Set("Accept-Language", "fa-IR,fa;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "/fa/pricing", w.Header().Get("Location"))
}

func TestRedirectPreservesQuery(t *testing.T) {
	r := siteRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/pricing?ref=footer", nil))
	assert.Equal(t, "/en/pricing?ref=footer", w.Header().Get("Location"))
}

func TestPrefixedUnknownPageIs404(t *testing.T) {
	r := siteRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/fa/no-such-page", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
