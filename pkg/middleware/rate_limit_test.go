package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/panel/login", mw, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestMemoryRateLimitRejectsBurstOverflow(t *testing.T) {
	r := limitedRouter(RateLimitMiddleware(0.0001, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/panel/login", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRedisRateLimitFixedWindow(t *testing.T) {
	srv, err := mr.Run()
	require.NoError(t, err)
	defer srv.Close()
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	// zero sustained rate with burst 2 -> 2 allowed per window
	r := limitedRouter(RedisRateLimitMiddleware(client, 0, 2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/panel/login", nil)
		req.RemoteAddr = "10.9.9.9:4321"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRedisRateLimitNilClientFallsBack(t *testing.T) {
	r := limitedRouter(RedisRateLimitMiddleware(nil, 100, 100, time.Second))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/panel/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
