package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// makeTestRouter creates a Gin engine with a single middleware and a test route.
func makeTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRequest(r http.Handler, method, ip string) int {
	req := httptest.NewRequest(method, "/test", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware_AllowsInitialBurst(t *testing.T) {
	router := makeTestRouter(RateLimitMiddleware(NewIPRateLimiter(1, 5), nil))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "10.0.0.1"), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, http.MethodGet, "10.0.0.1"))
}

func TestRateLimitMiddleware_PerIP(t *testing.T) {
	router := makeTestRouter(RateLimitMiddleware(NewIPRateLimiter(1, 1), nil))

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, http.MethodGet, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "10.0.0.2"))
}

func TestLoginRateLimitMiddleware_OnlyThrottlesPosts(t *testing.T) {
	throttled := 0
	router := makeTestRouter(LoginRateLimitMiddleware(NewIPRateLimiter(1, 3), func(c *gin.Context) {
		throttled++
		c.String(http.StatusTooManyRequests, "slow down")
	}))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "10.0.0.9"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, http.MethodPost, "10.0.0.9"))
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "10.0.0.9"))
	assert.Equal(t, 1, throttled)
}

func TestNewIPRateLimiterClampsArguments(t *testing.T) {
	l := NewIPRateLimiter(0, 0)
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
}
