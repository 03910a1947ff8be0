package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	visitorTTL     = 10 * time.Minute
	pruneThreshold = 1024
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    time.Duration
	burst    int
}

// NewIPRateLimiter allows perMinute requests per IP on average with the
// given burst.
func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		every:    time.Minute / time.Duration(perMinute),
		burst:    burst,
	}
}

func (l *IPRateLimiter) getVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.visitors) >= pruneThreshold {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, key)
			}
		}
	}

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Every(l.every), l.burst)
		l.visitors[ip] = &visitor{limiter: limiter, lastSeen: now}
		return limiter
	}

	v.lastSeen = now
	return v.limiter
}

// Allow reports whether ip may make another request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.getVisitor(ip).Allow()
}

// RateLimitMiddleware rejects requests from an IP that exhausted its bucket.
// onLimit, when set, writes the response instead of the plain text default.
func RateLimitMiddleware(l *IPRateLimiter, onLimit func(c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			if onLimit != nil {
				onLimit(c)
			} else {
				c.String(http.StatusTooManyRequests, "Too many requests. Please wait and try again.")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoginRateLimitMiddleware only throttles form submissions, so the login
// page itself always renders.
func LoginRateLimitMiddleware(l *IPRateLimiter, onLimit func(c *gin.Context)) gin.HandlerFunc {
	limited := RateLimitMiddleware(l, onLimit)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		limited(c)
	}
}
