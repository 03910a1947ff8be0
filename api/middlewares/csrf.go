package middlewares

import (
	"crypto/subtle"
	"net/http"

	"Litreview/api/auth"
	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// CSRFMiddleware implements the double submit cookie pattern. Every response
// gets a csrf_token cookie; mutating requests must echo it back in the
// csrf_token form field or the X-CSRF-Token header.
func CSRFMiddleware(enabled, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieToken, err := c.Cookie(auth.CSRFTokenCookie)
		if err != nil || cookieToken == "" {
			cookieToken = auth.SetCSRFCookie(c, secureCookie)
		}
		httpctx.SetCSRFToken(c, cookieToken)

		if !enabled || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		submitted := c.GetHeader(auth.CSRFTokenHeader)
		if submitted == "" {
			submitted = c.PostForm(auth.CSRFTokenField)
		}
		if submitted == "" || subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			c.String(http.StatusForbidden, "CSRF verification failed. Request aborted.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// isSafeMethod returns true for HTTP methods that do not mutate state.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
