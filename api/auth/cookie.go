package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie   = "session"
	CSRFTokenCookie = "csrf_token"
	CSRFTokenField  = "csrf_token"
	CSRFTokenHeader = "X-CSRF-Token"
	csrfTokenBytes  = 32
)

// SetSessionCookie stores the signed session token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// SessionToken returns the raw session cookie, or "" when absent.
func SessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// SetCSRFCookie issues a fresh random token and returns it so the current
// response can embed it in forms.
func SetCSRFCookie(c *gin.Context, secure bool) string {
	token := GenerateCSRFToken()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFTokenCookie, token, 0, "/", "", secure, true)
	return token
}

func GenerateCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}
