package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"Litreview/api/auth"
	"Litreview/api/models"
	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionMiddleware resolves the session cookie into the current user. It
// never rejects a request; RequireLogin does that for protected routes.
func SessionMiddleware(db *gorm.DB, sessions *auth.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.SessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := sessions.ParseToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrRevokedToken) {
				slog.Warn("session check failed", "error", err)
			}
			auth.ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			auth.ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		user, err := (&models.User{}).FindUserByID(db.WithContext(c.Request.Context()), userID)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				slog.Error("failed to load session user", "user_id", userID, "error", err)
			}
			auth.ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		httpctx.SetCurrentUser(c, user)
		c.Next()
	}
}

// RequireLogin sends anonymous visitors to the login page, remembering
// where they were going.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := httpctx.CurrentUserID(c); ok {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, "/?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// RedirectIfAuthenticated keeps signed-in users away from the login and
// signup pages.
func RedirectIfAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := httpctx.CurrentUserID(c); ok {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
