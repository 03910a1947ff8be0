package httpctx

import (
	"Litreview/api/models"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "userID"
	userKey      = "user"
	csrfTokenKey = "csrfToken"
)

// SetCurrentUser records the authenticated user for the rest of the request.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userIDKey, user.ID)
	c.Set(userKey, user)
}

// CurrentUserID retrieves the authenticated user ID from Gin context if present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok && user != nil
}

func SetCSRFToken(c *gin.Context, token string) {
	c.Set(csrfTokenKey, token)
}

func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfTokenKey)
}
