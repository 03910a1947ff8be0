package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"Litreview/api/models"
	"Litreview/api/utils/flash"
	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

const subscriptionsPath = "/subscriptions/"

func (server *Server) renderSubscriptions(c *gin.Context, status int, username string, errorMessages map[string]string) {
	uid, _ := httpctx.CurrentUserID(c)
	db := server.DB.WithContext(c.Request.Context())

	following, err := models.FindFollowing(db, uid)
	if err != nil {
		server.internalError(c, err)
		return
	}
	followers, err := models.FindFollowers(db, uid)
	if err != nil {
		server.internalError(c, err)
		return
	}

	server.render(c, status, "subscriptions", gin.H{
		"Title":     "Abonnements",
		"Following": following,
		"Followers": followers,
		"Username":  username,
		"Errors":    errorMessages,
	})
}

func (server *Server) SubscriptionsPage(c *gin.Context) {
	server.renderSubscriptions(c, http.StatusOK, "", nil)
}

// FollowUser follows the account named in the form. Business rule failures
// come back as flash messages on the subscriptions page.
func (server *Server) FollowUser(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	if username == "" {
		server.renderSubscriptions(c, http.StatusUnprocessableEntity, username, map[string]string{
			"username": "Ce champ est obligatoire.",
		})
		return
	}
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		server.renderSubscriptions(c, http.StatusUnprocessableEntity, "", map[string]string{
			"username": fmt.Sprintf("Assurez-vous que cette valeur comporte au plus %d caractères.", models.MaxUsernameLength),
		})
		return
	}

	user, ok := httpctx.CurrentUser(c)
	if !ok {
		redirect(c, "/")
		return
	}

	target, err := models.FollowUser(server.DB.WithContext(c.Request.Context()), user, username)
	switch {
	case err == nil:
		flash.Add(c, flash.Success, fmt.Sprintf("Vous suivez maintenant %s.", target.Username))
	case errors.Is(err, models.ErrSelfFollow):
		flash.Add(c, flash.Error, "Vous ne pouvez pas vous suivre vous-même.")
	case errors.Is(err, models.ErrAlreadyFollowing):
		flash.Add(c, flash.Warning, fmt.Sprintf("Vous suivez déjà %s.", target.Username))
	case errors.Is(err, models.ErrUnknownUser):
		flash.Add(c, flash.Error, fmt.Sprintf("L'utilisateur %s n'existe pas.", username))
	default:
		server.internalError(c, err)
		return
	}
	redirect(c, subscriptionsPath)
}

// followedUser loads the :user_id account, answering 404 unless the current
// user follows it.
func (server *Server) followedUser(c *gin.Context) (*models.User, bool) {
	id, ok := idParam(c, "user_id")
	if !ok {
		server.NotFound(c)
		return nil, false
	}
	uid, _ := httpctx.CurrentUserID(c)
	db := server.DB.WithContext(c.Request.Context())

	target, err := (&models.User{}).FindUserByID(db, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
		} else {
			server.internalError(c, err)
		}
		return nil, false
	}

	following, err := models.IsFollowing(db, uid, target.ID)
	if err != nil {
		server.internalError(c, err)
		return nil, false
	}
	if !following {
		server.NotFound(c)
		return nil, false
	}
	return target, true
}

func (server *Server) UnfollowPage(c *gin.Context) {
	target, ok := server.followedUser(c)
	if !ok {
		return
	}
	server.render(c, http.StatusOK, "unfollow", gin.H{
		"Title":  "Se désabonner",
		"Target": target,
	})
}

func (server *Server) UnfollowUser(c *gin.Context) {
	target, ok := server.followedUser(c)
	if !ok {
		return
	}
	uid, _ := httpctx.CurrentUserID(c)

	if err := models.Unfollow(server.DB.WithContext(c.Request.Context()), uid, target.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
			return
		}
		server.internalError(c, err)
		return
	}

	flash.Add(c, flash.Success, fmt.Sprintf("Vous ne suivez plus %s.", target.Username))
	redirect(c, subscriptionsPath)
}
