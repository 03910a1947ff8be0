package controllers

import (
	"errors"
	"net/http"

	"Litreview/api/auth"
	"Litreview/api/metrics"
	"Litreview/api/models"
	"Litreview/api/utils/formaterror"

	"github.com/gin-gonic/gin"
)

func (server *Server) LoginPage(c *gin.Context) {
	server.render(c, http.StatusOK, "login", gin.H{
		"Title": "Connexion",
		"Next":  c.Query("next"),
	})
}

func (server *Server) Login(c *gin.Context) {
	user := models.User{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	next := c.PostForm("next")
	user.Prepare()

	page := gin.H{
		"Title":    "Connexion",
		"Username": user.Username,
		"Next":     next,
	}

	if errorMessages := user.Validate("login"); len(errorMessages) > 0 {
		page["Errors"] = errorMessages
		server.render(c, http.StatusUnprocessableEntity, "login", page)
		return
	}

	signedIn, err := models.SignIn(server.DB.WithContext(c.Request.Context()), user.Username, user.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			metrics.RecordLogin("failure")
			page["Errors"] = formaterror.FormatError(err)
			server.render(c, http.StatusUnprocessableEntity, "login", page)
			return
		}
		server.internalError(c, err)
		return
	}

	if err := server.startSession(c, signedIn); err != nil {
		server.internalError(c, err)
		return
	}
	metrics.RecordLogin("success")
	redirect(c, safeNext(next))
}

// loginThrottled answers a rate limited login attempt with the login form.
func (server *Server) loginThrottled(c *gin.Context) {
	metrics.RecordLogin("throttled")
	server.render(c, http.StatusTooManyRequests, "login", gin.H{
		"Title":    "Connexion",
		"Username": c.PostForm("username"),
		"Next":     c.PostForm("next"),
		"Errors": map[string]string{
			"__all__": "Trop de tentatives de connexion. Veuillez réessayer dans quelques minutes.",
		},
	})
}

func (server *Server) Logout(c *gin.Context) {
	if token := auth.SessionToken(c); token != "" {
		if err := server.Sessions.Revoke(c.Request.Context(), token); err != nil {
			server.Logger.Warn("failed to revoke session", "error", err)
		}
	}
	auth.ClearSessionCookie(c, server.Config.Auth.CookieSecure)
	redirect(c, "/")
}

func (server *Server) startSession(c *gin.Context, user *models.User) error {
	token, err := server.Sessions.CreateToken(user.ID)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(c, token, server.Sessions.TTL(), server.Config.Auth.CookieSecure)
	return nil
}
