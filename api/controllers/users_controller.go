package controllers

import (
	"errors"
	"net/http"

	"Litreview/api/metrics"
	"Litreview/api/models"
	"Litreview/api/utils/flash"
	"Litreview/api/utils/formaterror"

	"github.com/gin-gonic/gin"
)

func (server *Server) SignupPage(c *gin.Context) {
	server.render(c, http.StatusOK, "signup", gin.H{"Title": "Inscription"})
}

// Signup creates the account and signs the new user in straight away.
func (server *Server) Signup(c *gin.Context) {
	user := models.User{
		Username: c.PostForm("username"),
		Password: c.PostForm("password1"),
	}
	confirmation := c.PostForm("password2")
	user.Prepare()

	page := gin.H{
		"Title":    "Inscription",
		"Username": user.Username,
	}

	errorMessages := signupErrors(&user, confirmation)
	if len(errorMessages) > 0 {
		page["Errors"] = errorMessages
		server.render(c, http.StatusUnprocessableEntity, "signup", page)
		return
	}

	created, err := user.SaveUser(server.DB.WithContext(c.Request.Context()))
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			page["Errors"] = formaterror.FormatError(err)
			server.render(c, http.StatusUnprocessableEntity, "signup", page)
			return
		}
		server.internalError(c, err)
		return
	}
	metrics.RecordSignup()

	if err := server.startSession(c, created); err != nil {
		server.internalError(c, err)
		return
	}
	flash.Add(c, flash.Success, "Compte créé avec succès !")
	redirect(c, defaultRedirect)
}

// signupErrors validates the new account and maps password problems onto
// the two password fields of the form.
func signupErrors(user *models.User, confirmation string) map[string]string {
	errorMessages := user.Validate("")
	if msg, ok := errorMessages["password"]; ok {
		delete(errorMessages, "password")
		errorMessages["password1"] = msg
	}
	if confirmation == "" {
		errorMessages["password2"] = "Ce champ est obligatoire."
	} else if confirmation != user.Password {
		errorMessages["password2"] = "Les deux mots de passe ne correspondent pas."
	}
	return errorMessages
}
