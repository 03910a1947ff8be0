package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"Litreview/api/utils/flash"
	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

const defaultRedirect = "/feed/"

// render fills in what every page needs on top of data: the signed-in
// user, pending flash messages and the CSRF token.
func (server *Server) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := httpctx.CurrentUser(c); ok {
		data["User"] = user
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	data["Flashes"] = flash.Pop(c)
	data["CSRFToken"] = httpctx.CSRFToken(c)
	c.HTML(status, page, data)
}

func (server *Server) renderError(c *gin.Context, status int, message string) {
	server.render(c, status, "error", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// NotFound is shared by unknown routes and by records the requester may not
// see, so both look the same from outside.
func (server *Server) NotFound(c *gin.Context) {
	server.renderError(c, http.StatusNotFound, "La page demandée n'existe pas.")
}

func (server *Server) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	server.renderError(c, http.StatusInternalServerError, "Une erreur est survenue, veuillez réessayer.")
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// safeNext only accepts local absolute paths as a post-login target.
// Browsers drop tabs and newlines from URLs, so any whitespace or control
// character is refused before the prefix checks.
func safeNext(next string) string {
	if next == "" || strings.IndexFunc(next, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return defaultRedirect
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultRedirect
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultRedirect
	}
	return next
}
