package controllers

import (
	"net/http"

	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// FeedPage shows the viewer's own posts, posts from followed accounts and
// reviews answering the viewer's tickets, newest first.
func (server *Server) FeedPage(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)

	page, err := server.Feed.Feed(c.Request.Context(), uid, c.Query("page"))
	if err != nil {
		server.internalError(c, err)
		return
	}
	server.render(c, http.StatusOK, "feed", gin.H{
		"Title": "Flux",
		"Page":  page,
	})
}

func (server *Server) PostsPage(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)

	page, err := server.Feed.Posts(c.Request.Context(), uid, c.Query("page"))
	if err != nil {
		server.internalError(c, err)
		return
	}
	server.render(c, http.StatusOK, "posts", gin.H{
		"Title": "Vos posts",
		"Page":  page,
	})
}
