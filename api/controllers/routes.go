package controllers

import (
	"net/http"

	"Litreview/api/database"
	"Litreview/api/media"
	"Litreview/api/metrics"
	"Litreview/api/middlewares"

	"github.com/gin-gonic/gin"
)

func (server *Server) initializeRoutes() {
	s := server.Router

	s.GET("/healthz", server.Health)
	s.GET("/metrics", gin.WrapH(metrics.Handler()))
	if disk, ok := server.Media.(*media.DiskStore); ok {
		s.Static(disk.URLPrefix, disk.Dir)
	}

	guest := s.Group("/", middlewares.RedirectIfAuthenticated(defaultRedirect))
	{
		login := guest.Group("/", middlewares.LoginRateLimitMiddleware(server.Limiter, server.loginThrottled))
		login.GET("/", server.LoginPage)
		login.POST("/", server.Login)

		guest.GET("/signup/", server.SignupPage)
		guest.POST("/signup/", server.Signup)
	}

	app := s.Group("/", middlewares.RequireLogin())
	{
		app.POST("/logout/", server.Logout)

		app.GET("/feed/", server.FeedPage)
		app.GET("/posts/", server.PostsPage)

		// Tickets
		app.GET("/ticket/create/", server.CreateTicketPage)
		app.POST("/ticket/create/", server.CreateTicket)
		app.GET("/ticket/:id/edit/", server.EditTicketPage)
		app.POST("/ticket/:id/edit/", server.UpdateTicket)
		app.GET("/ticket/:id/delete/", server.DeleteTicketPage)
		app.POST("/ticket/:id/delete/", server.DeleteTicket)

		// Reviews
		app.GET("/review/create/", server.CreateStandaloneReviewPage)
		app.POST("/review/create/", server.CreateStandaloneReview)
		app.GET("/review/create/:ticket_id/", server.CreateReviewPage)
		app.POST("/review/create/:ticket_id/", server.CreateReview)
		app.GET("/review/:id/edit/", server.EditReviewPage)
		app.POST("/review/:id/edit/", server.UpdateReview)
		app.GET("/review/:id/delete/", server.DeleteReviewPage)
		app.POST("/review/:id/delete/", server.DeleteReview)

		// Follows
		app.GET("/subscriptions/", server.SubscriptionsPage)
		app.POST("/subscriptions/", server.FollowUser)
		app.GET("/unfollow/:user_id/", server.UnfollowPage)
		app.POST("/unfollow/:user_id/", server.UnfollowUser)
	}
}

func (server *Server) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), server.DB); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
