package controllers

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"time"

	"Litreview/api/auth"
	"Litreview/api/config"
	"Litreview/api/feed"
	"Litreview/api/logger"
	"Litreview/api/media"
	"Litreview/api/middlewares"
	"Litreview/api/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Config   *config.Config
	Feed     *feed.Aggregator
	Media    media.Store
	Sessions *auth.Manager
	Logger   *slog.Logger
	Limiter  *middlewares.IPRateLimiter
}

// NewServer wires the stores into a ready to serve router. revoker may be
// nil when no Redis is configured.
func NewServer(cfg *config.Config, db *gorm.DB, store media.Store, revoker auth.Revoker) (*Server, error) {
	server := &Server{
		DB:       db,
		Config:   cfg,
		Feed:     feed.NewAggregator(feed.NewGormSource(db), cfg.Feed.PageSize),
		Media:    store,
		Sessions: auth.NewManager(cfg.Auth.SessionSecret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour, revoker),
		Logger:   logger.WithComponent("http"),
		Limiter:  middlewares.NewIPRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
	}
	if err := server.Initialize(); err != nil {
		return nil, err
	}
	return server, nil
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize() error {
	if server.Config.Server.Mode != "" {
		gin.SetMode(server.Config.Server.Mode)
	}
	gin.DefaultWriter = io.Discard

	renderer, err := views.New(template.FuncMap{"mediaURL": server.Media.URL})
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	secure := server.Config.Auth.CookieSecure
	server.Router = gin.New()
	if err := server.Router.SetTrustedProxies(server.Config.Server.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	server.Router.HTMLRender = renderer
	server.Router.Use(gin.Recovery())
	server.Router.Use(middlewares.RequestLogger(server.Logger))
	server.Router.Use(middlewares.MetricsMiddleware())
	server.Router.Use(middlewares.CSRFMiddleware(server.Config.Auth.CSRF, secure))
	server.Router.Use(middlewares.SessionMiddleware(server.DB, server.Sessions, secure))
	server.Router.NoRoute(server.NotFound)

	server.initializeRoutes()
	return nil
}
