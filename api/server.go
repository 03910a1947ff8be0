// Package api boots the LITReview web application: configuration, logging,
// the database, session revocation, media storage and the HTTP server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Litreview/api/cache"
	"Litreview/api/config"
	"Litreview/api/controllers"
	"Litreview/api/database"
	"Litreview/api/logger"
	"Litreview/api/media"
	"Litreview/api/models"
	"Litreview/api/security"
	"Litreview/api/seed"

	"gorm.io/gorm"
)

// Setup loads the configuration and installs the logger. Every command
// starts here.
func Setup(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	security.SetCost(cfg.Auth.BcryptCost)
	return cfg, nil
}

func withDB(cfg *config.Config, fn func(db *gorm.DB) error) error {
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Get().Error("failed to close database", "error", err)
		}
	}()
	return fn(db)
}

// Migrate creates or updates the schema.
func Migrate(cfg *config.Config) error {
	return withDB(cfg, func(db *gorm.DB) error {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Get().Info("database schema up to date", "driver", cfg.Database.Driver)
		return nil
	})
}

// Seed migrates the schema and loads the demo data set.
func Seed(cfg *config.Config) error {
	return withDB(cfg, func(db *gorm.DB) error {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		if err := seed.Load(db); err != nil {
			return err
		}
		logger.Get().Info("demo data loaded")
		return nil
	})
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for at most the configured shutdown timeout.
func Serve(cfg *config.Config, autoMigrate bool) error {
	log := logger.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return withDB(cfg, func(db *gorm.DB) error {
		if autoMigrate {
			log.Info("running auto-migration")
			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("auto-migration failed: %w", err)
			}
		}

		// Redis init (safe failure)
		if err := cache.Init(&cfg.Redis); err != nil {
			log.Warn("could not connect to redis, logout revocation disabled", "error", err)
		}
		defer func() {
			if err := cache.Close(); err != nil {
				log.Error("failed to close redis", "error", err)
			}
		}()

		store, err := media.New(context.Background(), &cfg.Media)
		if err != nil {
			return fmt.Errorf("failed to initialize media store: %w", err)
		}

		server, err := controllers.NewServer(cfg, db, store, cache.Revocations{})
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Server.GetAddr(),
			Handler:           server.Router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server starting", "address", srv.Addr, "mode", cfg.Server.Mode)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-quit:
		}

		log.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server forced to shutdown", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	})
}
