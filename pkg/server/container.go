package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/config"
	"camp-signup-api/internal/database"
	"camp-signup-api/internal/handlers"
	"camp-signup-api/internal/middleware"
	"camp-signup-api/internal/repositories"
	"camp-signup-api/internal/repositories/sqlite"
	"camp-signup-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *logrus.Logger
	CamperService   services.CamperService
	ActivityService services.ActivityService
	SignupService   services.SignupService

	// AuthService is nil unless AUTH_ENABLED is set
	AuthService *middleware.AuthService

	// Internal dependencies
	db       *database.ConnectionManager
	repos    repositories.RepositoryManager
	services *services.ServiceContainer
	router   *gin.Engine
}

// NewContainer connects to the database, migrating it when configured, and
// wires repositories, services and the HTTP router
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Log)

	db := database.NewConnectionManager(cfg.Database.ToConnectionConfig(logger))
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := sqlite.NewSQLiteRepositoryManager(db.GetDB(), logger)

	serviceContainer, err := services.NewServiceContainer(repos, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}
	if err := serviceContainer.Validate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid service container: %w", err)
	}

	container := &Container{
		Config:          cfg,
		Logger:          logger,
		CamperService:   serviceContainer.CamperService,
		ActivityService: serviceContainer.ActivityService,
		SignupService:   serviceContainer.SignupService,
		db:              db,
		repos:           repos,
		services:        serviceContainer,
	}

	if cfg.JWT.Enabled {
		container.AuthService = middleware.NewAuthService(&middleware.AuthConfig{
			JWTSecret:     cfg.JWT.Secret,
			TokenDuration: cfg.JWT.TokenDuration(),
		}, logger)
	}

	container.router = container.buildRouter()

	logger.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"database":     cfg.Database.Path,
		"auth_enabled": cfg.JWT.Enabled,
		"deployment":   config.GetDeploymentMode(),
	}).Info("Container initialized")

	return container, nil
}

func (c *Container) buildRouter() *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	handlers.SetupMiddleware(router, &handlers.MiddlewareConfig{
		AllowedOrigins: c.Config.Server.CORSAllowedOrigins,
		MaxBodyBytes:   c.Config.Server.MaxBodyBytes,
		RateLimitRPS:   c.Config.Server.RateLimitRPS,
		RateLimitBurst: c.Config.Server.RateLimitBurst,
		Logger:         c.Logger,
	})

	routerConfig := &handlers.RouterConfig{
		CamperService:   c.CamperService,
		ActivityService: c.ActivityService,
		SignupService:   c.SignupService,
		Health:          c.repos,
		AuthService:     c.AuthService,
		Logger:          c.Logger,
	}
	handlers.SetupRoutes(router, routerConfig)

	if !c.Config.IsProduction() {
		handlers.SetupDevelopmentRoutes(router, routerConfig)
	}

	return router
}

// Router returns the configured HTTP handler
func (c *Container) Router() *gin.Engine {
	return c.router
}

// Repositories exposes the repository manager for tooling such as snapshots
func (c *Container) Repositories() repositories.RepositoryManager {
	return c.repos
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
