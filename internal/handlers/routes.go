package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "camp-signup-api/docs"
	"camp-signup-api/internal/middleware"
	"camp-signup-api/internal/services"
)

const (
	serviceName    = "camp-signup-api"
	serviceVersion = "1.0.0"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	CamperService   services.CamperService
	ActivityService services.ActivityService
	SignupService   services.SignupService
	Health          HealthChecker

	// AuthService guards write routes when set
	AuthService *middleware.AuthService
	Logger      *logrus.Logger
}

// MiddlewareConfig holds the settings for the global middleware chain
type MiddlewareConfig struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *logrus.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.New()
	}

	camperHandler := NewCamperHandler(config.CamperService, logger)
	activityHandler := NewActivityHandler(config.ActivityService, logger)
	signupHandler := NewSignupHandler(config.SignupService, logger)
	healthHandler := NewHealthHandler(config.Health, serviceName, serviceVersion, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	api := router.Group("")
	if config.AuthService != nil {
		api.Use(middleware.WriteAuthentication(config.AuthService))
		api.Use(middleware.Authorization(middleware.RoleAdmin, middleware.RoleCounselor))
	}
	{
		campers := api.Group("/campers")
		{
			campers.GET("", camperHandler.ListCampers)
			campers.POST("", camperHandler.CreateCamper)
			campers.GET("/:id", camperHandler.GetCamper)
			campers.PATCH("/:id", camperHandler.UpdateCamper)
		}

		activities := api.Group("/activities")
		{
			activities.GET("", activityHandler.ListActivities)
			activities.DELETE("/:id", activityHandler.DeleteActivity)
		}

		signups := api.Group("/signups")
		{
			signups.POST("", signupHandler.CreateSignup)
		}
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *MiddlewareConfig) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.New()
	}

	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(config.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	if config.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	}

	router.Use(middleware.RateLimiter(config.RateLimitRPS, config.RateLimitBurst, logger))
	router.Use(middleware.AuditLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	if config.AuthService == nil {
		return
	}

	authHandler := NewAuthHandler(config.AuthService, config.Logger)

	dev := router.Group("/dev")
	{
		dev.POST("/token", authHandler.IssueDevToken)
	}
}
