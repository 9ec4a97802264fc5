package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler serves the liveness endpoints
type HealthHandler struct {
	checker HealthChecker
	service string
	version string
	logger  *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker HealthChecker, service, version string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		service: service,
		version: version,
		logger:  logger,
	}
}

// HealthResponse represents the health check body
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// @Summary Root probe
// @Description Always answers 200 with an empty body
// @Tags health
// @Success 200
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.Status(http.StatusOK)
}

// @Summary Health check
// @Description Report service health including the database connection
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Service:   h.service,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	}

	if err := h.checker.Health(ctx); err != nil {
		h.logger.WithError(err).Error("Health check failed")
		response.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
