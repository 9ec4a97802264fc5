package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/middleware"
	"camp-signup-api/internal/repositories"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is returned for any rejected request body
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

const validationErrorsMessage = "validation errors"

// notFoundMessage returns the public not-found text for an entity, e.g. "Camper not found"
func notFoundMessage(entity string) string {
	return entity + " not found"
}

// parseID reads the :id path parameter. Anything but a positive integer is
// answered with the entity's not-found response.
func parseID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMessage(entity)})
		return 0, false
	}
	return id, true
}

// respondValidation writes the coarse validation body and logs the details
func respondValidation(c *gin.Context, logger *logrus.Logger, err error) {
	fields := logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"path":       c.Request.URL.Path,
		"error":      err.Error(),
	}
	if details := middleware.FormatValidationErrors(err); details != nil {
		fields["fields"] = details
	}
	logger.WithFields(fields).Info("Request failed validation")

	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: []string{validationErrorsMessage}})
}

// respondError maps a service error onto the public error taxonomy
func respondError(c *gin.Context, logger *logrus.Logger, entity string, err error) {
	switch {
	case repositories.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMessage(entity)})
	case repositories.IsValidation(err), repositories.IsConstraint(err):
		respondValidation(c, logger, err)
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
