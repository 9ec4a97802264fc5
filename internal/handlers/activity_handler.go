package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/services"
)

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activityService services.ActivityService
	logger          *logrus.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService services.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// @Summary List activities
// @Tags activities
// @Produce json
// @Success 200 {array} ActivitySummary
// @Failure 500 {object} ErrorResponse
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.activityService.ListActivities(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Activity", err)
		return
	}

	out := make([]map[string]interface{}, 0, len(activities))
	for _, activity := range activities {
		out = append(out, activity.ToMap())
	}

	c.JSON(http.StatusOK, out)
}

// @Summary Delete an activity
// @Description Delete an activity together with every signup for it
// @Tags activities
// @Param id path int true "Activity ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, ok := parseID(c, "Activity")
	if !ok {
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "Activity", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ActivitySummary documents an activity in responses
type ActivitySummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}
