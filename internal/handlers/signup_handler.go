package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/services"
)

// SignupHandler handles signup-related HTTP requests
type SignupHandler struct {
	signupService services.SignupService
	logger        *logrus.Logger
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(signupService services.SignupService, logger *logrus.Logger) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
		logger:        logger,
	}
}

// @Summary Create a signup
// @Description Book a camper into an activity at an hour of the day (0-23)
// @Tags signups
// @Accept json
// @Produce json
// @Param signup body services.CreateSignupRequest true "Signup data"
// @Success 201 {object} SignupDetail
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /signups [post]
func (h *SignupHandler) CreateSignup(c *gin.Context) {
	var req services.CreateSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	signup, err := h.signupService.CreateSignup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "Signup", err)
		return
	}

	c.JSON(http.StatusCreated, signup.ToMap())
}

// SignupDetail documents a signup with its camper and activity
type SignupDetail struct {
	ID         int64           `json:"id"`
	CamperID   int64           `json:"camper_id"`
	ActivityID int64           `json:"activity_id"`
	Time       int             `json:"time"`
	Camper     CamperSummary   `json:"camper"`
	Activity   ActivitySummary `json:"activity"`
}
