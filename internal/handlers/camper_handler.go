package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/services"
)

// CamperHandler handles camper-related HTTP requests
type CamperHandler struct {
	camperService services.CamperService
	logger        *logrus.Logger
}

// NewCamperHandler creates a new camper handler
func NewCamperHandler(camperService services.CamperService, logger *logrus.Logger) *CamperHandler {
	return &CamperHandler{
		camperService: camperService,
		logger:        logger,
	}
}

// @Summary List campers
// @Description Get every camper without their signups
// @Tags campers
// @Produce json
// @Success 200 {array} CamperSummary
// @Failure 500 {object} ErrorResponse
// @Router /campers [get]
func (h *CamperHandler) ListCampers(c *gin.Context) {
	campers, err := h.camperService.ListCampers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Camper", err)
		return
	}

	out := make([]map[string]interface{}, 0, len(campers))
	for _, camper := range campers {
		out = append(out, camper.ToMap("-signups"))
	}

	c.JSON(http.StatusOK, out)
}

// @Summary Create a camper
// @Description Register a new camper aged 8 to 18
// @Tags campers
// @Accept json
// @Produce json
// @Param camper body services.CreateCamperRequest true "Camper data"
// @Success 201 {object} CamperDetail
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /campers [post]
func (h *CamperHandler) CreateCamper(c *gin.Context) {
	var req services.CreateCamperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	camper, err := h.camperService.CreateCamper(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "Camper", err)
		return
	}

	c.JSON(http.StatusCreated, camper.ToMap())
}

// @Summary Get a camper
// @Description Get a camper by ID with signups and their activities
// @Tags campers
// @Produce json
// @Param id path int true "Camper ID"
// @Success 200 {object} CamperDetail
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /campers/{id} [get]
func (h *CamperHandler) GetCamper(c *gin.Context) {
	id, ok := parseID(c, "Camper")
	if !ok {
		return
	}

	camper, err := h.camperService.GetCamper(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Camper", err)
		return
	}

	c.JSON(http.StatusOK, camper.ToMap())
}

// @Summary Update a camper
// @Description Change a camper's name and/or age. Fields left out keep their value.
// @Tags campers
// @Accept json
// @Produce json
// @Param id path int true "Camper ID"
// @Param camper body services.UpdateCamperRequest true "Fields to change"
// @Success 202 {object} CamperDetail
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /campers/{id} [patch]
func (h *CamperHandler) UpdateCamper(c *gin.Context) {
	id, ok := parseID(c, "Camper")
	if !ok {
		return
	}

	// An unknown camper is reported before the body is looked at
	if _, err := h.camperService.GetCamper(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "Camper", err)
		return
	}

	var req services.UpdateCamperRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondValidation(c, h.logger, err)
		return
	}

	camper, err := h.camperService.UpdateCamper(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, "Camper", err)
		return
	}

	c.JSON(http.StatusAccepted, camper.ToMap())
}

// CamperSummary documents a camper in list responses
type CamperSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// CamperDetail documents a camper with its signups
type CamperDetail struct {
	CamperSummary
	Signups []CamperSignup `json:"signups"`
}

// CamperSignup documents a signup nested under its camper
type CamperSignup struct {
	ID         int64           `json:"id"`
	CamperID   int64           `json:"camper_id"`
	ActivityID int64           `json:"activity_id"`
	Time       int             `json:"time"`
	Activity   ActivitySummary `json:"activity"`
}
