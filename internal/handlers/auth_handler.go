package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *middleware.AuthService
	logger      *logrus.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *middleware.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// DevTokenRequest optionally names the user a development token is issued for
type DevTokenRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenResponse represents an issued token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Roles     []string  `json:"roles"`
}

// @Summary Issue a development token
// @Description Issue a signed bearer token for local testing. Not available in production.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body DevTokenRequest false "Token subject"
// @Success 200 {object} TokenResponse
// @Failure 500 {object} ErrorResponse
// @Router /dev/token [post]
func (h *AuthHandler) IssueDevToken(c *gin.Context) {
	var req DevTokenRequest
	// The body is optional
	_ = c.ShouldBindJSON(&req)

	if req.Username == "" {
		req.Username = "counselor"
	}

	role := middleware.RoleCounselor
	switch middleware.UserRole(req.Role) {
	case middleware.RoleAdmin, middleware.RoleViewer:
		role = middleware.UserRole(req.Role)
	}
	roles := []string{string(role)}

	token, err := h.authService.GenerateToken(uuid.New().String(), req.Username, roles)
	if err != nil {
		respondError(c, h.logger, "Token", err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.authService.TokenDuration()).UTC(),
		Roles:     roles,
	})
}
