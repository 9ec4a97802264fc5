package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func perform(router http.Handler, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), CorrelationID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := perform(router, http.MethodGet, "/", nil, nil)
	generated := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())
	assert.Equal(t, generated, w.Header().Get("X-Correlation-ID"))

	w = perform(router, http.MethodGet, "/", nil, map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestStructuredLoggerPreservesBody(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), StructuredLogger(quietLogger()), AuditLogger(quietLogger()))
	router.POST("/campers", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusCreated, string(body))
	})

	w := perform(router, http.MethodPost, "/campers", strings.NewReader(`{"name":"Caitlin"}`), nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, `{"name":"Caitlin"}`, w.Body.String())
}

func TestSplitResource(t *testing.T) {
	tests := []struct {
		path     string
		wantType string
		wantID   string
	}{
		{"/campers/3", "camper", "3"},
		{"/activities/12", "activity", "12"},
		{"/signups", "signup", ""},
		{"/campers/abc", "camper", ""},
		{"/health", "", ""},
		{"/", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			gotType, gotID := splitResource(tt.path)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	router := gin.New()
	router.Use(RateLimiter(1, 1, quietLogger()))
	router.GET("/", okHandler)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/", nil, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(router, http.MethodGet, "/", nil, nil).Code)

	disabled := gin.New()
	disabled.Use(RateLimiter(0, 0, quietLogger()))
	disabled.GET("/", okHandler)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, perform(disabled, http.MethodGet, "/", nil, nil).Code)
	}
}

func TestRequestSizeLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestSizeLimit(8))
	router.POST("/", okHandler)

	w := perform(router, http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32)), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = perform(router, http.MethodPost, "/", strings.NewReader("small"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://camp.example"}))
	router.GET("/campers", okHandler)

	w := perform(router, http.MethodOptions, "/campers", nil, map[string]string{
		"Origin":                        "https://camp.example",
		"Access-Control-Request-Method": "PATCH",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://camp.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(router, http.MethodGet, "/campers", nil, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(quietLogger()))
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := perform(router, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestErrorHandlerFillsMissingResponse(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(quietLogger()))
	router.GET("/", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("store unavailable"))
	})

	w := perform(router, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteAuthentication(t *testing.T) {
	auth := NewAuthService(&AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}, quietLogger())

	router := gin.New()
	router.Use(WriteAuthentication(auth), Authorization(RoleAdmin, RoleCounselor))
	router.GET("/campers", okHandler)
	router.POST("/campers", okHandler)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/campers", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(router, http.MethodPost, "/campers", nil, nil).Code)

	w := perform(router, http.MethodPost, "/campers", nil, map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	counselor, err := auth.GenerateToken("u-1", "sam", []string{string(RoleCounselor)})
	require.NoError(t, err)
	w = perform(router, http.MethodPost, "/campers", nil, map[string]string{"Authorization": "Bearer " + counselor})
	assert.Equal(t, http.StatusOK, w.Code)

	viewer, err := auth.GenerateToken("u-2", "pat", []string{string(RoleViewer)})
	require.NoError(t, err)
	w = perform(router, http.MethodPost, "/campers", nil, map[string]string{"Authorization": "Bearer " + viewer})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestValidateToken(t *testing.T) {
	auth := NewAuthService(&AuthConfig{JWTSecret: "test-secret"}, quietLogger())
	assert.Equal(t, 24*time.Hour, auth.TokenDuration())

	token, err := auth.GenerateToken("u-1", "sam", []string{"admin"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "camp-signup-api", claims.Issuer)

	other := NewAuthService(&AuthConfig{JWTSecret: "other-secret"}, quietLogger())
	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	type request struct {
		Name *string `validate:"required"`
		Age  int     `validate:"min=8"`
	}

	err := validator.New().Struct(&request{Age: 3})
	require.Error(t, err)

	details := FormatValidationErrors(fmt.Errorf("wrapped: %w", err))
	require.Len(t, details, 2)
	assert.Equal(t, "Name is required", details[0].Message)
	assert.Equal(t, "Age must be at least 8", details[1].Message)

	assert.Nil(t, FormatValidationErrors(fmt.Errorf("plain")))
}
