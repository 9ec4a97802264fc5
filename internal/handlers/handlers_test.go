package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camp-signup-api/internal/database"
	"camp-signup-api/internal/middleware"
	"camp-signup-api/internal/repositories/sqlite"
	"camp-signup-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	services *services.ServiceContainer
}

func setupServer(t *testing.T, auth *middleware.AuthService) *testServer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "handlers_test_*")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cm, err := database.InitializeDatabase(context.Background(), filepath.Join(tempDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		cm.Close()
		os.RemoveAll(tempDir)
	})

	repos := sqlite.NewSQLiteRepositoryManager(cm.GetDB(), logger)
	container, err := services.NewServiceContainer(repos, logger)
	require.NoError(t, err)

	router := gin.New()
	SetupMiddleware(router, &MiddlewareConfig{
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   1 << 20,
		Logger:         logger,
	})
	routerConfig := &RouterConfig{
		CamperService:   container.CamperService,
		ActivityService: container.ActivityService,
		SignupService:   container.SignupService,
		Health:          repos,
		AuthService:     auth,
		Logger:          logger,
	}
	SetupRoutes(router, routerConfig)
	SetupDevelopmentRoutes(router, routerConfig)

	return &testServer{router: router, services: container}
}

func (s *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedActivity(t *testing.T, name string, difficulty int) int64 {
	t.Helper()
	activity, err := s.services.ActivityService.CreateActivity(context.Background(), &services.CreateActivityRequest{
		Name:       name,
		Difficulty: difficulty,
	})
	require.NoError(t, err)
	return activity.ID
}

func (s *testServer) seedCamper(t *testing.T, name string, age int) int64 {
	t.Helper()
	camper, err := s.services.CamperService.CreateCamper(context.Background(), &services.CreateCamperRequest{
		Name: &name,
		Age:  &age,
	})
	require.NoError(t, err)
	return camper.ID
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func assertValidationBody(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["validation errors"]}`, w.Body.String())
}

func TestRootAndHealth(t *testing.T) {
	srv := setupServer(t, nil)

	w := srv.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = srv.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeObject(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, serviceName, body["service"])
}

type failingChecker struct{}

func (failingChecker) Health(context.Context) error { return errors.New("database is closed") }

func TestHealthUnavailable(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	router.GET("/health", NewHealthHandler(failingChecker{}, serviceName, serviceVersion, logger).Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
}

func TestCampers_CreateAndList(t *testing.T) {
	srv := setupServer(t, nil)

	w := srv.do(http.MethodGet, "/campers", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = srv.do(http.MethodPost, "/campers", `{"name":"Caitlin","age":8}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeObject(t, w)
	assert.Equal(t, "Caitlin", created["name"])
	assert.Equal(t, float64(8), created["age"])
	assert.Equal(t, []interface{}{}, created["signups"])
	assert.Positive(t, created["id"])

	srv.do(http.MethodPost, "/campers", `{"name":"Lizzie","age":18}`)

	w = srv.do(http.MethodGet, "/campers", "")
	require.Equal(t, http.StatusOK, w.Code)
	campers := decodeList(t, w)
	require.Len(t, campers, 2)
	for _, camper := range campers {
		assert.Len(t, camper, 3)
		assert.Contains(t, camper, "id")
		assert.Contains(t, camper, "name")
		assert.Contains(t, camper, "age")
		assert.NotContains(t, camper, "signups")
	}
	assert.Equal(t, "Caitlin", campers[0]["name"])
	assert.Equal(t, "Lizzie", campers[1]["name"])
}

func TestCampers_CreateInvalid(t *testing.T) {
	srv := setupServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "missing name", body: `{"age":10}`},
		{name: "missing age", body: `{"name":"Nick"}`},
		{name: "too young", body: `{"name":"Tot","age":7}`},
		{name: "too old", body: `{"name":"Grown","age":19}`},
		{name: "wrong type", body: `{"name":"Nick","age":"twelve"}`},
		{name: "empty name", body: `{"name":"","age":12}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(http.MethodPost, "/campers", tt.body)
			assertValidationBody(t, w)
		})
	}

	w := srv.do(http.MethodGet, "/campers", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCampers_Get(t *testing.T) {
	srv := setupServer(t, nil)
	camperID := srv.seedCamper(t, "Ashley", 11)
	activityID := srv.seedActivity(t, "Archery", 2)

	_, err := srv.services.SignupService.CreateSignup(context.Background(), &services.CreateSignupRequest{
		CamperID:   &camperID,
		ActivityID: &activityID,
		Time:       func() *int { h := 9; return &h }(),
	})
	require.NoError(t, err)

	w := srv.do(http.MethodGet, "/campers/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	camper := decodeObject(t, w)
	assert.Equal(t, "Ashley", camper["name"])

	signups, ok := camper["signups"].([]interface{})
	require.True(t, ok)
	require.Len(t, signups, 1)

	signup := signups[0].(map[string]interface{})
	assert.Equal(t, float64(9), signup["time"])
	assert.Equal(t, float64(camperID), signup["camper_id"])
	assert.NotContains(t, signup, "camper")

	activity, ok := signup["activity"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Archery", activity["name"])
	assert.Equal(t, float64(2), activity["difficulty"])
	assert.NotContains(t, activity, "signups")
}

func TestCampers_GetNotFound(t *testing.T) {
	srv := setupServer(t, nil)

	for _, path := range []string{"/campers/42", "/campers/0", "/campers/abc", "/campers/-3"} {
		t.Run(path, func(t *testing.T) {
			w := srv.do(http.MethodGet, path, "")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"Camper not found"}`, w.Body.String())
		})
	}
}

func TestCampers_Update(t *testing.T) {
	srv := setupServer(t, nil)
	id := srv.seedCamper(t, "Nick", 12)

	w := srv.do(http.MethodPatch, "/campers/1", `{"age":13}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	updated := decodeObject(t, w)
	assert.Equal(t, float64(id), updated["id"])
	assert.Equal(t, "Nick", updated["name"])
	assert.Equal(t, float64(13), updated["age"])

	w = srv.do(http.MethodPatch, "/campers/1", `{"name":"Nicholas"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = srv.do(http.MethodGet, "/campers/1", "")
	camper := decodeObject(t, w)
	assert.Equal(t, "Nicholas", camper["name"])
	assert.Equal(t, float64(13), camper["age"])

	// An empty body changes nothing
	w = srv.do(http.MethodPatch, "/campers/1", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "Nicholas", decodeObject(t, w)["name"])
}

func TestCampers_UpdateNotFoundBeforeBody(t *testing.T) {
	srv := setupServer(t, nil)

	w := srv.do(http.MethodPatch, "/campers/99", `{"age":`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Camper not found"}`, w.Body.String())

	w = srv.do(http.MethodPatch, "/campers/nope", `{"age":10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCampers_UpdateInvalidLeavesRowUnchanged(t *testing.T) {
	srv := setupServer(t, nil)
	srv.seedCamper(t, "Nick", 12)

	for _, body := range []string{`{"age":30}`, `{"age":"old"}`, `{"name":""}`, `{"name":`} {
		w := srv.do(http.MethodPatch, "/campers/1", body)
		assertValidationBody(t, w)
	}

	w := srv.do(http.MethodGet, "/campers/1", "")
	camper := decodeObject(t, w)
	assert.Equal(t, "Nick", camper["name"])
	assert.Equal(t, float64(12), camper["age"])
}

func TestActivities_List(t *testing.T) {
	srv := setupServer(t, nil)
	srv.seedActivity(t, "Archery", 2)
	srv.seedActivity(t, "Hiking", 3)

	w := srv.do(http.MethodGet, "/activities", "")
	require.Equal(t, http.StatusOK, w.Code)
	activities := decodeList(t, w)
	require.Len(t, activities, 2)
	assert.Equal(t, map[string]interface{}{"id": float64(1), "name": "Archery", "difficulty": float64(2)}, activities[0])
	assert.Equal(t, "Hiking", activities[1]["name"])
}

func TestActivities_DeleteCascades(t *testing.T) {
	srv := setupServer(t, nil)
	camperID := srv.seedCamper(t, "Lizzie", 15)
	srv.seedActivity(t, "Swimming", 1)

	w := srv.do(http.MethodPost, "/signups", `{"camper_id":1,"activity_id":1,"time":14}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = srv.do(http.MethodDelete, "/activities/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = srv.do(http.MethodGet, "/activities", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	camper, err := srv.services.CamperService.GetCamper(context.Background(), camperID)
	require.NoError(t, err)
	assert.Empty(t, camper.Signups)

	w = srv.do(http.MethodDelete, "/activities/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Activity not found"}`, w.Body.String())

	w = srv.do(http.MethodDelete, "/activities/zero", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Activity not found"}`, w.Body.String())
}

func TestSignups_Create(t *testing.T) {
	srv := setupServer(t, nil)
	srv.seedCamper(t, "Tom", 14)
	srv.seedActivity(t, "Canoeing", 4)

	w := srv.do(http.MethodPost, "/signups", `{"camper_id":1,"activity_id":1,"time":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	signup := decodeObject(t, w)
	assert.Equal(t, float64(0), signup["time"])
	assert.Equal(t, float64(1), signup["camper_id"])
	assert.Equal(t, float64(1), signup["activity_id"])

	camper, ok := signup["camper"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Tom", camper["name"])
	assert.NotContains(t, camper, "signups")

	activity, ok := signup["activity"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Canoeing", activity["name"])
	assert.NotContains(t, activity, "signups")
}

func TestSignups_CreateInvalid(t *testing.T) {
	srv := setupServer(t, nil)
	srv.seedCamper(t, "Tom", 14)
	srv.seedActivity(t, "Canoeing", 4)

	tests := []struct {
		name string
		body string
	}{
		{name: "hour too late", body: `{"camper_id":1,"activity_id":1,"time":24}`},
		{name: "negative hour", body: `{"camper_id":1,"activity_id":1,"time":-1}`},
		{name: "missing time", body: `{"camper_id":1,"activity_id":1}`},
		{name: "missing camper id", body: `{"activity_id":1,"time":8}`},
		{name: "unknown camper", body: `{"camper_id":7,"activity_id":1,"time":8}`},
		{name: "unknown activity", body: `{"camper_id":1,"activity_id":7,"time":8}`},
		{name: "malformed json", body: `{"camper_id":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationBody(t, srv.do(http.MethodPost, "/signups", tt.body))
		})
	}

	w := srv.do(http.MethodGet, "/campers/1", "")
	assert.Empty(t, decodeObject(t, w)["signups"])
}

func TestWriteRoutesRequireTokenWhenAuthEnabled(t *testing.T) {
	auth := middleware.NewAuthService(&middleware.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
	}, nil)
	srv := setupServer(t, auth)

	w := srv.do(http.MethodPost, "/campers", `{"name":"Caitlin","age":9}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reads stay open
	w = srv.do(http.MethodGet, "/campers", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(http.MethodPost, "/dev/token", `{"username":"ranger"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var token TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.Equal(t, []string{"counselor"}, token.Roles)

	w = srv.do(http.MethodPost, "/campers", `{"name":"Caitlin","age":9}`, "Authorization", "Bearer "+token.Token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(http.MethodPost, "/dev/token", `{"role":"viewer"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	w = srv.do(http.MethodPost, "/campers", `{"name":"Lizzie","age":10}`, "Authorization", "Bearer "+token.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDevelopmentRoutesNeedAuthService(t *testing.T) {
	srv := setupServer(t, nil)

	w := srv.do(http.MethodPost, "/dev/token", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
