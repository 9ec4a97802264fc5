package lambda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/config"
	"camp-signup-api/pkg/server"
)

// ConnectionManager keeps one server container per warm Lambda instance so
// the database connection outlives a single invocation
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	lastUsed  time.Time
	load      func() (*config.Config, error)
}

// NewConnectionManager creates a manager that builds its container from load
// on first use. A nil load reads the serverless-adapted configuration.
func NewConnectionManager(load func() (*config.Config, error)) *ConnectionManager {
	if load == nil {
		load = config.GetOptimizedConfig
	}
	return &ConnectionManager{load: load}
}

// GetContainer returns the container, creating it on first use. A failed
// initialisation is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		cfg, err := cm.load()
		if err != nil {
			return nil, err
		}

		container, err := server.NewContainer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		cm.container = container
	}

	cm.lastUsed = time.Now()
	return cm.container, nil
}

// Handle serves one API Gateway proxy event through the container's router
func (cm *ConnectionManager) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := cm.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return errorResponse(http.StatusInternalServerError), nil
	}

	return Serve(ctx, container.Router(), event)
}

// IsHealthy reports whether a container exists and was used in the last five minutes
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.container != nil && time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the container; the next call builds a fresh one
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}

// Serve runs event through handler and returns the recorded response
func Serve(ctx context.Context, handler http.Handler, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := NewHTTPRequest(ctx, event)
	if err != nil {
		return errorResponse(http.StatusBadRequest), nil
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	result := recorder.Result()
	defer result.Body.Close()

	return NewProxyResponse(result.StatusCode, result.Header, recorder.Body.Bytes()), nil
}

func errorResponse(status int) events.APIGatewayProxyResponse {
	body := `{"error":"Internal server error"}`
	if status == http.StatusBadRequest {
		body = `{"errors":["validation errors"]}`
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}
