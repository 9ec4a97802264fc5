package middleware

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// CorrelationIDKey is the key used to store correlation ID in context
const CorrelationIDKey = "correlation_id"

// responseWriter wraps gin.ResponseWriter to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CorrelationID middleware adds correlation ID for distributed tracing
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = c.GetString(RequestIDKey)
		}
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(CorrelationIDKey, correlationID)
		c.Header("X-Correlation-ID", correlationID)
		c.Next()
	}
}

// StructuredLogger provides structured logging with request context
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Only bodies under 10KB are captured
		var requestBody []byte
		if c.Request.Body != nil && c.Request.ContentLength > 0 && c.Request.ContentLength < 1024*10 {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = responseBodyWriter

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logrus.Fields{
			"request_id":     c.GetString(RequestIDKey),
			"correlation_id": c.GetString(CorrelationIDKey),
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    status,
			"latency_ms":     float64(latency.Nanoseconds()) / 1000000,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
			"response_size":  c.Writer.Size(),
		}

		if raw != "" {
			fields["query"] = raw
		}

		if userID := c.GetString("user_id"); userID != "" {
			fields["user_id"] = userID
		}

		if gin.Mode() == gin.DebugMode && len(requestBody) > 0 {
			fields["request_body"] = string(requestBody)
		}

		if gin.Mode() == gin.DebugMode && status >= 400 && responseBodyWriter.body.Len() < 1024 {
			fields["response_body"] = responseBodyWriter.body.String()
		}

		switch {
		case status >= 500:
			logger.WithFields(fields).Error("Server error")
		case status >= 400:
			logger.WithFields(fields).Warn("Client error")
		case status >= 300:
			logger.WithFields(fields).Info("Redirect")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}

// AuditLogger logs every write operation with the resource it touched
func AuditLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		fields := logrus.Fields{
			"audit":          true,
			"request_id":     c.GetString(RequestIDKey),
			"user_id":        c.GetString("user_id"),
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    c.Writer.Status(),
			"client_ip":      c.ClientIP(),
			"operation_time": time.Since(start).Milliseconds(),
		}

		switch c.Request.Method {
		case "POST":
			fields["operation"] = "CREATE"
		case "PUT", "PATCH":
			fields["operation"] = "UPDATE"
		case "DELETE":
			fields["operation"] = "DELETE"
		}

		resourceType, resourceID := splitResource(path)
		if resourceType != "" {
			fields["resource_type"] = resourceType
		}
		if resourceID != "" {
			fields["resource_id"] = resourceID
		}

		logger.WithFields(fields).Info("Audit log")
	}
}

// resourceTypes maps collection path segments to the resource they hold
var resourceTypes = map[string]string{
	"campers":    "camper",
	"activities": "activity",
	"signups":    "signup",
}

// splitResource extracts the resource type and numeric id from a path such
// as /campers/3
func splitResource(path string) (string, string) {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return "", ""
	}

	resourceType := resourceTypes[parts[0]]
	if resourceType == "" || len(parts) < 2 {
		return resourceType, ""
	}

	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		return resourceType, ""
	}
	return resourceType, parts[1]
}
