package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// NewHTTPRequest converts an API Gateway proxy event into an *http.Request
func NewHTTPRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = decoded
	}

	path := event.Path
	if path == "" {
		path = "/"
	}

	target := &url.URL{Path: path, RawQuery: queryString(event).Encode()}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for key, values := range event.MultiValueHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for key, value := range event.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	if event.RequestContext.RequestID != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", event.RequestContext.RequestID)
	}
	if ip := event.RequestContext.Identity.SourceIP; ip != "" {
		req.RemoteAddr = ip + ":0"
		if req.Header.Get("X-Forwarded-For") == "" {
			req.Header.Set("X-Forwarded-For", ip)
		}
	}

	req.ContentLength = int64(len(body))
	return req, nil
}

func queryString(event events.APIGatewayProxyRequest) url.Values {
	values := url.Values{}
	for key, list := range event.MultiValueQueryStringParameters {
		for _, value := range list {
			values.Add(key, value)
		}
	}
	for key, value := range event.QueryStringParameters {
		if _, ok := values[key]; !ok {
			values.Set(key, value)
		}
	}
	return values
}

// NewProxyResponse converts a recorded response into the API Gateway format
func NewProxyResponse(status int, header http.Header, body []byte) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           make(map[string]string, len(header)),
		MultiValueHeaders: make(map[string][]string, len(header)),
	}

	for key, values := range header {
		if len(values) == 0 {
			continue
		}
		resp.Headers[key] = strings.Join(values, ",")
		resp.MultiValueHeaders[key] = values
	}

	if isTextContent(header.Get("Content-Type")) || len(body) == 0 {
		resp.Body = string(body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(body)
		resp.IsBase64Encoded = true
	}

	return resp
}

func isTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "text/") ||
		strings.Contains(contentType, "json") ||
		strings.Contains(contentType, "xml") ||
		strings.Contains(contentType, "javascript")
}
