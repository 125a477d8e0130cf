package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the auth token attached to outbound requests.
// Implemented by *session.Store.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the uniform HTTP client for the remote Neighborhood Watch
// backend. All endpoints go through do(), which attaches the auth header,
// serializes the body and converts failures into the BackendError /
// NetworkError taxonomy. It does not retry.
type Client struct {
	baseURL    string
	authScheme string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger
}

// NewClient creates a gateway client. baseURL must not end with a slash;
// authScheme is the Authorization header prefix ("Token" or "Bearer").
func NewClient(baseURL, authScheme string, timeout time.Duration, tokens TokenSource, logger *log.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authScheme: authScheme,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// errorBody is the error shape backends return alongside non-2xx statuses.
// Different drafts of the backend use different field names, so all three
// are tried in order.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Detail
}

// do performs one request against the backend. body is JSON-serialized when
// non-nil; the response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %v", endpoint, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %v", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", c.authScheme+" "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("Request to %s failed: %v", endpoint, err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// A non-JSON error body falls through to the generic message.
		_ = json.Unmarshal(data, &eb)
		message := eb.text()
		if message == "" {
			message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return &BackendError{Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response from %s: %v", endpoint, err)
		}
	}

	return nil
}
