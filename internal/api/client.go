package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/credstore"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/log"
)

// DefaultTimeout is the fixed per-request timeout
const DefaultTimeout = 10 * time.Second

// Client is the Naxum API client.
//
// Every request carries the bearer token from the credential store when one
// is present. A 401 response clears the store as a side effect before the
// error is returned; the session layer learns of it through the store's
// clear notification.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	creds  *credstore.Store
	logger *log.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, creds *credstore.Store, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		creds:  creds,
		logger: logger,
	}
}

// APIError represents an error response from the API
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("API error %d: %s (request: %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether a failed call may be retried.
//
// Client errors (4xx) are deterministic and never retried; transport
// failures and 5xx responses get the single retry owned by the cache layer.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}

	return true
}

// envelope is the fixed `{ "data": ... }` wrapper used by all API responses
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody covers both error shapes the API produces:
// a top-level message or one nested under an error field.
type errorBody struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// do performs an HTTP request and decodes the enveloped payload into target.
// A nil target discards the payload.
func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	requestID := uuid.NewString()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAPIRequest, "failed to encode request body", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method, "path", path,
			"duration", time.Since(start), "request_id", requestID,
			"error", err.Error())

		if isTimeout(err) {
			return errors.Wrap(errors.ErrCodeTimeout, "request timed out", err)
		}
		return errors.Wrap(errors.ErrCodeNetwork, "network request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method, "path", path, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		// The stored pair is wiped unconditionally; the session machine is
		// told through the store's clear notification, not by this layer.
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.WithError(clearErr).Warn("failed to clear credentials after 401")
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp, "session expired"),
			RequestID:  requestID,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp, "operation failed"),
			RequestID:  requestID,
		}
	}

	if target == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "failed to decode response", err)
	}

	if err := json.Unmarshal(env.Data, target); err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "failed to decode response payload", err)
	}

	return nil
}

// extractMessage pulls the server's error message from the body,
// falling back to the given default.
func extractMessage(resp *http.Response, fallback string) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fallback
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}

	return fallback
}

// isTimeout reports whether a transport error was a timeout
func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
