package polygon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxErrorBody bounds how much of a provider error body is kept
const maxErrorBody = 512

// Common provider error types
var (
	ErrProviderUnavailable = errors.New("options provider unavailable")
	ErrInvalidResponse     = errors.New("invalid provider response")
	ErrInvalidRequest      = errors.New("invalid provider request")
)

// APIError represents a non-2xx answer from the provider
type APIError struct {
	Endpoint   string // Endpoint label, e.g. "chain_snapshot"
	StatusCode int    // HTTP status returned by the provider
	Message    string // Provider supplied message, if any
	Body       string // Truncated raw body
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider %s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s request failed with status %d", e.Endpoint, e.StatusCode)
}

// IsNotFound reports whether the provider answered 404
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newAPIError builds an APIError from a provider body, extracting the
// "error" or "message" field when the body is JSON.
func newAPIError(endpoint string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       truncate(strings.TrimSpace(string(body)), maxErrorBody),
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}

// AsAPIError extracts an APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnavailable returns true if the provider could not be reached
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
