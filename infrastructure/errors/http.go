// Package errors turns non-2xx upstream HTTP responses into typed errors.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MinErrorStatusCode is the lowest status treated as an error.
const MinErrorStatusCode = 400

// maxErrorBody caps how much of an error body is read and retained.
const maxErrorBody = 4 << 10

// HTTPError is an upstream error response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
	// Reason is the machine-readable reason when the upstream provides one
	// (Google APIs: "quotaExceeded", "keyInvalid", ...).
	Reason string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%d %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// googleError is the envelope used by Google REST APIs.
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

// flatError covers {"error": "..."} and {"message": "..."} bodies.
type flatError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ParseHTTPError returns nil for statuses below 400. Otherwise it reads at
// most a few KiB of the body and extracts a message from either the Google
// envelope or a flat error object, falling back to the raw body.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Message:    fmt.Sprintf("failed to read error response body: %v", err),
		}
	}

	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       string(body),
		Message:    string(body),
	}

	var g googleError
	if json.Unmarshal(body, &g) == nil && g.Error.Message != "" {
		httpErr.Message = g.Error.Message
		if len(g.Error.Errors) > 0 {
			httpErr.Reason = g.Error.Errors[0].Reason
		}
		return httpErr
	}

	var flat flatError
	if json.Unmarshal(body, &flat) == nil && (flat.Error != "" || flat.Message != "") {
		httpErr.Message = flat.Error
		if httpErr.Message == "" {
			httpErr.Message = flat.Message
		}
	}

	return httpErr
}

// GetHTTPStatusCode extracts the status code from an HTTPError anywhere in
// err's chain.
func GetHTTPStatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
