package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthenticated is returned before any request is sent when the session has no credential
var ErrUnauthenticated = errors.New("not logged in")

// RequestFailedError means the server was reachable but rejected the request
type RequestFailedError struct {
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// Code returns the error code reported to the presentation layer
func (e *RequestFailedError) Code() string {
	return "REQUEST_FAILED"
}

// Unauthorized reports whether the server rejected the credential
func (e *RequestFailedError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// NetworkUnreachableError is a transport-level failure, including timeouts
type NetworkUnreachableError struct {
	Err error
}

func (e *NetworkUnreachableError) Error() string {
	return fmt.Sprintf("inventory API unreachable: %v", e.Err)
}

func (e *NetworkUnreachableError) Unwrap() error {
	return e.Err
}

// Code returns the error code reported to the presentation layer
func (e *NetworkUnreachableError) Code() string {
	return "NETWORK_UNREACHABLE"
}

// MalformedResponseError means the response body could not be parsed
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Code returns the error code reported to the presentation layer
func (e *MalformedResponseError) Code() string {
	return "MALFORMED_RESPONSE"
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var reqErr *RequestFailedError
	return errors.As(err, &reqErr) && reqErr.Unauthorized()
}

// serverMessage extracts the human-readable message from an error body.
// The API usually sends {"message": "..."}; anything else falls back to the raw
// text or the status text.
func serverMessage(status int, body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		var text string
		if json.Unmarshal(payload.Error, &text) == nil && text != "" {
			return text
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 512 {
		return text
	}
	return http.StatusText(status)
}
