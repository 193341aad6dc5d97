package coursesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// NetworkError reports a transport-level failure: the request never reached
// the server or no response came back. The underlying error is preserved for
// errors.Is/errors.As chains (e.g. context.DeadlineExceeded).
type NetworkError struct {
	// Op describes the request that failed, e.g. "GET /api/courses".
	Op string

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError reports an authentication failure the client could not resolve
// locally: invalid credentials, a 401 that survived the refresh-and-retry
// cycle, or a failed refresh call.
type AuthError struct {
	// Message is a human-readable description, preferring the server's own
	// message when one was provided.
	Message string

	// Err is the underlying cause, if any (e.g. the refresh call's error).
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error: %s: %v", e.Message, e.Err)
	}
	return "auth error: " + e.Message
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error { return e.Err }

// APIError reports a request the server rejected with a business-level
// message and a non-401 error status.
type APIError struct {
	// StatusCode is the HTTP status the server responded with.
	StatusCode int

	// Message is the server-provided message from the response envelope.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// errorFromResponse maps a non-2xx response body to the client error
// taxonomy. The platform wraps errors in the same {message, data} envelope
// as successes; an unparseable body falls back to the HTTP status text.
func errorFromResponse(status int, body []byte) error {
	msg := http.StatusText(status)

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		msg = env.Message
	}

	if status == http.StatusUnauthorized {
		return &AuthError{Message: msg}
	}
	return &APIError{StatusCode: status, Message: msg}
}
