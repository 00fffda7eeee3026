package puppybowl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID marks a caller bug: player ids are positive integers.
	ErrInvalidID = errors.New("puppybowl: player id must be positive")
	// ErrDecode marks a response body that is not a valid envelope.
	ErrDecode = errors.New("puppybowl: malformed response")
)

// NetworkError is returned when the transport rejects a request.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("puppybowl: %s: network failure: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is returned when the API reports a failure, either through the
// envelope's error field or a non-2xx status.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "api reported an error"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("puppybowl: %s: %s (status=%d)", e.Operation, msg, e.StatusCode)
	}
	return fmt.Sprintf("puppybowl: %s: %s", e.Operation, msg)
}

// AsAPIError attempts to unwrap an error into an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// errorKind classifies err for logging.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidID):
		return "programmer"
	case errors.Is(err, ErrDecode):
		return "decode"
	}
	if _, ok := AsNetworkError(err); ok {
		return "network"
	}
	if _, ok := AsAPIError(err); ok {
		return "api"
	}
	return "unknown"
}

// retryable reports whether a read may be attempted again.
func retryable(err error) bool {
	if _, ok := AsNetworkError(err); ok {
		return true
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode >= 500
	}
	return false
}
