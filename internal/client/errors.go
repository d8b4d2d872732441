package client

import (
	"errors"
	"fmt"
	"net/http"
)

// The client surfaces every failure as one of three error kinds (a fourth,
// models.ValidationError, is raised before a request is ever built):
//
//   - TransportError: the request never completed (timeout, refused, canceled)
//   - ServiceError:   the server answered with a non-success envelope code
//   - DecodeError:    the answer arrived but violates the envelope contract
//
// Errors are never swallowed or reinterpreted; ServiceError carries the
// server's code and message verbatim.

// TransportError wraps a network-level failure. Timeout is set when the
// request exceeded the client's deadline.
type TransportError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: request timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a non-success envelope returned by the service.
type ServiceError struct {
	Op      string
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: service error %d: %s", e.Op, e.Code, e.Message)
}

// NotFound reports whether the service rejected the request because the
// addressed resource does not exist.
func (e *ServiceError) NotFound() bool { return e.Code == http.StatusNotFound }

// DecodeError is an HTTP-level success whose body violates the ApiResponse
// or domain shape invariant, e.g. a success code with no data payload.
type DecodeError struct {
	Op     string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: decode failure: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: decode failure: %s", e.Op, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a ServiceError for a missing resource.
func IsNotFound(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.NotFound()
}

// IsTimeout reports whether err is a TransportError caused by the request
// deadline.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout
}
