package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// KindTransport is a network failure: no HTTP response was received.
	KindTransport Kind = iota + 1
	// KindStatus is a response with a non-2xx status.
	KindStatus
	// KindDecode is a 2xx response whose body could not be decoded.
	KindDecode
	// KindRequest is a request that could not be built from its arguments.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Sentinels matched by *Error through errors.Is.
var (
	ErrTransport = errors.New("api: transport failure")
	ErrStatus    = errors.New("api: unexpected status")
	ErrDecode    = errors.New("api: malformed response")
	ErrRequest   = errors.New("api: invalid request")
	ErrNotFound  = errors.New("api: not found")
)

// Error is returned by every failed Client operation. Cancellation while
// waiting is a KindTransport error wrapping the context error.
type Error struct {
	Kind Kind
	// Op is the request line, e.g. "GET /historial".
	Op string
	// StatusCode is zero for transport failures.
	StatusCode int
	// Message is the backend "error" field, or a description of the failure.
	Message string
	// Details is the backend "details" field, when present.
	Details string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("api: %s", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	if e.Err != nil && e.Kind != KindStatus {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind, and ErrNotFound by status.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrRequest:
		return e.Kind == KindRequest
	case ErrNotFound:
		return e.Kind == KindStatus && e.StatusCode == http.StatusNotFound
	}
	return false
}

// Hint suggests what the user can do about err, or "" if nothing useful.
func Hint(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	switch {
	case errors.Is(err, context.Canceled):
		return ""
	case apiErr.Kind == KindTransport:
		return "Check that the FoodScan backend is running and base_url is correct (foodscan config)"
	case apiErr.StatusCode == http.StatusNotFound:
		return "The entry may already have been deleted; reload the history"
	case apiErr.Kind == KindStatus && apiErr.StatusCode >= 500:
		return "The backend failed to process the request; check its logs"
	case apiErr.Kind == KindDecode:
		return "The backend answered with an unexpected format; check that base_url points at FoodScan"
	}
	return ""
}
