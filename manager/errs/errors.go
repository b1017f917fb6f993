package errs

import (
	"fmt"
	"net/http"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/pkg/errors"
)

// RequestError is a failure reported back to the requesting client. Message
// is what the client sees; Kind is one of the domain sentinel errors.
type RequestError struct {
	Kind        error
	Message     string
	OriginalErr error
}

func (e *RequestError) Error() string {
	if e.OriginalErr == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.OriginalErr)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *RequestError) Unwrap() []error {
	if e.OriginalErr == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.OriginalErr}
}

// StatusCode maps the error kind onto an HTTP status for the admin API.
func (e *RequestError) StatusCode() int {
	switch {
	case errors.Is(e.Kind, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(e.Kind, domain.ErrNotFound),
		errors.Is(e.Kind, domain.ErrUnknownNode),
		errors.Is(e.Kind, domain.ErrUnknownService):
		return http.StatusNotFound
	case errors.Is(e.Kind, domain.ErrNodeInUse):
		return http.StatusConflict
	case errors.Is(e.Kind, domain.ErrAllocationExhausted),
		errors.Is(e.Kind, domain.ErrNoCandidate):
		return http.StatusServiceUnavailable
	case errors.Is(e.Kind, domain.ErrOrchestration):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func NewRequestError(kind error, message string, originalErr error) *RequestError {
	return &RequestError{
		Kind:        kind,
		Message:     message,
		OriginalErr: originalErr,
	}
}

func IsRequestError(err error) (*RequestError, bool) {
	if err == nil {
		return nil, false
	}
	var reqErr *RequestError
	if errors.As(errors.Cause(err), &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// ClientMessage returns the failure message to send for any error.
func ClientMessage(err error, fallback string) string {
	if reqErr, ok := IsRequestError(err); ok {
		return reqErr.Message
	}
	return fallback
}
