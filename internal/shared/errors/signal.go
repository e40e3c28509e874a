// Package errors carries the error signal convention shared by the HTTP boundary and the domain services.
package errors

import (
	"fmt"
	"net/http"
)

// Signal is a client-facing failure: an HTTP status plus a fixed-format message.
// Validation chains return it from the first failing step and the boundary writes it unchanged.
type Signal struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (s Signal) Error() string {
	return s.Message
}

// WithMessage returns a copy with the given message.
func (s Signal) WithMessage(message string) Signal {
	s.Message = message
	return s
}

// Pre-defined signals for the statuses the services raise.
var (
	// ErrBadRequest rejects a malformed payload or an illegal state transition.
	ErrBadRequest = Signal{Status: http.StatusBadRequest, Message: http.StatusText(http.StatusBadRequest)}

	// ErrNotFound reports an unknown record or path.
	ErrNotFound = Signal{Status: http.StatusNotFound, Message: http.StatusText(http.StatusNotFound)}

	// ErrMethodNotAllowed reports a known path used with an unsupported method.
	ErrMethodNotAllowed = Signal{Status: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed)}

	// ErrInternal is written for anything that is not a signal.
	ErrInternal = Signal{Status: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
)

// BadRequest builds a 400 signal with a formatted message.
func BadRequest(format string, args ...any) Signal {
	return ErrBadRequest.WithMessage(fmt.Sprintf(format, args...))
}

// NotFound builds a 404 signal with a formatted message.
func NotFound(format string, args ...any) Signal {
	return ErrNotFound.WithMessage(fmt.Sprintf(format, args...))
}

// IsClientError reports whether err carries a 4xx signal.
func IsClientError(err error) bool {
	status := HTTPStatusFromError(err)
	return status >= 400 && status < 500
}
