package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorMapper maps domain/application errors to a Signal.
type ErrorMapper func(err error) (Signal, bool)

// Responder writes error signals as `{"message": ...}` bodies.
type Responder struct {
	mappers []ErrorMapper
	logger  *slog.Logger
}

// NewResponder creates a responder with optional error mappers tried before the default handling.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// WithLogger returns a copy of the responder that logs unexpected errors.
func (r *Responder) WithLogger(logger *slog.Logger) *Responder {
	clone := *r
	clone.logger = logger
	return &clone
}

// Respond writes the signal with its status code.
func (r *Responder) Respond(c *gin.Context, signal Signal) {
	c.AbortWithStatusJSON(signal.Status, signal)
}

// RespondError converts err to a Signal and responds.
// Signals pass through unchanged, mapped errors use the first matching mapper, anything else is a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var signal Signal
	if errors.As(err, &signal) {
		r.Respond(c, signal)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			r.Respond(c, mapped)
			return
		}
	}
	if r.logger != nil {
		r.logger.ErrorContext(c.Request.Context(), "unhandled request error",
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
			slog.String("error", err.Error()))
	}
	r.Respond(c, ErrInternal)
}

// MapSentinel returns a mapper turning errors matching target into signal.
func MapSentinel(target error, signal Signal) ErrorMapper {
	return func(err error) (Signal, bool) {
		if errors.Is(err, target) {
			return signal, true
		}
		return Signal{}, false
	}
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var signal Signal
	if errors.As(err, &signal) {
		return signal.Status
	}
	return http.StatusInternalServerError
}
