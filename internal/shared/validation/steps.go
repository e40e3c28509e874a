package validation

import (
	"context"

	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
)

// Request is implemented by chain inputs that expose a payload.
type Request interface {
	Body() Payload
}

// Require fails unless field holds a truthy value.
func Require[R Request](resource, field string) Step[R] {
	return func(_ context.Context, req R) error {
		if req.Body().Has(field) {
			return nil
		}
		return missingField(resource, field)
	}
}

// NonEmpty fails only when field holds the empty string. Other values, strings or not, pass.
func NonEmpty[R Request](resource, field string) Step[R] {
	return func(_ context.Context, req R) error {
		if s, ok := req.Body().String(field); ok && s == "" {
			return missingField(resource, field)
		}
		return nil
	}
}

// PositiveInteger fails with message unless field is a whole number greater than zero.
func PositiveInteger[R Request](field, message string) Step[R] {
	return func(_ context.Context, req R) error {
		v, _ := req.Body().Get(field)
		if n, ok := Integer(v); ok && n > 0 {
			return nil
		}
		return apierrors.BadRequest("%s", message)
	}
}

// RequireAll expands to one Require step per field, in order.
func RequireAll[R Request](resource string, fields ...string) []Step[R] {
	steps := make([]Step[R], 0, len(fields))
	for _, field := range fields {
		steps = append(steps, Require[R](resource, field))
	}
	return steps
}

// NonEmptyAll expands to one NonEmpty step per field, in order.
func NonEmptyAll[R Request](resource string, fields ...string) []Step[R] {
	steps := make([]Step[R], 0, len(fields))
	for _, field := range fields {
		steps = append(steps, NonEmpty[R](resource, field))
	}
	return steps
}

func missingField(resource, field string) error {
	return apierrors.BadRequest("%s must include a %s", resource, field)
}
