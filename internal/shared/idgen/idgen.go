// Package idgen issues record identifiers.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Generator produces a new unique identifier on every call.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() string

// NewID calls f.
func (f GeneratorFunc) NewID() string { return f() }

// Random issues random version 4 UUIDs rendered as 32 lowercase hex characters.
type Random struct{}

// NewID returns a fresh identifier.
func (Random) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Default is the process-wide random generator.
var Default Generator = Random{}

// New is shorthand for Default.NewID.
func New() string {
	return Default.NewID()
}
