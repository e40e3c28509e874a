// Package validation runs ordered, fail-fast validation chains over request payloads.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Payload is the decoded `data` object of a request body.
// Values keep the shapes produced by encoding/json: string, float64, bool, nil, []any, map[string]any.
type Payload map[string]any

// Get returns the raw value for field.
func (p Payload) Get(field string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[field]
	return v, ok
}

// String returns field when it holds a string.
func (p Payload) String(field string) (string, bool) {
	v, _ := p.Get(field)
	s, ok := v.(string)
	return s, ok
}

// Text renders field as a string: strings verbatim, null or absent as "", anything else via Text.
func (p Payload) Text(field string) string {
	v, _ := p.Get(field)
	return Text(v)
}

// Has reports whether field holds a truthy value.
func (p Payload) Has(field string) bool {
	v, _ := p.Get(field)
	return Truthy(v)
}

// Truthy treats nil, false, zero, NaN and the empty string as absent. Any other value, including empty
// arrays and objects, is present.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// Integer returns v as an int64 when it is a whole, finite number.
func Integer(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, false
		}
		if x >= 1<<63 || x < -1<<63 {
			return 0, false
		}
		return int64(x), true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return Integer(f)
	default:
		return 0, false
	}
}

// Text renders a decoded JSON value as a string. Whole numbers print without a fraction, arrays and objects
// as their JSON encoding.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any, []any:
		encoded, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(encoded)
	default:
		return fmt.Sprint(x)
	}
}
