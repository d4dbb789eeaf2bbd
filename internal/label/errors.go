package label

import (
	"fmt"
)

// ErrMissingField indicates a label value that is absent or cannot be parsed.
// Value holds the raw text when the key was present.
type ErrMissingField struct {
	Key   string
	Value string
}

func (e *ErrMissingField) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("label field %s: unparsable value %q", e.Key, e.Value)
	}
	return fmt.Sprintf("label field %s: missing", e.Key)
}

// ErrInvalidBounds indicates a minimum that exceeds its maximum
type ErrInvalidBounds struct {
	Axis     string // "latitude" or "longitude"
	Min, Max float64
}

func (e *ErrInvalidBounds) Error() string {
	return fmt.Sprintf("invalid %s bounds: min %g > max %g", e.Axis, e.Min, e.Max)
}

// ErrOutOfRange indicates a coordinate outside the valid planetocentric range
type ErrOutOfRange struct {
	Key   string
	Value float64
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("label field %s: %g out of range", e.Key, e.Value)
}
