package schema

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	// KindParse means the raw value could not be coerced to the field's type.
	KindParse ErrorKind = "parse_error"
	// KindConstraint means a parsed value broke a single-field rule.
	KindConstraint ErrorKind = "constraint_violation"
	// KindCrossField means a whole-record rule failed.
	KindCrossField ErrorKind = "cross_field_violation"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string    // Field name the failure is attributed to
	Reason string    // Human-readable reason for failure
	Kind   ErrorKind // Failure class
	Rule   string    // Name of the cross-field rule, if any
	Value  any       // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// ParseError wraps a coercion failure so constraints can tell it apart
// from a plain rule failure.
type ParseError struct {
	Type   string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func parseErr(typ, reason string) error {
	return &ParseError{Type: typ, Reason: reason}
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
