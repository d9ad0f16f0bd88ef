package schema

import (
	"fmt"
	"strings"
	"time"
)

// Type defines the contract for field coercion.
// Parse turns a raw collaborator value into the field's semantic value.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "date").
	Name() string
	// Parse coerces a raw value. Failures are reported as *ParseError.
	Parse(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType accepts string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Parse(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, parseErr(t.Name(), fmt.Sprintf("expected string, received %s", typeName(value)))
	}
	return s, nil
}

// BoolType accepts booleans and the string forms an HTML form posts.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Parse(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0", "":
			return false, nil
		}
		return nil, parseErr(t.Name(), fmt.Sprintf("expected boolean, received %q", v))
	default:
		return nil, parseErr(t.Name(), fmt.Sprintf("expected boolean, received %s", typeName(value)))
	}
}

// DateLayouts are the string layouts DateType understands, in order.
var DateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.RFC3339Nano,
}

// DateType accepts time.Time values and date strings.
type DateType struct {
	message string
}

func (t *DateType) Name() string { return "date" }

func (t *DateType) Parse(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil, parseErr(t.Name(), t.message)
		}
		return v, nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil, parseErr(t.Name(), t.message)
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range DateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return nil, parseErr(t.Name(), t.message)
	default:
		return nil, parseErr(t.Name(), t.message)
	}
}

// CustomType applies a user-defined coercion function.
type CustomType struct {
	name  string
	parse func(any) (any, error)
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Parse(value any) (any, error) {
	v, err := t.parse(value)
	if err != nil {
		return nil, parseErr(t.name, err.Error())
	}
	return v, nil
}

// --- Factory Functions ---

// String creates a string type.
func String() Type { return &StringType{} }

// Bool creates a boolean type.
func Bool() Type { return &BoolType{} }

// Date creates a date type. The message is reported when coercion fails.
func Date(message string) Type {
	if message == "" {
		message = "Invalid date"
	}
	return &DateType{message: message}
}

// Custom creates a type with a user-defined coercion function.
func Custom(name string, parse func(any) (any, error)) Type {
	return &CustomType{name: name, parse: parse}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
